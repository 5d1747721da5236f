// Package cache stores shaped info responses so repeated lookups of the
// same URL skip the extractor.
package cache

import (
	"context"
	"errors"

	"github.com/iconidentify/tubegrab/internal/domain"
)

// ErrMiss is returned when a URL has no cached entry.
var ErrMiss = errors.New("cache miss")

// InfoCache caches VideoInfo responses keyed by URL.
type InfoCache interface {
	Get(ctx context.Context, url string) (*domain.VideoInfo, error)
	Set(ctx context.Context, url string, info *domain.VideoInfo) error
}

// Noop is an InfoCache that never stores anything.
type Noop struct{}

// Get always misses.
func (Noop) Get(ctx context.Context, url string) (*domain.VideoInfo, error) {
	return nil, ErrMiss
}

// Set discards the entry.
func (Noop) Set(ctx context.Context, url string, info *domain.VideoInfo) error {
	return nil
}
