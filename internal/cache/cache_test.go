package cache

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iconidentify/tubegrab/internal/config"
	"github.com/iconidentify/tubegrab/internal/domain"
)

func TestNoop(t *testing.T) {
	var c InfoCache = Noop{}
	ctx := context.Background()

	if err := c.Set(ctx, "https://youtu.be/x", &domain.VideoInfo{Title: "x"}); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	if _, err := c.Get(ctx, "https://youtu.be/x"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get() error = %v, want ErrMiss", err)
	}
}

func TestKey(t *testing.T) {
	a := Key("https://youtu.be/a")
	b := Key("https://youtu.be/b")

	if !strings.HasPrefix(a, keyPrefix) {
		t.Errorf("key %q should have prefix %q", a, keyPrefix)
	}
	if a == b {
		t.Error("different URLs should produce different keys")
	}
	if a != Key("https://youtu.be/a") {
		t.Error("key should be stable")
	}
}

func TestNewRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRedis(ctx, config.CacheConfig{RedisAddr: "127.0.0.1:1"})
	if err == nil {
		t.Error("NewRedis() should fail when redis is unreachable")
	}
}
