package extractor

import (
	"context"

	"github.com/iconidentify/tubegrab/internal/domain"
)

// Extractor resolves video URLs into metadata and downloaded files.
//
// Failures the tool reports itself (unavailable video, bad format id) wrap
// domain.ErrExtractionFailed. Any other error is unexpected.
type Extractor interface {
	// Extract fetches metadata only. No media bytes are downloaded.
	Extract(ctx context.Context, url string) (*domain.MediaMetadata, error)

	// Download writes the selected format into outputDir, naming the file
	// after the video title, and returns the resulting path as reported by
	// the tool. The path may be empty if the tool did not report one.
	Download(ctx context.Context, url, formatID, outputDir string) (string, error)

	// Available checks that the extraction tool can be run.
	Available() error
}
