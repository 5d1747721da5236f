package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/iconidentify/tubegrab/internal/config"
	"github.com/iconidentify/tubegrab/internal/domain"
)

// outputTemplate names downloaded files after the video title.
const outputTemplate = "%(title)s.%(ext)s"

// YtDlp implements Extractor by running the yt-dlp binary.
type YtDlp struct {
	binary  string
	timeout time.Duration
	retry   RetryConfig
	logger  *slog.Logger
}

// NewYtDlp creates a yt-dlp backed extractor.
func NewYtDlp(cfg config.ExtractorConfig, logger *slog.Logger) *YtDlp {
	retry := DefaultRetryConfig()
	if cfg.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.RetryDelay > 0 {
		retry.InitialDelay = cfg.RetryDelay
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &YtDlp{
		binary:  cfg.BinaryPath,
		timeout: cfg.Timeout,
		retry:   retry,
		logger:  logger,
	}
}

// ytDlpInfo mirrors the subset of yt-dlp's -J output we consume.
// Missing or null fields decode to zero values.
type ytDlpInfo struct {
	Title     string        `json:"title"`
	Thumbnail string        `json:"thumbnail"`
	Uploader  string        `json:"uploader"`
	Duration  float64       `json:"duration"`
	ViewCount float64       `json:"view_count"`
	Formats   []ytDlpFormat `json:"formats"`
}

type ytDlpFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	Height         float64 `json:"height"`
	ABR            float64 `json:"abr"`
	Filesize       float64 `json:"filesize"`
	FilesizeApprox float64 `json:"filesize_approx"`
}

func (i *ytDlpInfo) toMetadata() *domain.MediaMetadata {
	meta := &domain.MediaMetadata{
		Title:     i.Title,
		Thumbnail: i.Thumbnail,
		Uploader:  i.Uploader,
		Duration:  int(i.Duration),
		ViewCount: int64(i.ViewCount),
		Formats:   make([]domain.StreamDescriptor, 0, len(i.Formats)),
	}
	if meta.Title == "" {
		meta.Title = domain.UnknownLabel
	}
	if meta.Uploader == "" {
		meta.Uploader = domain.UnknownLabel
	}

	for _, f := range i.Formats {
		if f.FormatID == "" {
			continue
		}
		meta.Formats = append(meta.Formats, domain.StreamDescriptor{
			FormatID:       f.FormatID,
			VideoCodec:     f.VCodec,
			AudioCodec:     f.ACodec,
			Height:         int(f.Height),
			AudioBitrate:   f.ABR,
			Ext:            f.Ext,
			Filesize:       int64(f.Filesize),
			FilesizeApprox: int64(f.FilesizeApprox),
		})
	}

	return meta
}

// Extract runs yt-dlp in metadata-only mode. Upstream rate limiting is
// retried with backoff.
func (y *YtDlp) Extract(ctx context.Context, url string) (*domain.MediaMetadata, error) {
	return RetryWithCheck(ctx, y.retry,
		func() (*domain.MediaMetadata, error) {
			return y.extractOnce(ctx, url)
		},
		func(err error) bool {
			if errors.Is(err, domain.ErrRateLimited) {
				y.logger.Warn("yt-dlp rate limited, retrying", "url", url, "error", err)
				return true
			}
			return false
		},
	)
}

func (y *YtDlp) extractOnce(ctx context.Context, url string) (*domain.MediaMetadata, error) {
	out, err := y.run(ctx,
		"-J",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"--", url,
	)
	if err != nil {
		return nil, err
	}

	out = bytes.TrimSpace(out)
	if len(out) == 0 || bytes.Equal(out, []byte("null")) {
		return nil, domain.ErrNoMetadata
	}

	var info ytDlpInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("decode yt-dlp output: %w", err)
	}

	return info.toMetadata(), nil
}

// Download runs yt-dlp for a single format, writing into outputDir.
func (y *YtDlp) Download(ctx context.Context, url, formatID, outputDir string) (string, error) {
	out, err := y.run(ctx,
		"-f", formatID,
		"-o", filepath.Join(outputDir, outputTemplate),
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"--no-simulate",
		"--print", "after_move:filepath",
		"--", url,
	)
	if err != nil {
		return "", err
	}

	return lastLine(string(out)), nil
}

// Available checks that the yt-dlp binary resolves.
func (y *YtDlp) Available() error {
	if _, err := exec.LookPath(y.binary); err != nil {
		return fmt.Errorf("yt-dlp not found: %w", err)
	}
	return nil
}

func (y *YtDlp) run(ctx context.Context, args ...string) ([]byte, error) {
	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, y.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	y.logger.Debug("yt-dlp finished",
		"args", args,
		"duration", time.Since(start),
		"error", err,
	)

	if err == nil {
		return stdout.Bytes(), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("yt-dlp: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		detail := errorDetail(stderr.String())
		if detail == "" {
			detail = exitErr.Error()
		}
		if isRateLimited(detail) {
			return nil, fmt.Errorf("%w: %w: %s", domain.ErrExtractionFailed, domain.ErrRateLimited, detail)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrExtractionFailed, detail)
	}

	return nil, fmt.Errorf("run yt-dlp: %w", err)
}

// errorDetail picks the ERROR lines yt-dlp wrote to stderr, falling back
// to the last non-empty line.
func errorDetail(stderr string) string {
	var errs []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ERROR:") {
			errs = append(errs, line)
		}
	}
	if len(errs) > 0 {
		return strings.Join(errs, "; ")
	}
	return lastLine(stderr)
}

func isRateLimited(detail string) bool {
	return strings.Contains(detail, "HTTP Error 429") ||
		strings.Contains(strings.ToLower(detail), "too many requests")
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
