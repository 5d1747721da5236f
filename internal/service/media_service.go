package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/iconidentify/tubegrab/internal/cache"
	"github.com/iconidentify/tubegrab/internal/config"
	"github.com/iconidentify/tubegrab/internal/domain"
	"github.com/iconidentify/tubegrab/internal/extractor"
)

// workDirPrefix marks per-request working directories in the download dir.
const workDirPrefix = "req-"

// MediaService implements the info and download operations.
type MediaService struct {
	extractor   extractor.Extractor
	cache       cache.InfoCache
	downloadDir string
	logger      *slog.Logger
}

// NewMediaService creates a new media service. A nil cache disables caching.
func NewMediaService(
	ext extractor.Extractor,
	infoCache cache.InfoCache,
	storageCfg config.StorageConfig,
	logger *slog.Logger,
) *MediaService {
	if infoCache == nil {
		infoCache = cache.Noop{}
	}
	return &MediaService{
		extractor:   ext,
		cache:       infoCache,
		downloadDir: storageCfg.DownloadDir,
		logger:      logger,
	}
}

// DownloadDir returns the shared download directory.
func (s *MediaService) DownloadDir() string {
	return s.downloadDir
}

// GetInfo looks up metadata for a YouTube URL and shapes it into the
// options offered to the user.
func (s *MediaService) GetInfo(ctx context.Context, rawURL string) (*domain.VideoInfo, error) {
	const op = "get info"

	url := strings.TrimSpace(rawURL)
	if url == "" {
		return nil, domain.NewValidationError(op, domain.ErrEmptyURL)
	}
	if !domain.IsSupportedURL(url) {
		return nil, domain.NewValidationError(op, domain.ErrUnsupportedURL)
	}

	cached, err := s.cache.Get(ctx, url)
	if err == nil {
		s.logger.Debug("info cache hit", "url", url)
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("info cache lookup failed", "url", url, "error", err)
	}

	meta, err := s.extractor.Extract(ctx, url)
	if err != nil {
		return nil, classify(op, err)
	}
	if meta == nil {
		return nil, domain.NewInternalError(op, domain.ErrNoMetadata)
	}

	videoStreams, audioStreams := SelectFormats(meta.Formats)
	info := &domain.VideoInfo{
		Title:        meta.Title,
		Thumbnail:    meta.Thumbnail,
		Duration:     domain.FormatDuration(meta.Duration),
		Author:       meta.Uploader,
		Views:        meta.ViewCount,
		VideoStreams: videoStreams,
		AudioStreams: audioStreams,
	}

	if err := s.cache.Set(ctx, url, info); err != nil {
		s.logger.Warn("info cache store failed", "url", url, "error", err)
	}

	s.logger.Info("info extracted",
		"url", url,
		"title", info.Title,
		"video_streams", len(videoStreams),
		"audio_streams", len(audioStreams),
	)

	return info, nil
}

// Download fetches one format of a YouTube video into a fresh working
// directory under the download dir. The caller must call Release once the
// file has been served.
func (s *MediaService) Download(ctx context.Context, rawURL, formatID string) (*domain.DownloadedFile, error) {
	const op = "download"

	url := strings.TrimSpace(rawURL)
	formatID = strings.TrimSpace(formatID)
	if url == "" || formatID == "" {
		return nil, domain.NewValidationError(op, domain.ErrMissingDownloadParams)
	}
	if !domain.IsSupportedURL(url) {
		return nil, domain.NewValidationError(op, domain.ErrUnsupportedURL)
	}

	workDir := filepath.Join(s.downloadDir, workDirPrefix+uuid.New().String())
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, domain.NewInternalError(op, fmt.Errorf("create work dir: %w", err))
	}

	reported, err := s.extractor.Download(ctx, url, formatID, workDir)
	if err != nil {
		s.removeWorkDir(workDir)
		return nil, classify(op, err)
	}

	path, err := locateOutput(workDir, reported)
	if err != nil {
		s.removeWorkDir(workDir)
		return nil, domain.NewInternalError(op, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		s.removeWorkDir(workDir)
		return nil, domain.NewInternalError(op, fmt.Errorf("stat output: %w", err))
	}

	s.logger.Info("download complete",
		"url", url,
		"format_id", formatID,
		"file", filepath.Base(path),
		"size", stat.Size(),
	)

	return &domain.DownloadedFile{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    stat.Size(),
		WorkDir: workDir,
	}, nil
}

// Release deletes a served file and its working directory. Failures are
// logged and otherwise ignored.
func (s *MediaService) Release(file *domain.DownloadedFile) {
	if file == nil {
		return
	}
	if err := os.Remove(file.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("failed to remove downloaded file", "path", file.Path, "error", err)
	}
	if file.WorkDir != "" {
		s.removeWorkDir(file.WorkDir)
	}
}

func (s *MediaService) removeWorkDir(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		s.logger.Error("failed to remove work dir", "path", dir, "error", err)
	}
}

// classify maps extractor errors onto the error taxonomy.
func classify(op string, err error) error {
	if errors.Is(err, domain.ErrExtractionFailed) {
		return domain.NewExtractionError(op, err)
	}
	return domain.NewInternalError(op, err)
}

// locateOutput returns the downloaded file inside workDir. The path yt-dlp
// reported is preferred; otherwise the first finished file in the
// directory is used.
func locateOutput(workDir, reported string) (string, error) {
	if reported != "" && within(workDir, reported) {
		if stat, err := os.Stat(reported); err == nil && stat.Mode().IsRegular() {
			return reported, nil
		}
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		return "", fmt.Errorf("read work dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || isPartial(entry.Name()) {
			continue
		}
		return filepath.Join(workDir, entry.Name()), nil
	}

	return "", domain.ErrOutputMissing
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isPartial(name string) bool {
	return strings.HasSuffix(name, ".part") || strings.HasSuffix(name, ".ytdl")
}
