package handler

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/iconidentify/tubegrab/internal/domain"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockMediaService is a test implementation of MediaService.
type mockMediaService struct {
	info    *domain.VideoInfo
	infoErr error
	infoURL string

	file        *domain.DownloadedFile
	downloadErr error
	downloadURL string
	formatID    string

	released []*domain.DownloadedFile
}

func (m *mockMediaService) GetInfo(ctx context.Context, url string) (*domain.VideoInfo, error) {
	m.infoURL = url
	if m.infoErr != nil {
		return nil, m.infoErr
	}
	return m.info, nil
}

func (m *mockMediaService) Download(ctx context.Context, url, formatID string) (*domain.DownloadedFile, error) {
	m.downloadURL = url
	m.formatID = formatID
	if m.downloadErr != nil {
		return nil, m.downloadErr
	}
	return m.file, nil
}

func (m *mockMediaService) Release(file *domain.DownloadedFile) {
	m.released = append(m.released, file)
	os.Remove(file.Path)
}

// mockChecker is a test implementation of ExtractorChecker.
type mockChecker struct {
	err error
}

func (m *mockChecker) Available() error {
	return m.err
}
