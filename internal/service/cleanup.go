package service

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CleanDownloadDir empties the download directory before the server starts
// serving. It creates the directory if missing, removes every regular file
// and any per-request working directory left behind by a previous run.
// Errors are logged; startup continues regardless.
func CleanDownloadDir(dir string, logger *slog.Logger) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("cleanup: create download dir", "path", dir, "error", err)
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("cleanup: read download dir", "path", dir, "error", err)
		return
	}

	removed := 0
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		switch {
		case entry.Type().IsRegular():
			if err := os.Remove(path); err != nil {
				logger.Error("cleanup: remove file", "path", path, "error", err)
				continue
			}
		case entry.IsDir() && strings.HasPrefix(entry.Name(), workDirPrefix):
			if err := os.RemoveAll(path); err != nil {
				logger.Error("cleanup: remove work dir", "path", path, "error", err)
				continue
			}
		default:
			continue
		}
		removed++
	}

	logger.Info("download dir cleaned", "path", dir, "removed", removed)
}
