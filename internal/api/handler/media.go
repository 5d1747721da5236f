package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/iconidentify/tubegrab/internal/domain"
)

// MediaService is the subset of service.MediaService used by MediaHandler.
type MediaService interface {
	GetInfo(ctx context.Context, url string) (*domain.VideoInfo, error)
	Download(ctx context.Context, url, formatID string) (*domain.DownloadedFile, error)
	Release(file *domain.DownloadedFile)
}

// MediaHandler handles the info and download endpoints.
type MediaHandler struct {
	mediaSvc MediaService
	logger   *slog.Logger
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(mediaSvc MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
		logger:   logger,
	}
}

// InfoRequest is the JSON request body for POST /get-info.
type InfoRequest struct {
	URL string `json:"url"`
}

// DownloadRequest is the JSON request body for POST /download.
type DownloadRequest struct {
	URL      string `json:"url"`
	FormatID string `json:"format_id"`
}

// ErrorResponse is the JSON body returned for every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetInfo handles POST /get-info
func (h *MediaHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	var req InfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	info, err := h.mediaSvc.GetInfo(r.Context(), req.URL)
	if err != nil {
		h.writeServiceError(w, err, "video unavailable", "failed to get video information")
		return
	}

	h.writeJSON(w, http.StatusOK, info)
}

// Download handles POST /download. The file is streamed as an attachment
// and deleted once the response is done, whether or not streaming succeeded.
func (h *MediaHandler) Download(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	file, err := h.mediaSvc.Download(r.Context(), req.URL, req.FormatID)
	if err != nil {
		h.writeServiceError(w, err, "download failed", "failed to download video")
		return
	}
	defer h.mediaSvc.Release(file)

	f, err := os.Open(file.Path)
	if err != nil {
		h.logger.Error("open downloaded file failed", "path", file.Path, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to download video")
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		h.logger.Error("stat downloaded file failed", "path", file.Path, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to download video")
		return
	}

	name := domain.SanitizeFilename(file.Name)
	if name == "" {
		name = "download"
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))

	// http.ServeContent handles Range requests automatically
	http.ServeContent(w, r, name, stat.ModTime(), f)
}

// writeServiceError maps the error kind onto a status code and message.
// Internal details are logged, never returned.
func (h *MediaHandler) writeServiceError(w http.ResponseWriter, err error, extractionPrefix, internalMessage string) {
	var derr *domain.Error
	errors.As(err, &derr)

	switch domain.KindOf(err) {
	case domain.KindValidation:
		h.writeError(w, http.StatusBadRequest, derr.Err.Error())
	case domain.KindExtraction:
		detail := strings.TrimPrefix(derr.Err.Error(), domain.ErrExtractionFailed.Error()+": ")
		h.logger.Warn("extraction failed", "error", err)
		h.writeError(w, http.StatusBadRequest, extractionPrefix+": "+detail)
	default:
		h.logger.Error("request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, internalMessage)
	}
}

func (h *MediaHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *MediaHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, ErrorResponse{Error: message})
}
