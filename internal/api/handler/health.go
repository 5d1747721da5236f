package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"time"
)

// ExtractorChecker reports whether the extraction tool can be run.
type ExtractorChecker interface {
	Available() error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	extractor   ExtractorChecker
	downloadDir string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(extractor ExtractorChecker, downloadDir string) *HealthHandler {
	return &HealthHandler{
		extractor:   extractor,
		downloadDir: downloadDir,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ReadyResponse is the JSON response for readiness checks.
type ReadyResponse struct {
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	Extractor      string `json:"extractor"`
	DownloadDir    string `json:"download_dir"`
	DiskFreeBytes  int64  `json:"disk_free_bytes"`
	DiskTotalBytes int64  `json:"disk_total_bytes"`
}

// Live handles GET /health - liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeHealthJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready - readiness probe.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := ReadyResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Extractor:   "ok",
		DownloadDir: h.downloadDir,
	}
	status := http.StatusOK

	if err := h.extractor.Available(); err != nil {
		resp.Status = "error"
		resp.Extractor = err.Error()
		status = http.StatusServiceUnavailable
	}

	if stat, err := os.Stat(h.downloadDir); err != nil || !stat.IsDir() {
		resp.Status = "error"
		status = http.StatusServiceUnavailable
	} else if free, total, err := diskUsage(h.downloadDir); err == nil {
		resp.DiskFreeBytes = free
		resp.DiskTotalBytes = total
	}

	writeHealthJSON(w, status, resp)
}

func writeHealthJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
