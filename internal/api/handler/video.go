package handler

import (
	"log/slog"
	"net/http"

	"github.com/NumaanisCoder/LI-backend/internal/usecase"
)

// Request/Response types

type UploadVideoResponse struct {
	Message  string `json:"message"`
	Location string `json:"location"`
	Key      string `json:"key"`
}

type VideoResponse struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	LastModified string `json:"lastModified"`
	Size         int64  `json:"size"`
}

// VideoHandler handles plain-asset HTTP requests.
type VideoHandler struct {
	svc      usecase.AssetService
	maxBytes int64
	logger   *slog.Logger
}

// NewVideoHandler creates a new VideoHandler accepting files up to maxBytes.
func NewVideoHandler(svc usecase.AssetService, maxBytes int64, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{svc: svc, maxBytes: maxBytes, logger: logger}
}

// Upload handles POST /upload
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	upload, err := readUpload(w, r, "video", h.maxBytes)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	output, err := h.svc.UploadVideo(r.Context(), upload)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, UploadVideoResponse{
		Message:  "File uploaded successfully",
		Location: output.Location,
		Key:      output.Key,
	})
}

// List handles GET /videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.svc.ListVideos(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	resp := make([]VideoResponse, 0, len(assets))
	for _, a := range assets {
		resp = append(resp, VideoResponse{
			Name:         a.Name,
			URL:          a.URL,
			LastModified: formatTime(a.LastModified),
			Size:         a.Size,
		})
	}
	JSON(w, http.StatusOK, resp)
}
