package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NumaanisCoder/LI-backend/internal/usecase"
)

type UploadAudioResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AudioURL  string `json:"audioUrl"`
	CreatedAt string `json:"createdAt"`
	Size      int64  `json:"size"`
	Type      string `json:"type"`
}

type AudioResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	LastModified string `json:"lastModified"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
}

type AudioDetailResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AudioHandler handles identified-asset HTTP requests.
type AudioHandler struct {
	svc      usecase.AssetService
	maxBytes int64
	logger   *slog.Logger
}

// NewAudioHandler creates a new AudioHandler accepting files up to maxBytes.
func NewAudioHandler(svc usecase.AssetService, maxBytes int64, logger *slog.Logger) *AudioHandler {
	return &AudioHandler{svc: svc, maxBytes: maxBytes, logger: logger}
}

// Upload handles POST /api/audio
func (h *AudioHandler) Upload(w http.ResponseWriter, r *http.Request) {
	upload, err := readUpload(w, r, "audio", h.maxBytes)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	output, err := h.svc.UploadAudio(r.Context(), upload)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusCreated, UploadAudioResponse{
		ID:        output.Asset.ID,
		Name:      output.Asset.Name,
		AudioURL:  output.Asset.URL,
		CreatedAt: formatTime(output.CreatedAt),
		Size:      output.Asset.Size,
		Type:      output.Asset.Type,
	})
}

// List handles GET /api/audio
func (h *AudioHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.svc.ListAudio(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	resp := make([]AudioResponse, 0, len(assets))
	for _, a := range assets {
		resp = append(resp, AudioResponse{
			ID:           a.ID,
			Name:         a.Name,
			URL:          a.URL,
			LastModified: formatTime(a.LastModified),
			Size:         a.Size,
			Type:         a.Type,
		})
	}
	JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/audio/{id}
func (h *AudioHandler) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.svc.GetAudio(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, AudioDetailResponse{
		ID:   asset.ID,
		Name: asset.Name,
		URL:  asset.URL,
	})
}

// Delete handles DELETE /api/audio/{id}
func (h *AudioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAudio(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
