package handler

import (
	"context"
	"log/slog"
	"net/http"
)

const livenessMessage = "Signed-asset gateway is running"

type LivenessResponse struct {
	Message string `json:"message"`
}

// Liveness handles GET /. It never touches storage.
func Liveness(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, LivenessResponse{
		Message: livenessMessage,
	})
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health returns a readiness handler that pings the storage bucket.
func Health(pinger Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.Ping(r.Context()); err != nil {
			logger.Warn("readiness check failed", slog.String("error", err.Error()))
			JSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
		JSON(w, http.StatusOK, HealthResponse{
			Status: "ok",
		})
	}
}
