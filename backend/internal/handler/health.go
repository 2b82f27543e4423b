package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/padel-tracker/padel/shared/api"
	"github.com/padel-tracker/padel/shared/logger"
	"github.com/padel-tracker/padel/shared/utils"
)

const Version = "1.0.0"

// Health is a liveness probe endpoint.
// Returns 200 OK if the server is running.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Ready is a readiness probe endpoint.
// Returns 503 Service Unavailable if the database does not answer.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.Log.Warn("readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("database unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, api.InfoResponse{
		Name:    "Padel API",
		Version: Version,
		Endpoints: map[string]string{
			"auth":    "/v1/auth",
			"players": "/v1/players",
			"matches": "/v1/matches",
			"upload":  "/v1/upload",
			"health":  "/health",
			"metrics": "/metrics",
		},
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Route not found")
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}
