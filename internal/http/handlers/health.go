package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/movie-catalog/internal/http/respond"
)

// Pinger checks that a backing database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports uptime and database reachability.
type HealthHandler struct {
	startedAt time.Time
	db        Pinger
	logger    *slog.Logger
}

// NewHealthHandler creates a health endpoint handler. db may be nil.
func NewHealthHandler(startedAt time.Time, db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, db: db, logger: logger}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{
		"status":   "ok",
		"uptime":   time.Since(h.startedAt).Truncate(time.Second).String(),
		"database": "unchecked",
	}
	status := http.StatusOK
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.WarnContext(r.Context(), "health check: database unreachable", slog.Any("error", err))
			body["status"], body["database"] = "degraded", "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			body["database"] = "ok"
		}
	}
	respond.JSON(w, status, body)
}
