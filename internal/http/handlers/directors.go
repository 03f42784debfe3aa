package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hongminglow/movie-catalog/internal/http/respond"
	"github.com/hongminglow/movie-catalog/internal/middleware"
	"github.com/hongminglow/movie-catalog/internal/models/dto"
	"github.com/hongminglow/movie-catalog/internal/service"
)

// DirectorHandler manages the director lookup table.
type DirectorHandler struct {
	catalog *service.CatalogService
	gate    *middleware.Authenticator
	logger  *slog.Logger
}

func NewDirectorHandler(catalog *service.CatalogService, gate *middleware.Authenticator, logger *slog.Logger) *DirectorHandler {
	return &DirectorHandler{catalog: catalog, gate: gate, logger: logger}
}

func (h *DirectorHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/directors", h.handleList)
	mux.Handle("POST /api/directors/create", h.gate.RequireAdmin(http.HandlerFunc(h.handleCreate)))
}

func (h *DirectorHandler) handleList(w http.ResponseWriter, r *http.Request) {
	directors, err := h.catalog.ListDirectors(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, directors)
}

func (h *DirectorHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.DirectorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := h.catalog.CreateDirector(r.Context(), req.DirectorName)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.DirectorCreatedResponse{Message: "Director created successfully", DirectorID: id})
}
