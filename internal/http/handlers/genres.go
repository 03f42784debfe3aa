package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hongminglow/movie-catalog/internal/http/respond"
	"github.com/hongminglow/movie-catalog/internal/middleware"
	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/models/dto"
	"github.com/hongminglow/movie-catalog/internal/service"
)

// GenreHandler manages the genre lookup table.
type GenreHandler struct {
	catalog *service.CatalogService
	gate    *middleware.Authenticator
	logger  *slog.Logger
}

func NewGenreHandler(catalog *service.CatalogService, gate *middleware.Authenticator, logger *slog.Logger) *GenreHandler {
	return &GenreHandler{catalog: catalog, gate: gate, logger: logger}
}

func (h *GenreHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/genres", h.handleList)
	mux.Handle("POST /api/genres/create", h.gate.RequireAdmin(http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /api/genres/{id}", h.gate.RequireAdmin(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/genres/{id}", h.gate.RequireAdmin(http.HandlerFunc(h.handleDelete)))
}

func (h *GenreHandler) handleList(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.ListGenres(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, genres)
}

func (h *GenreHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := h.catalog.CreateGenre(r.Context(), req.GenreName)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.GenreCreatedResponse{Message: "Genre created successfully", GenreID: id})
}

func (h *GenreHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "genre id must be a positive integer")
		return
	}
	var req dto.GenreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.catalog.UpdateGenre(r.Context(), models.Genre{ID: id, Name: req.GenreName}); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.Message(w, http.StatusOK, "Genre updated successfully")
}

func (h *GenreHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "genre id must be a positive integer")
		return
	}
	if err := h.catalog.DeleteGenre(r.Context(), id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.Message(w, http.StatusOK, "Genre deleted successfully")
}
