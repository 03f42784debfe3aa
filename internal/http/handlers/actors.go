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

const msgBadActorID = "actor id must be a positive integer"

// ActorHandler manages performers.
type ActorHandler struct {
	catalog *service.CatalogService
	gate    *middleware.Authenticator
	logger  *slog.Logger
}

func NewActorHandler(catalog *service.CatalogService, gate *middleware.Authenticator, logger *slog.Logger) *ActorHandler {
	return &ActorHandler{catalog: catalog, gate: gate, logger: logger}
}

func (h *ActorHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/actors", h.handleList)
	mux.Handle("POST /api/actors/create", h.gate.RequireAdmin(http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /api/actors/{id}", h.gate.RequireAdmin(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/actors/{id}", h.gate.RequireAdmin(http.HandlerFunc(h.handleDelete)))
}

func (h *ActorHandler) handleList(w http.ResponseWriter, r *http.Request) {
	actors, err := h.catalog.ListActors(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, actors)
}

func (h *ActorHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.ActorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := h.catalog.CreateActor(r.Context(), models.Actor{Name: req.ActorName, DateOfBirth: req.DateOfBirth})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.ActorCreatedResponse{Message: "Actor created successfully", ActorID: id})
}

func (h *ActorHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgBadActorID)
		return
	}
	var req dto.ActorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	actor := models.Actor{ID: id, Name: req.ActorName, DateOfBirth: req.DateOfBirth}
	if err := h.catalog.UpdateActor(r.Context(), actor); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.Message(w, http.StatusOK, "Actor updated successfully")
}

func (h *ActorHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgBadActorID)
		return
	}
	if err := h.catalog.DeleteActor(r.Context(), id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.Message(w, http.StatusOK, "Actor deleted successfully")
}
