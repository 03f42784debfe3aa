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

const msgBadMovieID = "movie id must be a positive integer"

// MovieHandler serves the movie list, video links and the admin movie screens.
type MovieHandler struct {
	catalog *service.CatalogService
	gate    *middleware.Authenticator
	logger  *slog.Logger
}

// NewMovieHandler constructs the handler.
func NewMovieHandler(catalog *service.CatalogService, gate *middleware.Authenticator, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{catalog: catalog, gate: gate, logger: logger}
}

// Register attaches movie routes to the mux. Reads are public, writes need an admin.
func (h *MovieHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/movies", h.handleList)
	mux.HandleFunc("GET /api/movies/genres", h.handleGenres)
	mux.HandleFunc("GET /api/movies/directors", h.handleDirectors)
	mux.HandleFunc("GET /api/movies/video-link/{name}", h.handleVideoLink)
	mux.HandleFunc("GET /api/movies/credits/{id}", h.handleActors)

	mux.Handle("POST /api/movies/create", h.gate.RequireAdmin(http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /api/movies/{id}", h.gate.RequireAdmin(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/movies/{id}", h.gate.RequireAdmin(http.HandlerFunc(h.handleDelete)))
	mux.Handle("POST /api/movies/actors", h.gate.RequireAdmin(http.HandlerFunc(h.handleAddActors)))
}

func (h *MovieHandler) handleList(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.ListMovies(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, movies)
}

func (h *MovieHandler) handleGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.ListGenres(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, genres)
}

func (h *MovieHandler) handleDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := h.catalog.ListDirectors(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, directors)
}

func (h *MovieHandler) handleVideoLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.catalog.VideoLink(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.VideoLinkResponse{VideoLink: link})
}

func (h *MovieHandler) handleActors(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgBadMovieID)
		return
	}
	actors, err := h.catalog.ListMovieActors(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, actors)
}

func (h *MovieHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.MovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := h.catalog.CreateMovie(r.Context(), movieFromRequest(req))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.MovieCreatedResponse{Message: "Movie added successfully!", MovieID: id})
}

func (h *MovieHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgBadMovieID)
		return
	}
	var req dto.MovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	movie := movieFromRequest(req)
	movie.ID = id
	if err := h.catalog.UpdateMovie(r.Context(), movie); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.Message(w, http.StatusOK, "Movie updated successfully!")
}

func (h *MovieHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgBadMovieID)
		return
	}
	if err := h.catalog.DeleteMovie(r.Context(), id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.Message(w, http.StatusOK, "Movie deleted successfully!")
}

func (h *MovieHandler) handleAddActors(w http.ResponseWriter, r *http.Request) {
	var req dto.MovieActorsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.catalog.AddActors(r.Context(), req.MovieID, req.ActorIDs); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.Message(w, http.StatusOK, "Actors successfully added to the movie!")
}

func movieFromRequest(req dto.MovieRequest) models.Movie {
	return models.Movie{
		Title:       req.Title,
		ReleaseDate: req.ReleaseDate,
		Rating:      req.Rating,
		Description: req.Description,
		VideoLink:   req.VideoLink,
		GenreID:     req.GenreID,
		DirectorID:  req.DirectorID,
	}
}
