package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hongminglow/movie-catalog/internal/http/respond"
	"github.com/hongminglow/movie-catalog/internal/middleware"
	"github.com/hongminglow/movie-catalog/internal/models/dto"
	"github.com/hongminglow/movie-catalog/internal/service"
)

const (
	msgOwnWatchlistOnly = "You can only access your own watchlist"
	msgBadWatchlistIDs  = "userId and movieId must be positive integers"
)

// WatchlistHandler exposes a user's saved movies.
type WatchlistHandler struct {
	watchlist *service.WatchlistService
	gate      *middleware.Authenticator
	logger    *slog.Logger
}

// NewWatchlistHandler constructs the handler.
func NewWatchlistHandler(watchlist *service.WatchlistService, gate *middleware.Authenticator, logger *slog.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlist, gate: gate, logger: logger}
}

// Register attaches watchlist routes to the mux. Every route needs a session.
func (h *WatchlistHandler) Register(mux *http.ServeMux) {
	mux.Handle("POST /api/users/watchlist", h.gate.RequireUser(http.HandlerFunc(h.handleAdd)))
	mux.Handle("GET /api/users/watchlist/{userId}", h.gate.RequireUser(http.HandlerFunc(h.handleList)))
	mux.Handle("GET /api/users/watchlist/{userId}/contains/{movieId}", h.gate.RequireUser(http.HandlerFunc(h.handleContains)))
	mux.Handle("DELETE /api/users/watchlist/{userId}/remove/{movieId}", h.gate.RequireUser(http.HandlerFunc(h.handleRemove)))
}

// allowed reports whether the session may act on userID's list; admins may act on any.
func (h *WatchlistHandler) allowed(w http.ResponseWriter, r *http.Request, userID int64) bool {
	user, ok := middleware.CurrentUser(r.Context())
	if ok && (user.ID == userID || user.IsAdmin()) {
		return true
	}
	respond.Error(w, http.StatusForbidden, msgOwnWatchlistOnly)
	return false
}

func (h *WatchlistHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req dto.AddToWatchlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID > 0 && !h.allowed(w, r, req.UserID) {
		return
	}
	if err := h.watchlist.Add(r.Context(), req.UserID, req.MovieTitle); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.Message(w, http.StatusCreated, service.MsgAddedToWatchlist)
}

func (h *WatchlistHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "UserId is required")
		return
	}
	if !h.allowed(w, r, userID) {
		return
	}
	entries, err := h.watchlist.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if len(entries) == 0 {
		respond.Error(w, http.StatusNotFound, service.MsgWatchlistEmpty)
		return
	}
	respond.JSON(w, http.StatusOK, entries)
}

func (h *WatchlistHandler) handleContains(w http.ResponseWriter, r *http.Request) {
	userID, okUser := pathID(r, "userId")
	movieID, okMovie := pathID(r, "movieId")
	if !okUser || !okMovie {
		respond.Error(w, http.StatusBadRequest, msgBadWatchlistIDs)
		return
	}
	if !h.allowed(w, r, userID) {
		return
	}
	found, err := h.watchlist.Contains(r.Context(), userID, movieID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.WatchlistContainsResponse{InWatchlist: found})
}

func (h *WatchlistHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	userID, okUser := pathID(r, "userId")
	movieID, okMovie := pathID(r, "movieId")
	if !okUser || !okMovie {
		respond.Error(w, http.StatusBadRequest, msgBadWatchlistIDs)
		return
	}
	if !h.allowed(w, r, userID) {
		return
	}
	removed, err := h.watchlist.Remove(r.Context(), userID, movieID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if !removed {
		respond.JSON(w, http.StatusBadRequest, dto.RemoveFromWatchlistResponse{Message: service.MsgNotInWatchlist})
		return
	}
	respond.JSON(w, http.StatusOK, dto.RemoveFromWatchlistResponse{Message: service.MsgRemoved, Removed: true})
}
