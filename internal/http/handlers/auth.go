package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hongminglow/movie-catalog/internal/http/respond"
	"github.com/hongminglow/movie-catalog/internal/middleware"
	"github.com/hongminglow/movie-catalog/internal/models/dto"
	"github.com/hongminglow/movie-catalog/internal/service"
)

// AuthHandler owns the signup, login and session endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	gate    *middleware.Authenticator
	limiter *middleware.RateLimiter
	logger  *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(auth *service.AuthService, gate *middleware.Authenticator, limiter *middleware.RateLimiter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, gate: gate, limiter: limiter, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.Handle("POST /api/users/signup", h.limiter.Limit(http.HandlerFunc(h.handleSignup)))
	mux.Handle("POST /api/users/login", h.limiter.Limit(http.HandlerFunc(h.handleLogin)))
	mux.Handle("POST /api/users/login-admin", h.limiter.Limit(http.HandlerFunc(h.handleLoginAdmin)))
	mux.Handle("GET /api/users/me", h.gate.RequireUser(http.HandlerFunc(h.handleMe)))
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.auth.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		// a taken email is reported as a plain bad request on this route
		if service.KindOf(err) == service.KindConflict {
			respond.Error(w, http.StatusBadRequest, service.MsgEmailInUse)
			return
		}
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.SignupResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Message: "Login successful", Token: session.Token, User: session.User})
}

func (h *AuthHandler) handleLoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.auth.LoginAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Message: "Admin login successful", Token: session.Token, User: session.User})
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())
	respond.JSON(w, http.StatusOK, dto.MeResponse{User: user})
}
