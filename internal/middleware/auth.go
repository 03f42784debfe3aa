package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hongminglow/movie-catalog/internal/auth"
	"github.com/hongminglow/movie-catalog/internal/http/respond"
	"github.com/hongminglow/movie-catalog/internal/models"
)

const (
	MsgMissingAuthorization = "Authorization header missing"
	MsgInvalidAuthorization = "Invalid Authorization header"
	MsgInvalidToken         = "Invalid or expired token"
	MsgAccountGone          = "Account no longer exists"
	MsgAdminsOnly           = "Access denied: Admins only"
)

// ErrUnknownAccount is returned by an Identifier when the token's subject no
// longer has an account.
var ErrUnknownAccount = errors.New("account no longer exists")

// Identifier loads the current state of an account. It returns an error
// wrapping ErrUnknownAccount when the account is gone.
type Identifier interface {
	Identify(ctx context.Context, userID int64) (models.User, error)
}

type userKey struct{}

// CurrentUser returns the account attached by RequireUser or RequireAdmin.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}

// WithUser attaches an authenticated account to ctx.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// Authenticator verifies bearer tokens and resolves them to live accounts.
// The role used for authorization is always the stored one, never the token's.
type Authenticator struct {
	tokens *auth.TokenManager
	users  Identifier
	logger *slog.Logger
}

// NewAuthenticator constructs the gate.
func NewAuthenticator(tokens *auth.TokenManager, users Identifier, logger *slog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger}
}

// RequireUser rejects requests without a valid token with 401.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireAdmin is RequireUser plus a 403 for accounts that are not currently admins.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			a.logger.WarnContext(r.Context(), "admin route refused",
				slog.Int64("user_id", user.ID), slog.String("path", r.URL.Path))
			respond.Error(w, http.StatusForbidden, MsgAdminsOnly)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (a *Authenticator) authenticate(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		respond.Error(w, http.StatusUnauthorized, MsgMissingAuthorization)
		return models.User{}, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		respond.Error(w, http.StatusUnauthorized, MsgInvalidAuthorization)
		return models.User{}, false
	}

	claims, err := a.tokens.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, MsgInvalidToken)
		return models.User{}, false
	}
	userID, err := claims.UserID()
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, MsgInvalidToken)
		return models.User{}, false
	}

	user, err := a.users.Identify(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUnknownAccount) {
			respond.Error(w, http.StatusUnauthorized, MsgAccountGone)
			return models.User{}, false
		}
		a.logger.ErrorContext(r.Context(), "failed to load account for token",
			slog.Int64("user_id", userID), slog.Any("error", err))
		respond.Error(w, http.StatusInternalServerError, "Error loading account")
		return models.User{}, false
	}
	return user, true
}
