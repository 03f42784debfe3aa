package server

import (
	"context"
	"fmt"

	"github.com/hongminglow/movie-catalog/internal/middleware"
	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/service"
)

// accountIdentifier lets the auth gates look accounts up through the auth
// service without depending on its error types.
type accountIdentifier struct {
	auth *service.AuthService
}

func (a accountIdentifier) Identify(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.auth.Identify(ctx, userID)
	if err == nil {
		return user, nil
	}
	if service.KindOf(err) == service.KindUnauthorized {
		return models.User{}, fmt.Errorf("%w: %v", middleware.ErrUnknownAccount, err)
	}
	return models.User{}, err
}
