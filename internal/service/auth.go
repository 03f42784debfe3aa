package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hongminglow/movie-catalog/internal/auth"
	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/storage"
)

// Messages shown to clients by the auth flows.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgAdminsOnly         = "Access denied: Admins only"
	MsgEmailInUse         = "Email already in use"
)

// Session is the identity handed to a client after a successful login.
type Session struct {
	User  models.User
	Token string
}

// AuthService validates credentials and issues capability tokens.
type AuthService struct {
	users             storage.UserStore
	tokens            *auth.TokenManager
	logger            *slog.Logger
	minPasswordLength int

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService constructs the service.
func NewAuthService(users storage.UserStore, tokens *auth.TokenManager, logger *slog.Logger, minPasswordLength int) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger, minPasswordLength: minPasswordLength}
}

// Signup registers a new account with the default role.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return models.User{}, invalidInput("username, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return models.User{}, invalidInput("email address is not valid")
	}
	if utf8.RuneCountInString(password) < s.minPasswordLength || !utf8.ValidString(password) {
		return models.User{}, invalidInput("password is too short")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, conflict(MsgEmailInUse, nil)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, internal("Error signing up user", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, internal("Error signing up user", err)
	}
	created, err := s.users.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, conflict(MsgEmailInUse, err)
		}
		return models.User{}, internal("Error signing up user", err)
	}
	s.logger.InfoContext(ctx, "user signed up", slog.Int64("user_id", created.ID))
	return created, nil
}

// Login verifies credentials for any role.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	return s.issue(ctx, user)
}

// LoginAdmin verifies credentials and requires the Admin role. A non-admin with
// the right password gets Forbidden, which is only reported after the password
// matched.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (Session, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	if !user.IsAdmin() {
		s.logger.WarnContext(ctx, "admin login refused for non-admin", slog.Int64("user_id", user.ID))
		return Session{}, forbidden(MsgAdminsOnly)
	}
	return s.issue(ctx, user)
}

// Identify re-reads an account so callers see its current role.
func (s *AuthService) Identify(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, unauthorized("Account no longer exists")
		}
		return models.User{}, internal("Error loading account", err)
	}
	return user, nil
}

// EnsureAdmin makes sure an account with the given email exists and holds the
// Admin role. It is used to seed the first administrator at start-up.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (models.User, error) {
	email = normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.IsAdmin() {
			return user, nil
		}
		if err := s.users.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
			return models.User{}, internal("Error promoting admin", err)
		}
		user.Role = models.RoleAdmin
		s.logger.InfoContext(ctx, "promoted seeded account to admin", slog.Int64("user_id", user.ID))
		return user, nil
	case errors.Is(err, storage.ErrNotFound):
	default:
		return models.User{}, internal("Error loading admin", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, internal("Error seeding admin", err)
	}
	created, err := s.users.CreateUser(ctx, models.User{
		Username:     strings.TrimSpace(username),
		Email:        email,
		Role:         models.RoleAdmin,
		PasswordHash: hash,
	})
	if err != nil {
		return models.User{}, internal("Error seeding admin", err)
	}
	s.logger.InfoContext(ctx, "seeded admin account", slog.Int64("user_id", created.ID))
	return created, nil
}

// verify collapses unknown email and wrong password into one outcome.
func (s *AuthService) verify(ctx context.Context, email, password string) (models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, invalidInput("email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// keep timing close to the wrong-password path
			auth.CheckPassword(s.dummy(), password)
			s.logger.InfoContext(ctx, "login failed: unknown email")
			return models.User{}, unauthorized(MsgInvalidCredentials)
		}
		return models.User{}, internal("Error logging in user", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.InfoContext(ctx, "login failed: wrong password", slog.Int64("user_id", user.ID))
		return models.User{}, unauthorized(MsgInvalidCredentials)
	}
	return user, nil
}

func (s *AuthService) issue(ctx context.Context, user models.User) (Session, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return Session{}, internal("failed to generate token", err)
	}
	s.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID), slog.String("role", user.Role))
	return Session{User: user, Token: token}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("not-a-real-password")
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
