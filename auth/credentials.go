package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/store"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Authenticator checks credentials against the user store.
type Authenticator struct {
	users     store.UserStore
	validator *models.Validator
	demo      bool
	logger    *slog.Logger
}

func NewAuthenticator(users store.UserStore, v *models.Validator, demoAccounts bool, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{users: users, validator: v, demo: demoAccounts, logger: logger}
}

// Authenticate returns the user behind email and password. Store failures
// are returned as they are; there is no retry.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = store.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if a.demo {
		if acct, ok := matchDemo(email, password); ok {
			return a.ensureDemoUser(ctx, acct, password)
		}
	}

	user, err := a.users.FindByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		a.logger.Info("login failed: unknown email", "email", email)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("failed to look up user", "email", email, "error", err)
		return nil, err
	}
	if !CheckPassword(user.Password, password) {
		a.logger.Info("login failed: wrong password", "email", email)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SignupRequest is the payload of a self-service signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// Register creates a user with a hashed password. Role defaults to user.
// A taken email yields apperr.ErrConflict.
func (a *Authenticator) Register(ctx context.Context, req SignupRequest) (*models.User, error) {
	req.Email = store.NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := a.validator.Struct(req); err != nil {
		return nil, err
	}
	if msg := passwordWeakness(req.Password); msg != "" {
		return nil, apperr.Invalid("password", msg)
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Role:      req.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.users.Insert(ctx, user); err != nil {
		if !errors.Is(err, apperr.ErrConflict) {
			a.logger.Error("failed to create user", "email", req.Email, "error", err)
		}
		return nil, err
	}
	a.logger.Info("user registered", "id", user.ID.Hex(), "role", user.Role)
	return user, nil
}

func passwordWeakness(pw string) string {
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	switch {
	case !upper:
		return "must contain at least one uppercase letter"
	case !lower:
		return "must contain at least one lowercase letter"
	case !digit:
		return "must contain at least one number"
	case !special:
		return "must contain at least one special character"
	}
	return ""
}
