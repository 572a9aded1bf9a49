// Package actions holds every mutating operation. Each one resolves the
// caller's session, checks the role where required, validates the payload,
// performs exactly one document write and then notifies the affected read
// views.
package actions

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/auth"
	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/revalidate"
	"github.com/phillip/autoclub-go/store"
)

type Actions struct {
	stores    store.Stores
	validator *models.Validator
	notifier  revalidate.Notifier
	logger    *slog.Logger
	now       func() time.Time
}

func New(stores store.Stores, v *models.Validator, n revalidate.Notifier, logger *slog.Logger) *Actions {
	if n == nil {
		n = revalidate.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Actions{stores: stores, validator: v, notifier: n, logger: logger, now: time.Now}
}

// requireSession returns the caller's session or apperr.ErrUnauthorized.
func requireSession(ctx context.Context) (*auth.Session, error) {
	s := auth.SessionFromContext(ctx)
	if s == nil || s.UserID == "" {
		return nil, apperr.ErrUnauthorized
	}
	return s, nil
}

func requireAdmin(ctx context.Context) (*auth.Session, error) {
	s, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !s.IsAdmin() {
		return nil, apperr.ErrUnauthorized
	}
	return s, nil
}

// parseID turns a malformed identifier into not-found; no document can have it.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.ErrNotFound
	}
	return oid, nil
}

// storeFailed logs a write failure unless it is part of the expected
// taxonomy, and returns err unchanged.
func (a *Actions) storeFailed(ctx context.Context, msg string, err error, args ...any) error {
	if !errors.Is(err, apperr.ErrNotFound) && !errors.Is(err, apperr.ErrConflict) {
		a.logger.ErrorContext(ctx, msg, append(args, "error", err)...)
	}
	return err
}
