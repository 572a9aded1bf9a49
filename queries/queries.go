// Package queries holds the read side. Reads go straight to the store; a
// lookup by identifier that matches nothing returns nil without an error.
package queries

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/store"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ClampLimit maps a missing or invalid limit to DefaultLimit and caps it at
// MaxLimit.
func ClampLimit(n int) int64 {
	switch {
	case n <= 0:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	default:
		return int64(n)
	}
}

type Queries struct {
	stores     store.Stores
	bookingURL string
	logger     *slog.Logger
	now        func() time.Time
}

func New(stores store.Stores, bookingURL string, logger *slog.Logger) *Queries {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queries{stores: stores, bookingURL: bookingURL, logger: logger, now: time.Now}
}

// EventPage is a limited listing plus the number of matching documents.
type EventPage struct {
	Events []models.Event `json:"events"`
	Total  int64          `json:"total"`
}

type GaragePage struct {
	Garages []models.Garage `json:"garages"`
	Total   int64           `json:"total"`
}

// UpcomingEvents returns events dated now or later, earliest first.
func (q *Queries) UpcomingEvents(ctx context.Context, limit int) (*EventPage, error) {
	now := q.now()
	events, err := q.stores.Events().List(ctx, store.EventFilter{From: &now, Limit: ClampLimit(limit)})
	if err != nil {
		return nil, q.failed(ctx, "failed to list events", err)
	}
	total, err := q.stores.Events().Count(ctx, &now)
	if err != nil {
		return nil, q.failed(ctx, "failed to count events", err)
	}
	return &EventPage{Events: events, Total: total}, nil
}

// Events returns every event, past ones included, earliest first.
func (q *Queries) Events(ctx context.Context) ([]models.Event, error) {
	events, err := q.stores.Events().List(ctx, store.EventFilter{})
	if err != nil {
		return nil, q.failed(ctx, "failed to list events", err)
	}
	return events, nil
}

func (q *Queries) EventByID(ctx context.Context, id string) (*models.Event, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	e, err := q.stores.Events().FindByID(ctx, oid)
	return found(e, q.failedLookup(ctx, "failed to find event", err))
}

// DirectoryGarages lists garages by rating, highest first, optionally
// restricted to one category.
func (q *Queries) DirectoryGarages(ctx context.Context, category string, limit int) (*GaragePage, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	garages, err := q.stores.Garages().List(ctx, store.GarageFilter{
		Category: category,
		Sort:     store.ByRating,
		Limit:    ClampLimit(limit),
	})
	if err != nil {
		return nil, q.failed(ctx, "failed to list garages", err)
	}
	total, err := q.stores.Garages().Count(ctx, category)
	if err != nil {
		return nil, q.failed(ctx, "failed to count garages", err)
	}
	return &GaragePage{Garages: garages, Total: total}, nil
}

// Garages lists every garage, newest first. It backs the admin list.
func (q *Queries) Garages(ctx context.Context, category string) ([]models.Garage, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	garages, err := q.stores.Garages().List(ctx, store.GarageFilter{Category: category, Sort: store.ByRecency})
	if err != nil {
		return nil, q.failed(ctx, "failed to list garages", err)
	}
	return garages, nil
}

func (q *Queries) GarageByID(ctx context.Context, id string) (*models.Garage, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	g, err := q.stores.Garages().FindByID(ctx, oid)
	return found(g, q.failedLookup(ctx, "failed to find garage", err))
}

// Messages returns the newest messages first.
func (q *Queries) Messages(ctx context.Context, limit int) ([]models.Message, error) {
	messages, err := q.stores.Messages().List(ctx, ClampLimit(limit))
	if err != nil {
		return nil, q.failed(ctx, "failed to list messages", err)
	}
	return messages, nil
}

func (q *Queries) UserByID(ctx context.Context, id string) (*models.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	u, err := q.stores.Users().FindByID(ctx, oid)
	return found(u, q.failedLookup(ctx, "failed to find user", err))
}

// Background returns the configured background, or nil before one is set.
func (q *Queries) Background(ctx context.Context) (*models.Background, error) {
	b, err := q.stores.SiteConfig().Background(ctx)
	return found(b, q.failedLookup(ctx, "failed to load background", err))
}

func (q *Queries) EventBanner(ctx context.Context) (*models.EventBanner, error) {
	b, err := q.stores.SiteConfig().EventBanner(ctx)
	return found(b, q.failedLookup(ctx, "failed to load event banner", err))
}

// TicketOptions prices the ticket tiers of an event, or returns nil when the
// event does not exist.
func (q *Queries) TicketOptions(ctx context.Context, eventID string) (*models.TicketOptions, error) {
	e, err := q.EventByID(ctx, eventID)
	if err != nil || e == nil {
		return nil, err
	}
	opts := models.NewTicketOptions(*e, q.bookingURL)
	return &opts, nil
}

func checkCategory(category string) error {
	switch category {
	case "", models.CategoryGarage, models.CategoryParts, models.CategoryTravel:
		return nil
	}
	return apperr.Invalid("category", "must be one of: Garage, Parts, Travel")
}

func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// failedLookup clears ErrNotFound and logs anything else.
func (q *Queries) failedLookup(ctx context.Context, msg string, err error) error {
	if err == nil || errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return q.failed(ctx, msg, err)
}

func (q *Queries) failed(ctx context.Context, msg string, err error) error {
	q.logger.ErrorContext(ctx, msg, "error", err)
	return err
}

func found[T any](v *T, err error) (*T, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return v, nil
}
