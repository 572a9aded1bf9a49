package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phillip/autoclub-go/models"
)

// Lookups return apperr.ErrNotFound when nothing matches. Inserts return
// apperr.ErrConflict on a unique index violation. Everything else surfaces
// as *apperr.StoreError.

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// GarageSort selects the ordering of a garage listing.
type GarageSort int

const (
	// ByRating orders by rating, highest first.
	ByRating GarageSort = iota
	// ByRecency orders by creation time, newest first.
	ByRecency
)

type GarageFilter struct {
	Category string // empty matches every category
	Sort     GarageSort
	Limit    int64 // 0 means no limit
}

type GarageStore interface {
	Insert(ctx context.Context, g *models.Garage) error
	Update(ctx context.Context, g *models.Garage) (*models.Garage, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Garage, error)
	List(ctx context.Context, f GarageFilter) ([]models.Garage, error)
	Count(ctx context.Context, category string) (int64, error)
}

type EventFilter struct {
	From  *time.Time // only events dated at or after From
	Limit int64
}

// EventStore lists events by date, earliest first.
type EventStore interface {
	Insert(ctx context.Context, e *models.Event) error
	Update(ctx context.Context, e *models.Event) (*models.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	List(ctx context.Context, f EventFilter) ([]models.Event, error)
	Count(ctx context.Context, from *time.Time) (int64, error)
}

type MessageStore interface {
	Insert(ctx context.Context, m *models.Message) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	// List returns the newest messages first.
	List(ctx context.Context, limit int64) ([]models.Message, error)
	// Like adds userID to the liker set and bumps the count in one step.
	// It reports false, with no error, when userID had already liked it.
	Like(ctx context.Context, id primitive.ObjectID, userID string) (bool, error)
}

// SiteConfigStore holds the singleton documents. Setters upsert.
type SiteConfigStore interface {
	Background(ctx context.Context) (*models.Background, error)
	SetBackground(ctx context.Context, b *models.Background) (*models.Background, error)
	EventBanner(ctx context.Context) (*models.EventBanner, error)
	SetEventBanner(ctx context.Context, b *models.EventBanner) (*models.EventBanner, error)
}

// Stores bundles every collection store; *Store and memstore satisfy it.
type Stores interface {
	Users() UserStore
	Garages() GarageStore
	Events() EventStore
	Messages() MessageStore
	SiteConfig() SiteConfigStore
}
