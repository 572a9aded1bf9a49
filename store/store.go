// Package store persists the club's documents in MongoDB.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/phillip/autoclub-go/apperr"
)

const (
	writeTimeout = 5 * time.Second
	listTimeout  = 10 * time.Second
)

const (
	colUsers        = "users"
	colGarages      = "garages"
	colEvents       = "events"
	colMessages     = "messages"
	colBackgrounds  = "backgrounds"
	colEventBanners = "eventbanners"
)

// Store owns the MongoDB client for the lifetime of the process.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri and pings the primary before returning.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping checks the connection; used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes the queries rely on. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		colUsers: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		colEvents: {{Keys: bson.D{{Key: "date", Value: 1}}}},
		colGarages: {{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "rating", Value: -1}},
		}},
		colMessages: {{Keys: bson.D{{Key: "created_at", Value: -1}}}},
	}
	for col, models := range specs {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col, err)
		}
	}
	return nil
}

func (s *Store) Users() UserStore {
	return &mongoUsers{col: s.db.Collection(colUsers)}
}

func (s *Store) Garages() GarageStore {
	return &mongoGarages{col: s.db.Collection(colGarages)}
}

func (s *Store) Events() EventStore {
	return &mongoEvents{col: s.db.Collection(colEvents)}
}

func (s *Store) Messages() MessageStore {
	return &mongoMessages{col: s.db.Collection(colMessages)}
}

func (s *Store) SiteConfig() SiteConfigStore {
	return &mongoSiteConfig{
		backgrounds: s.db.Collection(colBackgrounds),
		banners:     s.db.Collection(colEventBanners),
	}
}

// translate maps driver errors onto the apperr taxonomy.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperr.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return apperr.ErrConflict
	default:
		return apperr.Store(op, err)
	}
}
