package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/models"
)

type mongoEvents struct {
	col *mongo.Collection
}

func (s *mongoEvents) Insert(ctx context.Context, e *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, e)
	return translate("insert event", err)
}

func (s *mongoEvents) Update(ctx context.Context, e *models.Event) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Event
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": e.ID}, eventUpdate(e), opts).Decode(&updated)
	if err != nil {
		return nil, translate("update event", err)
	}
	return &updated, nil
}

func (s *mongoEvents) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate("delete event", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *mongoEvents) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var e models.Event
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, translate("find event", err)
	}
	return &e, nil
}

func (s *mongoEvents) List(ctx context.Context, f EventFilter) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	filter, opts := eventQuery(f)
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate("list events", err)
	}
	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, translate("decode events", err)
	}
	return events, nil
}

func (s *mongoEvents) Count(ctx context.Context, from *time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, eventFilter(from))
	return n, translate("count events", err)
}
