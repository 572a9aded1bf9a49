package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/models"
)

type mongoMessages struct {
	col *mongo.Collection
}

func (s *mongoMessages) Insert(ctx context.Context, m *models.Message) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	// $push needs an array, never null.
	if m.LikedBy == nil {
		m.LikedBy = []string{}
	}
	_, err := s.col.InsertOne(ctx, m)
	return translate("insert message", err)
}

func (s *mongoMessages) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate("delete message", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *mongoMessages) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var m models.Message
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, translate("find message", err)
	}
	return &m, nil
}

func (s *mongoMessages) List(ctx context.Context, limit int64) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate("list messages", err)
	}
	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, translate("decode messages", err)
	}
	return messages, nil
}

func (s *mongoMessages) Like(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := s.col.UpdateOne(ctx, likeFilter(id, userID), likeUpdate(userID))
	if err != nil {
		return false, translate("like message", err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	// Nothing matched: either the message is gone or userID already liked it.
	n, err := s.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, translate("like message", err)
	}
	if n == 0 {
		return false, apperr.ErrNotFound
	}
	return false, nil
}
