package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/models"
)

type mongoSiteConfig struct {
	backgrounds *mongo.Collection
	banners     *mongo.Collection
}

var singleton = bson.M{"_id": models.SingletonID}

func upsertAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
}

// upsertSingleton runs an upsert on the fixed singleton _id. Two first
// writes can both miss and race to insert; the loser gets a duplicate key
// error, and running it again matches the winner's document.
func upsertSingleton(op string, upsert func() error) error {
	err := translate(op, upsert())
	if errors.Is(err, apperr.ErrConflict) {
		err = translate(op, upsert())
	}
	return err
}

func (s *mongoSiteConfig) Background(ctx context.Context) (*models.Background, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var b models.Background
	if err := s.backgrounds.FindOne(ctx, singleton).Decode(&b); err != nil {
		return nil, translate("find background", err)
	}
	return &b, nil
}

func (s *mongoSiteConfig) SetBackground(ctx context.Context, b *models.Background) (*models.Background, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"type":       b.Type,
		"url":        b.URL,
		"updated_at": b.UpdatedAt,
	}}
	var saved models.Background
	err := upsertSingleton("set background", func() error {
		return s.backgrounds.FindOneAndUpdate(ctx, singleton, update, upsertAfter()).Decode(&saved)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *mongoSiteConfig) EventBanner(ctx context.Context) (*models.EventBanner, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var b models.EventBanner
	if err := s.banners.FindOne(ctx, singleton).Decode(&b); err != nil {
		return nil, translate("find event banner", err)
	}
	return &b, nil
}

func (s *mongoSiteConfig) SetEventBanner(ctx context.Context, b *models.EventBanner) (*models.EventBanner, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":      b.Title,
		"subtitle":   b.Subtitle,
		"image_url":  b.ImageURL,
		"updated_at": b.UpdatedAt,
	}}
	var saved models.EventBanner
	err := upsertSingleton("set event banner", func() error {
		return s.banners.FindOneAndUpdate(ctx, singleton, update, upsertAfter()).Decode(&saved)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
