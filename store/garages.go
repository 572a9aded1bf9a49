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

type mongoGarages struct {
	col *mongo.Collection
}

func (s *mongoGarages) Insert(ctx context.Context, g *models.Garage) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, g)
	return translate("insert garage", err)
}

func (s *mongoGarages) Update(ctx context.Context, g *models.Garage) (*models.Garage, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Garage
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": g.ID}, garageUpdate(g), opts).Decode(&updated)
	if err != nil {
		return nil, translate("update garage", err)
	}
	return &updated, nil
}

func (s *mongoGarages) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate("delete garage", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *mongoGarages) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Garage, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var g models.Garage
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return nil, translate("find garage", err)
	}
	return &g, nil
}

func (s *mongoGarages) List(ctx context.Context, f GarageFilter) ([]models.Garage, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	filter, opts := garageQuery(f)
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate("list garages", err)
	}
	garages := []models.Garage{}
	if err := cursor.All(ctx, &garages); err != nil {
		return nil, translate("decode garages", err)
	}
	return garages, nil
}

func (s *mongoGarages) Count(ctx context.Context, category string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	filter, _ := garageQuery(GarageFilter{Category: category})
	n, err := s.col.CountDocuments(ctx, filter)
	return n, translate("count garages", err)
}
