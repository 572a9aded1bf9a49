package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phillip/autoclub-go/models"
)

func garageQuery(f GarageFilter) (bson.M, *options.FindOptions) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	opts := options.Find()
	switch f.Sort {
	case ByRecency:
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	default:
		opts.SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "review_count", Value: -1}})
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	return filter, opts
}

func eventFilter(from *time.Time) bson.M {
	filter := bson.M{}
	if from != nil {
		filter["date"] = bson.M{"$gte": *from}
	}
	return filter
}

func eventQuery(f EventFilter) (bson.M, *options.FindOptions) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	return eventFilter(f.From), opts
}

// garageUpdate replaces every editable field. Variant fields that are nil
// are removed so a category change cannot leave a stale variant behind.
func garageUpdate(g *models.Garage) bson.M {
	set := bson.M{
		"name":         g.Name,
		"description":  g.Description,
		"category":     g.Category,
		"location":     g.Location,
		"rating":       g.Rating,
		"review_count": g.ReviewCount,
		"email":        g.Email,
		"phone":        g.Phone,
		"image":        g.Image,
		"updated_at":   g.UpdatedAt,
	}
	unset := bson.M{}
	if g.OpenHours != nil {
		set["open_hours"] = *g.OpenHours
	} else {
		unset["open_hours"] = ""
	}
	if g.Availability != nil {
		set["availability"] = *g.Availability
	} else {
		unset["availability"] = ""
	}
	if g.MapURL != nil {
		set["map_url"] = *g.MapURL
	} else {
		unset["map_url"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func eventUpdate(e *models.Event) bson.M {
	return bson.M{"$set": bson.M{
		"title":       e.Title,
		"description": e.Description,
		"date":        e.Date,
		"location":    e.Location,
		"price":       e.Price,
		"media_type":  e.MediaType,
		"media_url":   e.MediaURL,
		"updated_at":  e.UpdatedAt,
	}}
}

// likeFilter matches the message only while userID is not yet a liker, so
// the update below can apply at most once per user.
func likeFilter(id primitive.ObjectID, userID string) bson.M {
	return bson.M{"_id": id, "liked_by": bson.M{"$ne": userID}}
}

func likeUpdate(userID string) bson.M {
	return bson.M{
		"$inc":  bson.M{"likes": 1},
		"$push": bson.M{"liked_by": userID},
	}
}
