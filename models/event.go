package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MediaNone  = "none"
	MediaImage = "image"
	MediaVideo = "video"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required,min=2"`
	Description string             `bson:"description" json:"description" validate:"required,min=10"`
	Date        time.Time          `bson:"date" json:"date"`
	Location    string             `bson:"location" json:"location" validate:"required,min=5"`
	Price       float64            `bson:"price" json:"price" validate:"gte=0"`
	MediaType   string             `bson:"media_type" json:"media_type" validate:"required,oneof=image video"`
	MediaURL    string             `bson:"media_url" json:"media_url" validate:"required,url"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
