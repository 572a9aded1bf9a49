package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is a snapshot of the poster taken when the message was sent.
type Author struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content" validate:"required,min=1"`
	MediaType string             `bson:"media_type" json:"media_type" validate:"required,oneof=none image video"`
	MediaURL  string             `bson:"media_url" json:"media_url" validate:"omitempty,url"`
	User      Author             `bson:"user" json:"user"`
	Likes     int                `bson:"likes" json:"likes" validate:"gte=0"`
	LikedBy   []string           `bson:"liked_by" json:"liked_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// LikedByUser reports whether userID is already in the liker set.
func (m *Message) LikedByUser(userID string) bool {
	for _, id := range m.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
