package models

import "time"

// SingletonID is the fixed _id of every site configuration document, so
// each collection holds at most one.
const SingletonID = "current"

type Background struct {
	ID        string    `bson:"_id" json:"-"`
	Type      string    `bson:"type" json:"type" validate:"required,oneof=image video"`
	URL       string    `bson:"url" json:"url" validate:"required,url"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type EventBanner struct {
	ID        string    `bson:"_id" json:"-"`
	Title     string    `bson:"title" json:"title" validate:"required,min=2"`
	Subtitle  string    `bson:"subtitle" json:"subtitle" validate:"required,min=10"`
	ImageURL  string    `bson:"image_url" json:"image_url" validate:"required,url"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
