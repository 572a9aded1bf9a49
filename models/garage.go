package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryGarage = "Garage"
	CategoryParts  = "Parts"
	CategoryTravel = "Travel"
)

const DefaultOpenHours = "Mon-Fri: 9am-6pm, Sat: 10am-4pm"

// Garage is a directory listing. Category selects which of the variant
// fields applies: OpenHours for Garage, Availability for Parts, MapURL for
// Travel. The others must stay unset.
type Garage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required,min=2"`
	Description string             `bson:"description" json:"description" validate:"required,min=10"`
	Category    string             `bson:"category" json:"category" validate:"required,oneof=Garage Parts Travel"`
	Location    string             `bson:"location" json:"location" validate:"required,min=5"`
	Rating      float64            `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
	ReviewCount int                `bson:"review_count" json:"review_count" validate:"gte=0"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,min=10"`
	Image       string             `bson:"image" json:"image" validate:"required,url"`

	OpenHours    *string `bson:"open_hours,omitempty" json:"open_hours,omitempty"`
	Availability *bool   `bson:"availability,omitempty" json:"availability,omitempty"`
	MapURL       *string `bson:"map_url,omitempty" json:"map_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ApplyVariantDefaults fills the variant field of the garage's own category
// when it was left out.
func (g *Garage) ApplyVariantDefaults() {
	switch g.Category {
	case CategoryGarage:
		if g.OpenHours == nil {
			hours := DefaultOpenHours
			g.OpenHours = &hours
		}
	case CategoryParts:
		if g.Availability == nil {
			available := true
			g.Availability = &available
		}
	case CategoryTravel:
		if g.MapURL != nil && *g.MapURL == "" {
			g.MapURL = nil
		}
	}
}
