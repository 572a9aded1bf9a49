package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewTicketOptions(t *testing.T) {
	e := Event{ID: primitive.NewObjectID(), Title: "Track Day", Location: "Buddh Circuit", Price: 1500}

	opts := NewTicketOptions(e, "https://tickets.example.com")

	assert.Equal(t, e.ID, opts.EventID)
	assert.Equal(t, "https://tickets.example.com", opts.BookingURL)
	if assert.Len(t, opts.Tiers, 3) {
		assert.Equal(t, TicketTier{Name: "Regular Admission", Multiplier: 1, Price: 1500}, opts.Tiers[0])
		assert.Equal(t, 3000.0, opts.Tiers[1].Price)
		assert.Equal(t, 5250.0, opts.Tiers[2].Price)
	}
	assert.Equal(t, 150.0, opts.ServiceFee)
	assert.Equal(t, 1650.0, opts.Total)
}

func TestNewTicketOptionsRoundsToCents(t *testing.T) {
	opts := NewTicketOptions(Event{Price: 9.99}, "")
	assert.Equal(t, 1.0, opts.ServiceFee)
	assert.Equal(t, 10.99, opts.Total)
	assert.Equal(t, 19.98, opts.Tiers[1].Price)
}
