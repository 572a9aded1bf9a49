package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceFeeRate is charged on top of a single regular ticket.
const ServiceFeeRate = 0.1

type TicketTier struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
	Price      float64 `json:"price"`
}

// TicketOptions is the checkout summary for an event. Purchase happens at
// BookingURL, outside this service.
type TicketOptions struct {
	EventID    primitive.ObjectID `json:"event_id"`
	Title      string             `json:"title"`
	Date       time.Time          `json:"date"`
	Location   string             `json:"location"`
	Tiers      []TicketTier       `json:"tiers"`
	ServiceFee float64            `json:"service_fee"`
	Total      float64            `json:"total"`
	BookingURL string             `json:"booking_url"`
}

var ticketTiers = []struct {
	name       string
	multiplier float64
}{
	{"Regular Admission", 1},
	{"VIP Package", 2},
	{"Family Pack", 3.5},
}

func NewTicketOptions(e Event, bookingURL string) TicketOptions {
	opts := TicketOptions{
		EventID:    e.ID,
		Title:      e.Title,
		Date:       e.Date,
		Location:   e.Location,
		BookingURL: bookingURL,
	}
	for _, t := range ticketTiers {
		opts.Tiers = append(opts.Tiers, TicketTier{
			Name:       t.name,
			Multiplier: t.multiplier,
			Price:      roundCents(e.Price * t.multiplier),
		})
	}
	opts.ServiceFee = roundCents(e.Price * ServiceFeeRate)
	opts.Total = roundCents(e.Price + e.Price*ServiceFeeRate)
	return opts
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
