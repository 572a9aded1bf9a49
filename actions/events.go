package actions

import (
	"context"
	"strings"
	"time"

	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/revalidate"
)

type EventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	MediaType   string    `json:"media_type"`
	MediaURL    string    `json:"media_url"`
}

func (in EventInput) event() models.Event {
	e := models.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		Location:    strings.TrimSpace(in.Location),
		Price:       in.Price,
		MediaType:   in.MediaType,
		MediaURL:    strings.TrimSpace(in.MediaURL),
	}
	if e.MediaType == "" {
		e.MediaType = models.MediaImage
	}
	return e
}

func (a *Actions) validateEvent(e models.Event) error {
	err := a.validator.Struct(e)
	if e.Date.IsZero() {
		if ve, ok := err.(*apperr.ValidationError); ok {
			ve.Fields["date"] = "is required"
			return ve
		}
		return apperr.Invalid("date", "is required")
	}
	return err
}

var eventPaths = []string{revalidate.PathHome, revalidate.PathEvents, revalidate.PathAdminEvents}

func (a *Actions) AddEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	e := in.event()
	if err := a.validateEvent(e); err != nil {
		return nil, err
	}

	now := a.now()
	e.CreatedAt, e.UpdatedAt = now, now
	if err := a.stores.Events().Insert(ctx, &e); err != nil {
		return nil, a.storeFailed(ctx, "failed to add event", err)
	}

	a.logger.InfoContext(ctx, "event added", "id", e.ID.Hex(), "date", e.Date)
	a.notifier.Invalidate(ctx, eventPaths...)
	return &e, nil
}

func (a *Actions) UpdateEvent(ctx context.Context, id string, in EventInput) (*models.Event, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	e := in.event()
	if err := a.validateEvent(e); err != nil {
		return nil, err
	}

	e.ID = oid
	e.UpdatedAt = a.now()
	updated, err := a.stores.Events().Update(ctx, &e)
	if err != nil {
		return nil, a.storeFailed(ctx, "failed to update event", err, "id", id)
	}

	a.logger.InfoContext(ctx, "event updated", "id", id)
	a.notifier.Invalidate(ctx, eventPaths...)
	return updated, nil
}

func (a *Actions) DeleteEvent(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := a.stores.Events().Delete(ctx, oid); err != nil {
		return a.storeFailed(ctx, "failed to delete event", err, "id", id)
	}

	a.logger.InfoContext(ctx, "event deleted", "id", id)
	a.notifier.Invalidate(ctx, eventPaths...)
	return nil
}
