package actions

import (
	"context"
	"strings"

	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/revalidate"
)

// GarageInput is the editable part of a garage listing.
type GarageInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Location     string  `json:"location"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"review_count"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Image        string  `json:"image"`
	OpenHours    *string `json:"open_hours"`
	Availability *bool   `json:"availability"`
	MapURL       *string `json:"map_url"`
}

func (in GarageInput) garage() models.Garage {
	g := models.Garage{
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Category:     in.Category,
		Location:     strings.TrimSpace(in.Location),
		Rating:       in.Rating,
		ReviewCount:  in.ReviewCount,
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Image:        strings.TrimSpace(in.Image),
		OpenHours:    in.OpenHours,
		Availability: in.Availability,
		MapURL:       in.MapURL,
	}
	g.ApplyVariantDefaults()
	return g
}

var garagePaths = []string{revalidate.PathHome, revalidate.PathGarages, revalidate.PathAdminGarages}

func (a *Actions) AddGarage(ctx context.Context, in GarageInput) (*models.Garage, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	g := in.garage()
	// New listings start unrated; rating and review count are only set
	// through an update.
	g.Rating, g.ReviewCount = 0, 0
	if err := a.validator.Struct(g); err != nil {
		return nil, err
	}

	now := a.now()
	g.CreatedAt, g.UpdatedAt = now, now
	if err := a.stores.Garages().Insert(ctx, &g); err != nil {
		return nil, a.storeFailed(ctx, "failed to add garage", err)
	}

	a.logger.InfoContext(ctx, "garage added", "id", g.ID.Hex(), "category", g.Category)
	a.notifier.Invalidate(ctx, garagePaths...)
	return &g, nil
}

// UpdateGarage replaces every editable field of the garage with in.
func (a *Actions) UpdateGarage(ctx context.Context, id string, in GarageInput) (*models.Garage, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	g := in.garage()
	if err := a.validator.Struct(g); err != nil {
		return nil, err
	}

	g.ID = oid
	g.UpdatedAt = a.now()
	updated, err := a.stores.Garages().Update(ctx, &g)
	if err != nil {
		return nil, a.storeFailed(ctx, "failed to update garage", err, "id", id)
	}

	a.logger.InfoContext(ctx, "garage updated", "id", id)
	a.notifier.Invalidate(ctx, garagePaths...)
	return updated, nil
}

func (a *Actions) DeleteGarage(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := a.stores.Garages().Delete(ctx, oid); err != nil {
		return a.storeFailed(ctx, "failed to delete garage", err, "id", id)
	}

	a.logger.InfoContext(ctx, "garage deleted", "id", id)
	a.notifier.Invalidate(ctx, garagePaths...)
	return nil
}
