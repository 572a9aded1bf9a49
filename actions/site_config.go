package actions

import (
	"context"
	"strings"

	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/revalidate"
)

type EventBannerInput struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
}

type BackgroundInput struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

func (a *Actions) UpdateEventBanner(ctx context.Context, in EventBannerInput) (*models.EventBanner, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	b := models.EventBanner{
		Title:    strings.TrimSpace(in.Title),
		Subtitle: strings.TrimSpace(in.Subtitle),
		ImageURL: strings.TrimSpace(in.ImageURL),
	}
	if err := a.validator.Struct(b); err != nil {
		return nil, err
	}

	b.UpdatedAt = a.now()
	saved, err := a.stores.SiteConfig().SetEventBanner(ctx, &b)
	if err != nil {
		return nil, a.storeFailed(ctx, "failed to update event banner", err)
	}

	a.logger.InfoContext(ctx, "event banner updated")
	a.notifier.Invalidate(ctx, revalidate.PathHome, revalidate.PathEvents, revalidate.PathAdminSettings)
	return saved, nil
}

func (a *Actions) UpdateBackground(ctx context.Context, in BackgroundInput) (*models.Background, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	b := models.Background{Type: in.Type, URL: strings.TrimSpace(in.URL)}
	if b.Type == "" {
		b.Type = models.MediaImage
	}
	if err := a.validator.Struct(b); err != nil {
		return nil, err
	}

	b.UpdatedAt = a.now()
	saved, err := a.stores.SiteConfig().SetBackground(ctx, &b)
	if err != nil {
		return nil, a.storeFailed(ctx, "failed to update background", err)
	}

	a.logger.InfoContext(ctx, "background updated", "type", saved.Type)
	a.notifier.Invalidate(ctx, revalidate.PathHome, revalidate.PathAdminSettings)
	return saved, nil
}
