package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillip/autoclub-go/apperr"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func validGarage(category string) Garage {
	return Garage{
		Name:        "Torque House",
		Description: "Independent workshop for tuning and servicing",
		Category:    category,
		Location:    "12 Ring Road, Pune",
		Image:       "https://img.example.com/torque.jpg",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Fields
}

func TestValidatorGarageVariants(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		garage  func() Garage
		wantErr string
	}{
		{"garage with hours", func() Garage {
			g := validGarage(CategoryGarage)
			g.OpenHours = strPtr("Mon-Sun: 8am-8pm")
			return g
		}, ""},
		{"garage defaults hours", func() Garage {
			g := validGarage(CategoryGarage)
			g.ApplyVariantDefaults()
			return g
		}, ""},
		{"garage without hours", func() Garage { return validGarage(CategoryGarage) }, "open_hours"},
		{"garage with map url", func() Garage {
			g := validGarage(CategoryGarage)
			g.ApplyVariantDefaults()
			g.MapURL = strPtr("https://maps.example.com/x")
			return g
		}, "map_url"},
		{"parts with availability", func() Garage {
			g := validGarage(CategoryParts)
			g.Availability = boolPtr(false)
			return g
		}, ""},
		{"parts with hours", func() Garage {
			g := validGarage(CategoryParts)
			g.OpenHours = strPtr("always")
			return g
		}, "open_hours"},
		{"travel with map", func() Garage {
			g := validGarage(CategoryTravel)
			g.MapURL = strPtr("https://maps.example.com/route")
			return g
		}, ""},
		{"travel with bad map", func() Garage {
			g := validGarage(CategoryTravel)
			g.MapURL = strPtr("not a url")
			return g
		}, "map_url"},
		{"travel with availability", func() Garage {
			g := validGarage(CategoryTravel)
			g.Availability = boolPtr(true)
			return g
		}, "availability"},
		{"unknown category", func() Garage { return validGarage("Dealer") }, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.garage())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, fieldsOf(t, err), tt.wantErr)
		})
	}
}

func TestValidatorGarageCommonFields(t *testing.T) {
	v := NewValidator()

	g := validGarage(CategoryParts)
	g.Name = "X"
	g.Description = "short"
	g.Rating = 5.5
	g.ReviewCount = -1
	g.Email = "nope"
	g.Image = "img.jpg"

	fields := fieldsOf(t, v.Struct(g))
	assert.Equal(t, "must be at least 2 characters", fields["name"])
	assert.Equal(t, "must be at least 10 characters", fields["description"])
	assert.Equal(t, "must be 5 or less", fields["rating"])
	assert.Equal(t, "must be 0 or greater", fields["review_count"])
	assert.Equal(t, "must be a valid email", fields["email"])
	assert.Equal(t, "must be a valid URL", fields["image"])
}

func TestValidatorEvent(t *testing.T) {
	v := NewValidator()

	e := Event{
		Title:       "Sunday Drive",
		Description: "Morning run along the coast road",
		Date:        time.Now().Add(48 * time.Hour),
		Location:    "Marine Drive",
		Price:       0,
		MediaType:   MediaImage,
		MediaURL:    "https://img.example.com/drive.jpg",
	}
	assert.NoError(t, v.Struct(e))

	e.Title = ""
	e.Price = -1
	e.MediaType = "gif"
	fields := fieldsOf(t, v.Struct(e))
	assert.Equal(t, "is required", fields["title"])
	assert.Equal(t, "must be 0 or greater", fields["price"])
	assert.Equal(t, "must be one of: image, video", fields["media_type"])
}

func TestValidatorMessageMedia(t *testing.T) {
	v := NewValidator()

	m := Message{Content: "hello", MediaType: MediaNone}
	assert.NoError(t, v.Struct(m))

	m.MediaType = MediaVideo
	assert.Contains(t, fieldsOf(t, v.Struct(m)), "media_url")

	m.MediaURL = "https://video.example.com/clip.mp4"
	assert.NoError(t, v.Struct(m))
}

func TestValidatorSiteConfig(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(Background{Type: MediaVideo, URL: "https://cdn.example.com/bg.mp4"}))
	assert.Contains(t, fieldsOf(t, v.Struct(Background{Type: "gif", URL: "https://cdn.example.com/bg.gif"})), "type")

	fields := fieldsOf(t, v.Struct(EventBanner{Title: "A", Subtitle: "too short", ImageURL: "x"}))
	assert.Len(t, fields, 3)
}

func TestMessageLikedByUser(t *testing.T) {
	m := Message{LikedBy: []string{"a", "b"}}
	assert.True(t, m.LikedByUser("b"))
	assert.False(t, m.LikedByUser("c"))
}
