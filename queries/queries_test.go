package queries

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/store/memstore"
)

func setup() (*Queries, *memstore.Memory) {
	mem := memstore.New()
	return New(mem, "https://tickets.example.com", slog.New(slog.NewTextHandler(io.Discard, nil))), mem
}

func TestClampLimit(t *testing.T) {
	assert.EqualValues(t, 10, ClampLimit(0))
	assert.EqualValues(t, 10, ClampLimit(-3))
	assert.EqualValues(t, 7, ClampLimit(7))
	assert.EqualValues(t, 100, ClampLimit(5000))
}

func TestUpcomingEventsFutureOnlyAscendingLimited(t *testing.T) {
	ctx := context.Background()
	q, mem := setup()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return now }

	offsets := []int{5, -2, 1, 3, -10, 0}
	for _, d := range offsets {
		require.NoError(t, mem.Events().Insert(ctx, &models.Event{
			Title: fmt.Sprintf("day %d", d),
			Date:  now.AddDate(0, 0, d),
		}))
	}

	page, err := q.UpcomingEvents(ctx, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	require.Len(t, page.Events, 3)
	assert.Equal(t, "day 0", page.Events[0].Title)
	assert.Equal(t, "day 1", page.Events[1].Title)
	assert.Equal(t, "day 3", page.Events[2].Title)
	for _, e := range page.Events {
		assert.False(t, e.Date.Before(now))
	}

	all, err := q.Events(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(offsets))
	assert.Equal(t, "day -10", all[0].Title)
}

func TestEventByIDAbsentIsNotAnError(t *testing.T) {
	q, _ := setup()

	e, err := q.EventByID(context.Background(), primitive.NewObjectID().Hex())
	assert.NoError(t, err)
	assert.Nil(t, e)

	e, err = q.EventByID(context.Background(), "garbage")
	assert.NoError(t, err)
	assert.Nil(t, e)
}

func TestDirectoryGaragesByRating(t *testing.T) {
	ctx := context.Background()
	q, mem := setup()
	seed := []models.Garage{
		{Name: "A", Category: models.CategoryGarage, Rating: 4.1},
		{Name: "B", Category: models.CategoryParts, Rating: 4.8},
		{Name: "C", Category: models.CategoryGarage, Rating: 4.9},
		{Name: "D", Category: models.CategoryTravel, Rating: 3.0},
	}
	for i := range seed {
		require.NoError(t, mem.Garages().Insert(ctx, &seed[i]))
	}

	page, err := q.DirectoryGarages(ctx, "", 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	require.Len(t, page.Garages, 2)
	assert.Equal(t, "C", page.Garages[0].Name)
	assert.Equal(t, "B", page.Garages[1].Name)

	page, err = q.DirectoryGarages(ctx, models.CategoryGarage, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, "C", page.Garages[0].Name)

	_, err = q.DirectoryGarages(ctx, "Dealer", 0)
	assert.True(t, apperr.IsValidation(err))
}

func TestGaragesByRecency(t *testing.T) {
	ctx := context.Background()
	q, mem := setup()
	base := time.Now()
	for i, name := range []string{"old", "newest", "mid"} {
		offset := []time.Duration{-2 * time.Hour, 0, -time.Hour}[i]
		require.NoError(t, mem.Garages().Insert(ctx, &models.Garage{Name: name, Category: models.CategoryGarage, CreatedAt: base.Add(offset)}))
	}

	garages, err := q.Garages(ctx, "")
	require.NoError(t, err)
	require.Len(t, garages, 3)
	assert.Equal(t, []string{"newest", "mid", "old"}, []string{garages[0].Name, garages[1].Name, garages[2].Name})
}

func TestMessagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	q, mem := setup()
	base := time.Now()
	for i := 0; i < 15; i++ {
		require.NoError(t, mem.Messages().Insert(ctx, &models.Message{
			Content:   fmt.Sprintf("m%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	messages, err := q.Messages(ctx, 0)
	require.NoError(t, err)
	require.Len(t, messages, DefaultLimit)
	assert.Equal(t, "m14", messages[0].Content)
	assert.Equal(t, "m5", messages[9].Content)
}

func TestSingletonsAbsentAreNil(t *testing.T) {
	q, _ := setup()
	b, err := q.Background(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, b)

	banner, err := q.EventBanner(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, banner)
}

func TestUserByID(t *testing.T) {
	ctx := context.Background()
	q, mem := setup()
	u := &models.User{Name: "Kiran", Email: "kiran@example.com", Role: models.RoleUser}
	require.NoError(t, mem.Users().Insert(ctx, u))

	got, err := q.UserByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Kiran", got.Name)

	got, err = q.UserByID(ctx, primitive.NewObjectID().Hex())
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = q.UserByID(ctx, "not-an-id")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestTicketOptions(t *testing.T) {
	ctx := context.Background()
	q, mem := setup()
	e := &models.Event{Title: "Drag Night", Price: 400, Date: time.Now().Add(time.Hour)}
	require.NoError(t, mem.Events().Insert(ctx, e))

	opts, err := q.TicketOptions(ctx, e.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, opts)
	assert.Equal(t, "https://tickets.example.com", opts.BookingURL)
	assert.Equal(t, 440.0, opts.Total)

	opts, err = q.TicketOptions(ctx, primitive.NewObjectID().Hex())
	assert.NoError(t, err)
	assert.Nil(t, opts)
}

func TestStoreFailureIsReturned(t *testing.T) {
	q, mem := setup()
	mem.FailWith(errors.New("timeout"))

	_, err := q.UpcomingEvents(context.Background(), 5)
	var se *apperr.StoreError
	assert.ErrorAs(t, err, &se)

	_, err = q.GarageByID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorAs(t, err, &se)
}
