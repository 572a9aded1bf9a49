package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillip/autoclub-go/actions"
	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/queries"
	"github.com/phillip/autoclub-go/utils"
)

type eventRequest struct {
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	Date        string  `json:"date" form:"date"` // string for binding, parsed below
	Location    string  `json:"location" form:"location"`
	Price       float64 `json:"price" form:"price"`
	MediaType   string  `json:"media_type" form:"media_type"`
	MediaURL    string  `json:"media_url" form:"media_url"`
}

func (r eventRequest) input() (actions.EventInput, error) {
	in := actions.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Price:       r.Price,
		MediaType:   r.MediaType,
		MediaURL:    r.MediaURL,
	}
	if r.Date != "" {
		date, err := utils.ParseDate(r.Date)
		if err != nil {
			return in, apperr.Invalid("date", err.Error())
		}
		in.Date = date
	}
	return in, nil
}

func latestEvent(events []models.Event) (models.Event, bool) {
	if len(events) == 0 {
		return models.Event{}, false
	}
	latest := events[0]
	for _, ev := range events {
		if ev.UpdatedAt.After(latest.UpdatedAt) {
			latest = ev
		}
	}
	return latest, true
}

func eventIDs(items []models.Event) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID.Hex()
	}
	return ids
}

// ---------------- CREATE ----------------
func CreateEvent(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req eventRequest
		if err := c.ShouldBind(&req); err != nil {
			badBody(c)
			return
		}
		in, err := req.input()
		if err != nil {
			respondError(c, err)
			return
		}

		event, err := a.AddEvent(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, event)
	}
}

// ---------------- LIST ----------------

// ListUpcomingEvents serves the public listing: future events only.
func ListUpcomingEvents(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := q.UpcomingEvents(c.Request.Context(), utils.ParseLimit(c.Query("limit")))
		if err != nil {
			respondError(c, err)
			return
		}

		if latest, ok := latestEvent(page.Events); ok {
			etag := utils.ListETag(eventIDs(page.Events), latest.UpdatedAt, page.Total)
			if utils.NotModified(c, etag, latest.UpdatedAt) {
				return
			}
		}
		c.JSON(http.StatusOK, page)
	}
}

// ListAllEvents serves the admin listing, past events included.
func ListAllEvents(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := q.Events(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// ---------------- GET ----------------
func GetEvent(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := q.EventByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if event == nil {
			notFound(c)
			return
		}

		if utils.NotModified(c, utils.GenerateETag(event.ID.Hex(), event.UpdatedAt), event.UpdatedAt) {
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// GetEventTickets returns the ticket tiers for an event. Purchase itself
// happens at the external booking URL.
func GetEventTickets(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := q.TicketOptions(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if opts == nil {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, opts)
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req eventRequest
		if err := c.ShouldBind(&req); err != nil {
			badBody(c)
			return
		}
		in, err := req.input()
		if err != nil {
			respondError(c, err)
			return
		}

		updated, err := a.UpdateEvent(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Event updated successfully",
			"event":   updated,
		})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
	}
}
