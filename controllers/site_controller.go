package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillip/autoclub-go/actions"
	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/queries"
	"github.com/phillip/autoclub-go/utils"
)

// GetBackground returns the site background, or null before one is set.
func GetBackground(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		bg, err := q.Background(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if bg == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		if utils.NotModified(c, utils.GenerateETag(models.SingletonID, bg.UpdatedAt), bg.UpdatedAt) {
			return
		}
		c.JSON(http.StatusOK, bg)
	}
}

func UpdateBackground(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in actions.BackgroundInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		bg, err := a.UpdateBackground(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bg)
	}
}

// GetEventBanner returns the event banner, or null before one is set.
func GetEventBanner(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		banner, err := q.EventBanner(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if banner == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		if utils.NotModified(c, utils.GenerateETag(models.SingletonID, banner.UpdatedAt), banner.UpdatedAt) {
			return
		}
		c.JSON(http.StatusOK, banner)
	}
}

func UpdateEventBanner(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in actions.EventBannerInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		banner, err := a.UpdateEventBanner(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, banner)
	}
}
