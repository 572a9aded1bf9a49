package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillip/autoclub-go/actions"
	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/queries"
	"github.com/phillip/autoclub-go/utils"
)

func latestGarage(garages []models.Garage) (models.Garage, bool) {
	if len(garages) == 0 {
		return models.Garage{}, false
	}
	latest := garages[0]
	for _, g := range garages {
		if g.UpdatedAt.After(latest.UpdatedAt) {
			latest = g
		}
	}
	return latest, true
}

func garageIDs(items []models.Garage) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID.Hex()
	}
	return ids
}

// ---------------- CREATE ----------------
func CreateGarage(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in actions.GarageInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}

		garage, err := a.AddGarage(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, garage)
	}
}

// ---------------- LIST ----------------

// ListGarages serves the directory: highest rated first, optionally one
// category only.
func ListGarages(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := q.DirectoryGarages(c.Request.Context(), c.Query("category"), utils.ParseLimit(c.Query("limit")))
		if err != nil {
			respondError(c, err)
			return
		}

		if latest, ok := latestGarage(page.Garages); ok {
			etag := utils.ListETag(garageIDs(page.Garages), latest.UpdatedAt, page.Total)
			if utils.NotModified(c, etag, latest.UpdatedAt) {
				return
			}
		}
		c.JSON(http.StatusOK, page)
	}
}

// ListAdminGarages lists every garage, newest first.
func ListAdminGarages(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		garages, err := q.Garages(c.Request.Context(), c.Query("category"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, garages)
	}
}

// ---------------- GET ----------------
func GetGarage(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		garage, err := q.GarageByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if garage == nil {
			notFound(c)
			return
		}

		if utils.NotModified(c, utils.GenerateETag(garage.ID.Hex(), garage.UpdatedAt), garage.UpdatedAt) {
			return
		}
		c.JSON(http.StatusOK, garage)
	}
}

// ---------------- UPDATE ----------------
func UpdateGarage(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in actions.GarageInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}

		updated, err := a.UpdateGarage(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Garage updated successfully",
			"garage":  updated,
		})
	}
}

// ---------------- DELETE ----------------
func DeleteGarage(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.DeleteGarage(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Garage deleted successfully"})
	}
}
