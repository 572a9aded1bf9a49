package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillip/autoclub-go/actions"
	"github.com/phillip/autoclub-go/queries"
	"github.com/phillip/autoclub-go/utils"
)

// ---------------- CREATE ----------------
func SendMessage(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in actions.MessageInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}

		msg, err := a.SendMessage(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

// ---------------- LIST ----------------
func ListMessages(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, err := q.Messages(c.Request.Context(), utils.ParseLimit(c.Query("limit")))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}

// ---------------- LIKE ----------------

// LikeMessage answers 200 both for a fresh like and for a repeat; the body
// tells them apart.
func LikeMessage(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := a.LikeMessage(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// ---------------- DELETE ----------------
func DeleteMessage(a *actions.Actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	}
}
