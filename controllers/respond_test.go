package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/phillip/autoclub-go/apperr"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", apperr.Invalid("title", "is required"), http.StatusBadRequest,
			`{"error":"validation failed","fields":{"title":"is required"}}`},
		{"unauthorized", apperr.ErrUnauthorized, http.StatusUnauthorized, `{"error":"unauthorized"}`},
		{"wrapped not found", fmt.Errorf("garage: %w", apperr.ErrNotFound), http.StatusNotFound, `{"error":"not found"}`},
		{"conflict", apperr.ErrConflict, http.StatusConflict, `{"error":"already exists"}`},
		{"store", apperr.Store("insert", errors.New("socket: secret detail")), http.StatusInternalServerError,
			`{"error":"something went wrong, please try again"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
