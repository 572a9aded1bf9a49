package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-11-02T09:30:00Z", time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)},
		{"2026-11-02", time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)},
		{"2026-11-02T09:30", time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)},
		{" 2026-11-02 09:30:15 ", time.Date(2026, 11, 2, 9, 30, 15, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), tt.in)
	}

	_, err := ParseDate("next friday")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 5, ParseLimit("5"))
	assert.Equal(t, 0, ParseLimit(""))
	assert.Equal(t, 0, ParseLimit("-4"))
	assert.Equal(t, 0, ParseLimit("ten"))
}

func TestETags(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	assert.Equal(t, GenerateETag("a", ts), GenerateETag("a", ts))
	assert.NotEqual(t, GenerateETag("a", ts), GenerateETag("a", ts.Add(time.Second)))
}

func TestListETag(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	base := ListETag([]string{"a", "b"}, ts, 3)

	assert.Equal(t, base, ListETag([]string{"a", "b"}, ts, 3))
	assert.NotEqual(t, base, ListETag([]string{"a", "b"}, ts, 2), "total changed")
	assert.NotEqual(t, base, ListETag([]string{"b", "c"}, ts, 3), "page membership changed")
	assert.NotEqual(t, base, ListETag([]string{"b", "a"}, ts, 3), "order changed")
	assert.NotEqual(t, base, ListETag([]string{"ab"}, ts, 3))
	assert.NotEqual(t, base, ListETag([]string{"a", "b"}, ts.Add(time.Second), 3))
}

func TestNotModified(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	etag := GenerateETag("x", ts)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, NotModified(c, etag, ts))
	assert.Equal(t, etag, w.Header().Get("ETag"))
	assert.Equal(t, "Fri, 02 Jan 2026 03:04:05 GMT", w.Header().Get("Last-Modified"))

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("If-None-Match", etag)
	assert.True(t, NotModified(c, etag, ts))
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNotModified, w.Code)
}
