package utils

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GenerateETag builds a weak validator from a document id and its last
// modification time.
func GenerateETag(id string, updatedAt time.Time) string {
	return fmt.Sprintf(`W/"%s-%d"`, id, updatedAt.UnixNano())
}

// ListETag identifies a page of results by the ids it holds, in order, the
// newest modification time among them and the total number of matches.
func ListETag(ids []string, updatedAt time.Time, total int64) string {
	h := fnv.New64a()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return fmt.Sprintf(`W/"%x-%d-%d"`, h.Sum64(), updatedAt.UnixNano(), total)
}

// NotModified sets ETag and Last-Modified on the response and reports
// whether the request's If-None-Match already matches, in which case a 304
// has been written.
func NotModified(c *gin.Context, etag string, lastModified time.Time) bool {
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Header("ETag", etag)
		c.Status(http.StatusNotModified)
		return true
	}
	c.Header("ETag", etag)
	if !lastModified.IsZero() {
		c.Header("Last-Modified", lastModified.UTC().Format(http.TimeFormat))
	}
	return false
}
