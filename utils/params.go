package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date format, use RFC3339 or YYYY-MM-DD")

var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02 15:04:05"}

// ParseDate accepts RFC3339 and falls back to the plain layouts a date
// input or a datetime-local input submits.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseLimit reads a ?limit= value. Anything unparsable becomes 0, which
// the queries treat as the default.
func ParseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
