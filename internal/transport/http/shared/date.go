package shared

import (
	"errors"
	"strings"
	"time"

	"agrobooks/internal/platform/timeutil"
)

var errInvalidDate = errors.New("invalid date")

// ParseDate accepts RFC3339 or YYYY-MM-DD and returns that day in IST.
// An empty value is the zero time with no error.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	parsed := timeutil.ParseDay(value)
	if parsed.IsZero() {
		return time.Time{}, errInvalidDate
	}
	return parsed, nil
}
