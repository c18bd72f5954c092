package timeutil

import (
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// IST is the business calendar: every record date is a day in Asia/Kolkata.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

func Now() time.Time {
	return time.Now().In(IST)
}

// Day truncates t to midnight IST. The zero time stays zero.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// ParseDay accepts YYYY-MM-DD or RFC3339 and returns midnight IST of that day.
// Anything else yields the zero time, which callers treat as a missing date.
func ParseDay(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if parsed, err := time.ParseInLocation(DateLayout, value, IST); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return Day(parsed)
	}
	return time.Time{}
}

// FormatDay renders a day as YYYY-MM-DD, or "" for the zero time.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(IST).Format(DateLayout)
}

// FromDate reads a DATE column (scanned as UTC midnight) as that calendar day in IST.
func FromDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, IST)
}

// DateParam is the value to bind for a DATE column: the IST calendar day, or NULL.
func DateParam(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return FormatDay(t)
}
