package payroll

import (
	"strings"

	"agrobooks/internal/platform/timeutil"
)

// AttendanceMap holds one status per calendar day, keyed YYYY-MM-DD.
type AttendanceMap map[string]AttendanceStatus

// BuildAttendance folds records into a map. A later record for the same day
// replaces the earlier one; undated records are dropped.
func BuildAttendance(records []AttendanceRecord) AttendanceMap {
	m := make(AttendanceMap, len(records))
	for _, r := range records {
		key := timeutil.FormatDay(r.Date)
		if key == "" {
			continue
		}
		m[key] = r.Status
	}
	return m
}

func (a AttendanceMap) Count(month Month) AttendanceCount {
	prefix := month.String() + "-"
	var c AttendanceCount
	for day, status := range a {
		if !strings.HasPrefix(day, prefix) {
			continue
		}
		switch status {
		case StatusPresent:
			c.Present++
		case StatusAbsent:
			c.Absent++
		case StatusHalfDay:
			c.HalfDay++
		}
	}
	return c
}
