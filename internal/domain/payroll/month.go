package payroll

import (
	"encoding/json"
	"sort"
	"time"

	"agrobooks/internal/platform/timeutil"
)

// Month is a calendar month in IST.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	ist := t.In(timeutil.IST)
	return Month{Year: ist.Year(), Month: ist.Month()}
}

func ParseMonth(value string) (Month, error) {
	t, err := time.ParseInLocation(timeutil.MonthLayout, value, timeutil.IST)
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return m.Start().Format(timeutil.MonthLayout)
}

func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, timeutil.IST)
}

func (m Month) Next() Month {
	return MonthOf(m.Start().AddDate(0, 1, 0))
}

func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// Contains reports whether t falls in the month. The zero time never does.
func (m Month) Contains(t time.Time) bool {
	return !t.IsZero() && MonthOf(t) == m
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ActiveMonths lists every month from the joining month through the month of
// now, ascending. Without a joining date, or with one in the future, only the
// current month is returned.
func ActiveMonths(joining, now time.Time) []Month {
	current := MonthOf(now)
	if joining.IsZero() {
		return []Month{current}
	}
	months := []Month{}
	for m := MonthOf(joining); !current.Before(m); m = m.Next() {
		months = append(months, m)
	}
	if len(months) == 0 {
		return []Month{current}
	}
	return months
}

func sortMonths(months []Month) []Month {
	seen := make(map[Month]bool, len(months))
	out := make([]Month, 0, len(months))
	for _, m := range months {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
