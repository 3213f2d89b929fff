package services

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

const dateKeyLayout = "2006-01-02"

// DateKey is a calendar date without time or zone. It is the only day
// identity used by grids, aggregators, grouping and the body map.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

func DateKeyOf(value time.Time, location *time.Location) DateKey {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return DateKey{Year: year, Month: month, Day: day}
}

func ParseDateKey(raw string) (DateKey, error) {
	parsed, err := time.Parse(dateKeyLayout, strings.TrimSpace(raw))
	if err != nil {
		return DateKey{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return DateKeyOf(parsed, time.UTC), nil
}

func (key DateKey) IsZero() bool {
	return key.Year == 0 && key.Month == 0 && key.Day == 0
}

// Time returns midnight of the date in location.
func (key DateKey) Time(location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return time.Date(key.Year, key.Month, key.Day, 0, 0, 0, 0, location)
}

func (key DateKey) AddDays(days int) DateKey {
	return DateKeyOf(key.Time(time.UTC).AddDate(0, 0, days), time.UTC)
}

func (key DateKey) Weekday() time.Weekday {
	return key.Time(time.UTC).Weekday()
}

func (key DateKey) Before(other DateKey) bool {
	return key.Compare(other) < 0
}

func (key DateKey) After(other DateKey) bool {
	return key.Compare(other) > 0
}

func (key DateKey) Compare(other DateKey) int {
	switch {
	case key.Year != other.Year:
		return cmp.Compare(key.Year, other.Year)
	case key.Month != other.Month:
		return cmp.Compare(key.Month, other.Month)
	default:
		return cmp.Compare(key.Day, other.Day)
	}
}

func (key DateKey) String() string {
	if key.IsZero() {
		return ""
	}
	return key.Time(time.UTC).Format(dateKeyLayout)
}

func (key DateKey) MarshalText() ([]byte, error) {
	return []byte(key.String()), nil
}

func (key *DateKey) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*key = DateKey{}
		return nil
	}
	parsed, err := ParseDateKey(string(text))
	if err != nil {
		return err
	}
	*key = parsed
	return nil
}

// StartOfWeek returns the weekStart day on or before key.
func StartOfWeek(key DateKey, weekStart time.Weekday) DateKey {
	offset := (int(key.Weekday()) - int(weekStart) + 7) % 7
	return key.AddDays(-offset)
}

func FirstOfMonth(key DateKey) DateKey {
	return DateKey{Year: key.Year, Month: key.Month, Day: 1}
}

func LastOfMonth(key DateKey) DateKey {
	return DateKeyOf(FirstOfMonth(key).Time(time.UTC).AddDate(0, 1, -1), time.UTC)
}
