package services

import (
	"errors"
	"strings"
)

var (
	ErrRangeFromDateInvalid = errors.New("invalid range start date")
	ErrRangeToDateInvalid   = errors.New("invalid range end date")
	ErrDateRangeInvalid     = errors.New("range end is before range start")
)

// ParseDateRange reads an inclusive from/to pair of YYYY-MM-DD values.
// A missing bound takes fallback.
func ParseDateRange(rawFrom string, rawTo string, fallback DateKey) (DateKey, DateKey, error) {
	from := fallback
	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		parsed, err := ParseDateKey(fromRaw)
		if err != nil {
			return DateKey{}, DateKey{}, ErrRangeFromDateInvalid
		}
		from = parsed
	}

	to := fallback
	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		parsed, err := ParseDateKey(toRaw)
		if err != nil {
			return DateKey{}, DateKey{}, ErrRangeToDateInvalid
		}
		to = parsed
	}

	if to.Before(from) {
		return DateKey{}, DateKey{}, ErrDateRangeInvalid
	}
	return from, to, nil
}
