package ledger

import (
	"errors"
	"fmt"
	"time"
)

// FilterType selects the time window a ledger query covers.
type FilterType string

const (
	FilterAll     FilterType = "all"
	FilterWeekly  FilterType = "weekly"
	FilterMonthly FilterType = "monthly"
	FilterCustom  FilterType = "custom"
)

const dateLayout = "2006-01-02"

var (
	ErrMissingDateRange  = errors.New("custom filter requires both start and end dates")
	ErrInvertedDateRange = errors.New("start date must not be after end date")
)

// Filter is a parsed, validated time filter. Start/End are calendar dates
// and only meaningful when Bounded is true.
type Filter struct {
	Type    FilterType
	Bounded bool
	Start   time.Time
	End     time.Time
}

// ParseFilter validates the raw query parameters of a ledger request and
// resolves relative windows against now. Weekly and monthly are rolling
// windows ending today (last 7 and last 30 days inclusive).
func ParseFilter(filterType, startDate, endDate string, now time.Time) (Filter, error) {
	today := now.Truncate(24 * time.Hour)

	switch FilterType(filterType) {
	case FilterAll, "":
		return Filter{Type: FilterAll}, nil
	case FilterWeekly:
		return Filter{Type: FilterWeekly, Bounded: true, Start: today.AddDate(0, 0, -6), End: today}, nil
	case FilterMonthly:
		return Filter{Type: FilterMonthly, Bounded: true, Start: today.AddDate(0, 0, -29), End: today}, nil
	case FilterCustom:
		if startDate == "" || endDate == "" {
			return Filter{}, ErrMissingDateRange
		}
		start, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startDate)
		}
		end, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", endDate)
		}
		if start.After(end) {
			return Filter{}, ErrInvertedDateRange
		}
		return Filter{Type: FilterCustom, Bounded: true, Start: start, End: end}, nil
	default:
		return Filter{}, fmt.Errorf("unknown filter type %q", filterType)
	}
}

// ValidateRange checks an inclusive settlement date range before dispatch.
func ValidateRange(startDate, endDate string) (start, end time.Time, err error) {
	if startDate == "" || endDate == "" {
		return start, end, ErrMissingDateRange
	}
	start, err = time.Parse(dateLayout, startDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startDate)
	}
	end, err = time.Parse(dateLayout, endDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", endDate)
	}
	if start.After(end) {
		return start, end, ErrInvertedDateRange
	}
	return start, end, nil
}
