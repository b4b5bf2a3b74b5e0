package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date form used for payment and due dates.
const DateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// ToSubunits converts a major-unit amount (rupees) to integer subunits (paise).
// 560.00 becomes 56000; fractions of a paisa are rounded.
func ToSubunits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromSubunits converts a subunit amount to major units, rounding to a whole
// subunit first so 5000.4 paise reads as 50.00.
func FromSubunits(subunits decimal.Decimal) decimal.Decimal {
	return subunits.Round(0).Div(hundred)
}

// FromSubunitsInt is FromSubunits for integer amounts.
func FromSubunitsInt(subunits int64) decimal.Decimal {
	return decimal.NewFromInt(subunits).Div(hundred)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
	DateLayout,
}

// ParseTimestamp accepts the timestamp shapes the fee backend emits. ok is
// false when none match.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDateRange parses optional YYYY-MM-DD bounds. A nil bound is open;
// the upper bound covers the whole of its day.
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if from != "" {
		t, err := time.Parse(DateLayout, from)
		if err != nil {
			return nil, nil, fmt.Errorf("from must be YYYY-MM-DD: %w", err)
		}
		start = &t
	}
	if to != "" {
		t, err := time.Parse(DateLayout, to)
		if err != nil {
			return nil, nil, fmt.Errorf("to must be YYYY-MM-DD: %w", err)
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}
	return start, end, nil
}

// IsDateOverdue checks if a date is overdue relative to now
func IsDateOverdue(dueDate, now time.Time) bool {
	return now.After(dueDate)
}
