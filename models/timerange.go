package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts for the stored and user-entered date/time forms. Stored times are
// zero padded, so lexical comparison of two clock strings is chronological
// comparison.
const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04"
	InputDateLayout = "020106"
	InputTimeLayout = "1504"
)

var ErrInvalidTimeRange = errors.New("invalid time range")

// TimeRange is a half-open interval [Start, End) on a single day. End is
// exclusive, so a booking ending at 10:00 and another starting at 10:00 do
// not overlap.
type TimeRange struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// NewTimeRange validates the stored forms and requires Start strictly before
// End. Zero-length and inverted ranges are rejected.
func NewTimeRange(date, start, end string) (TimeRange, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return TimeRange{}, fmt.Errorf("%w: date %q", ErrInvalidTimeRange, date)
	}
	if _, err := time.Parse(TimeLayout, start); err != nil {
		return TimeRange{}, fmt.Errorf("%w: start %q", ErrInvalidTimeRange, start)
	}
	if _, err := time.Parse(TimeLayout, end); err != nil {
		return TimeRange{}, fmt.Errorf("%w: end %q", ErrInvalidTimeRange, end)
	}
	if start >= end {
		return TimeRange{}, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidTimeRange, start, end)
	}
	return TimeRange{Date: date, Start: start, End: end}, nil
}

// ParseInputTimeRange parses the wizard's "HHmm-HHmm" form against an already
// validated date.
func ParseInputTimeRange(date, text string) (TimeRange, error) {
	parts := strings.SplitN(strings.TrimSpace(text), "-", 2)
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: %q is not HHmm-HHmm", ErrInvalidTimeRange, text)
	}
	start, err := time.Parse(InputTimeLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: start %q", ErrInvalidTimeRange, parts[0])
	}
	end, err := time.Parse(InputTimeLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: end %q", ErrInvalidTimeRange, parts[1])
	}
	return NewTimeRange(date, start.Format(TimeLayout), end.Format(TimeLayout))
}

// Overlaps reports whether t and other occupy any common instant on the same
// day. Back-to-back ranges sharing only a boundary do not overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	if t.Date != other.Date {
		return false
	}
	return (t.Start > other.Start && t.Start < other.End) ||
		(t.End > other.Start && t.End < other.End) ||
		(t.Start <= other.Start && t.End >= other.End)
}

// Equal reports whether both ranges cover the identical interval.
func (t TimeRange) Equal(other TimeRange) bool {
	return t.Date == other.Date && t.Start == other.Start && t.End == other.End
}

// StartsBy reports whether the range begins at or before the given clock.
func (t TimeRange) StartsBy(clock string) bool {
	return t.Start <= clock
}

// EndsBy reports whether the range is over at the given clock.
func (t TimeRange) EndsBy(clock string) bool {
	return t.End <= clock
}

func (t TimeRange) String() string {
	return t.Date + " " + t.Start + "-" + t.End
}
