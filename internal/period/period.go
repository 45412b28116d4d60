// Package period implements clock times and daily time ranges as stored by
// prefedit. A range whose end is earlier than its start wraps past midnight.
package period

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour

	timeSeparator   = ":"
	periodSeparator = "-"
)

// Time is a clock time with minute resolution. It marshals as its canonical
// text form.
type Time struct {
	Hour   int
	Minute int
}

// NewTime returns the time hour:minute, or an invalid argument error when
// either field is out of range.
func NewTime(hour, minute int) (Time, error) {
	if err := checkClock(hour, minute); err != nil {
		return Time{}, err
	}
	return Time{Hour: hour, Minute: minute}, nil
}

// MustTime is NewTime for constants. It panics on out of range input.
func MustTime(hour, minute int) Time {
	t, err := NewTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTime parses the canonical H:MM form. Parsing is strict: no
// whitespace, no signs, both components required.
func ParseTime(text string) (Time, error) {
	idx := strings.Index(text, timeSeparator)
	if idx < 0 {
		return Time{}, apperrors.NewFormatError(text, "missing ':' separator")
	}
	if idx == 0 || idx == len(text)-1 {
		return Time{}, apperrors.NewFormatError(text, "missing hour or minute")
	}

	hour, ok := parseDecimal(text[:idx])
	if !ok {
		return Time{}, apperrors.NewFormatError(text, "hour is not a decimal number")
	}
	minute, ok := parseDecimal(text[idx+1:])
	if !ok {
		return Time{}, apperrors.NewFormatError(text, "minute is not a decimal number")
	}

	if hour > 23 {
		return Time{}, apperrors.NewFormatError(text, "hour must be between 0 and 23")
	}
	if minute > 59 {
		return Time{}, apperrors.NewFormatError(text, "minute must be between 0 and 59")
	}

	return Time{Hour: hour, Minute: minute}, nil
}

// ParseTimeOrZero parses text and falls back to midnight on any failure.
func ParseTimeOrZero(text string) Time {
	t, err := ParseTime(text)
	if err != nil {
		return Time{}
	}
	return t
}

// parseDecimal accepts only ASCII digits. Values are capped well above any
// valid clock component so overflow cannot occur.
func parseDecimal(s string) (int, bool) {
	if s == "" || len(s) > 4 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// String returns the canonical H:MM form.
func (t Time) String() string {
	return fmt.Sprintf("%d:%02d", t.Hour, t.Minute)
}

// Minutes returns the number of minutes since midnight.
func (t Time) Minutes() int {
	return t.Hour*minutesPerHour + t.Minute
}

// Compare orders times by minutes since midnight.
func (t Time) Compare(o Time) int {
	switch a, b := t.Minutes(), o.Minutes(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Valid reports whether both fields are in range.
func (t Time) Valid() bool {
	return checkClock(t.Hour, t.Minute) == nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Time) UnmarshalText(b []byte) error {
	parsed, err := ParseTime(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Period is a daily time range. Both ends are inclusive.
type Period struct {
	Start Time
	End   Time
}

// Undefined returns the sentinel period that never contains any time.
func Undefined() Period {
	return Period{Start: Time{Hour: -1, Minute: -1}, End: Time{Hour: -1, Minute: -1}}
}

// ParsePeriod parses "<start>-<end>", splitting on the first '-'.
func ParsePeriod(text string) (Period, error) {
	idx := strings.Index(text, periodSeparator)
	if idx < 0 {
		return Period{}, apperrors.NewFormatError(text, "missing '-' separator")
	}
	if idx == 0 || idx == len(text)-1 {
		return Period{}, apperrors.NewFormatError(text, "missing start or end time")
	}

	start, err := ParseTime(text[:idx])
	if err != nil {
		return Period{}, err
	}
	end, err := ParseTime(text[idx+1:])
	if err != nil {
		return Period{}, err
	}

	return Period{Start: start, End: end}, nil
}

// ParsePeriodOrZero parses text and falls back to the zero period on any
// failure.
func ParsePeriodOrZero(text string) Period {
	p, err := ParsePeriod(text)
	if err != nil {
		return Period{}
	}
	return p
}

// String returns the canonical "<start>-<end>" form.
func (p Period) String() string {
	return p.Start.String() + periodSeparator + p.End.String()
}

// IsUndefined reports whether any field carries the negative sentinel.
func (p Period) IsUndefined() bool {
	return p.Start.Hour < 0 || p.Start.Minute < 0 || p.End.Hour < 0 || p.End.Minute < 0
}

// Wraps reports whether the period crosses midnight.
func (p Period) Wraps() bool {
	return p.Start.Minutes() > p.End.Minutes()
}

// Contains reports whether hour:minute falls inside the period on a circular
// day of 1440 minute slots. An undefined period contains nothing. An out of
// range hour or minute is a caller error.
func (p Period) Contains(hour, minute int) (bool, error) {
	if err := checkClock(hour, minute); err != nil {
		return false, err
	}
	if p.IsUndefined() {
		return false, nil
	}

	from := p.Start.Minutes()
	to := p.End.Minutes()
	target := hour*minutesPerHour + minute

	if from <= to {
		return from <= target && target <= to, nil
	}
	// Wrapped: everything except the open interval (to, from).
	return target >= from || target <= to, nil
}

// ContainsClock reports whether the wall-clock time of t falls inside the
// period.
func (p Period) ContainsClock(t time.Time) bool {
	ok, err := p.Contains(t.Hour(), t.Minute())
	return err == nil && ok
}

// Duration returns the length of the period, counting both end minutes.
func (p Period) Duration() time.Duration {
	if p.IsUndefined() {
		return 0
	}
	span := p.End.Minutes() - p.Start.Minutes()
	if span < 0 {
		span += minutesPerDay
	}
	return time.Duration(span+1) * time.Minute
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func checkClock(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return apperrors.NewInvalidArgumentError("hour", hour, "must be between 0 and 23")
	}
	if minute < 0 || minute > 59 {
		return apperrors.NewInvalidArgumentError("minute", minute, "must be between 0 and 59")
	}
	return nil
}
