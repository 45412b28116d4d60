package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dtg01100/prefedit/internal/period"
)

// ValidateTime accepts H:MM or HH:MM wall clock text. Whitespace is not
// trimmed.
func ValidateTime(value string) error {
	if value == "" {
		return fmt.Errorf("time cannot be empty")
	}
	if _, err := period.ParseTime(value); err != nil {
		return fmt.Errorf("invalid time %q (expected H:MM, e.g. \"7:30\" or \"22:00\")", value)
	}
	return nil
}

// ValidateNumber returns a validator accepting integers in [min, max].
func ValidateNumber(min, max int) func(string) error {
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			return fmt.Errorf("value cannot be empty")
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid number: %q", value)
		}
		if n < min || n > max {
			return fmt.Errorf("value must be between %d and %d", min, max)
		}
		return nil
	}
}

// ValidateText rejects text longer than maxLen runes. A non-positive maxLen
// accepts anything.
func ValidateText(maxLen int) func(string) error {
	return func(value string) error {
		if maxLen > 0 && len([]rune(value)) > maxLen {
			return fmt.Errorf("must be %d characters or less", maxLen)
		}
		return nil
	}
}

// TimeSuggestions lists quarter hours around t, starting with t itself, for
// input autocompletion.
func TimeSuggestions(t period.Time) []string {
	seen := map[string]bool{}
	var suggestions []string

	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			suggestions = append(suggestions, s)
		}
	}

	add(t.String())
	base := t.Minutes() - t.Minutes()%15
	for offset := -60; offset <= 60; offset += 15 {
		m := ((base+offset)%(24*60) + 24*60) % (24 * 60)
		add(period.MustTime(m/60, m%60).String())
	}

	return suggestions
}
