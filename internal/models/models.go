// Package models defines the core data structures for prefedit: the
// preference rows a settings screen shows and the schema that groups them.
package models

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the editor a preference uses.
type Kind string

const (
	KindSwitch    Kind = "switch"
	KindList      Kind = "list"
	KindMultiList Kind = "multi_list"
	KindNumber    Kind = "number"
	KindText      Kind = "text"
	KindTime      Kind = "time"
	KindTimeRange Kind = "time_range"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindSwitch, KindList, KindMultiList, KindNumber, KindText, KindTime, KindTimeRange}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Choice is one entry of a list preference.
type Choice struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Preference is the immutable configuration of one settings row.
type Preference struct {
	// Identification
	Key     string `json:"key" yaml:"key"`
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Kind    Kind   `json:"kind" yaml:"kind"`

	// Default is the canonical text of the value used when nothing is stored.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`

	// DependsOn names a switch preference; this row is enabled only while
	// that switch is on.
	DependsOn string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`

	// List options
	Choices []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
	// IntValues stores a single selection list as an integer. Every choice
	// value must then parse as one.
	IntValues bool `json:"int_values,omitempty" yaml:"int_values,omitempty"`

	// Number options
	Min  *int   `json:"min,omitempty" yaml:"min,omitempty"`
	Max  *int   `json:"max,omitempty" yaml:"max,omitempty"`
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`

	// Hint is shown as the placeholder of text and number editors.
	Hint string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// Bounds returns the inclusive numeric bounds, substituting the int32 range
// for unset ends.
func (p Preference) Bounds() (int, int) {
	lo, hi := math.MinInt32, math.MaxInt32
	if p.Min != nil {
		lo = *p.Min
	}
	if p.Max != nil {
		hi = *p.Max
	}
	return lo, hi
}

// DefaultBool parses Default as a switch value.
func (p Preference) DefaultBool() bool {
	b, err := strconv.ParseBool(p.Default)
	return err == nil && b
}

// DefaultInt parses Default as a number, falling back to the lower bound
// (or zero when unbounded).
func (p Preference) DefaultInt() int {
	if n, err := strconv.Atoi(p.Default); err == nil {
		return n
	}
	if p.Min != nil {
		return *p.Min
	}
	return 0
}

// DefaultValues splits Default into the values of a multi selection list.
func (p Preference) DefaultValues() []string {
	return SplitValues(p.Default)
}

// ChoiceIndex returns the index of the choice whose value is v, or -1.
func (p Preference) ChoiceIndex(v string) int {
	for i, c := range p.Choices {
		if c.Value == v {
			return i
		}
	}
	return -1
}

// ChoiceLabel returns the label for value v, or v itself when no choice
// matches.
func (p Preference) ChoiceLabel(v string) string {
	if i := p.ChoiceIndex(v); i >= 0 {
		return p.Choices[i].Label
	}
	return v
}

// ValueSeparator joins the values of a multi selection list in its text form.
const ValueSeparator = ","

// SplitValues parses the text form of a multi selection list. Empty elements
// are dropped, so "" is the empty selection.
func SplitValues(text string) []string {
	values := []string{}
	for _, v := range strings.Split(text, ValueSeparator) {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// JoinValues is the inverse of SplitValues.
func JoinValues(values []string) string {
	return strings.Join(values, ValueSeparator)
}

// Page groups preferences under one settings screen.
type Page struct {
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Preferences []Preference `json:"preferences" yaml:"preferences"`
}

// Schema is the full set of preference pages.
type Schema struct {
	Version string `json:"version" yaml:"version"`
	Pages   []Page `json:"pages" yaml:"pages"`
}

// Find returns the preference with key, or nil.
func (s *Schema) Find(key string) *Preference {
	for i := range s.Pages {
		for j := range s.Pages[i].Preferences {
			if s.Pages[i].Preferences[j].Key == key {
				return &s.Pages[i].Preferences[j]
			}
		}
	}
	return nil
}

// All returns every preference in page order.
func (s *Schema) All() []Preference {
	var prefs []Preference
	for _, page := range s.Pages {
		prefs = append(prefs, page.Preferences...)
	}
	return prefs
}

// Dependents returns the keys of preferences that depend on key.
func (s *Schema) Dependents(key string) []string {
	var keys []string
	for _, p := range s.All() {
		if p.DependsOn == key {
			keys = append(keys, p.Key)
		}
	}
	return keys
}
