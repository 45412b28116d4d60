package session

import (
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/period"
)

// Step marks which half of a time range is being entered.
type Step int

const (
	StepStart Step = iota
	StepEnd
)

// String returns a human readable step name.
func (s Step) String() string {
	switch s {
	case StepStart:
		return "start"
	case StepEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ListPayload carries every candidate value so the committed value is looked
// up by index without consulting the row.
type ListPayload struct {
	Labels   []string `json:"labels"`
	Values   []string `json:"values"`
	Selected int      `json:"selected"`
	// Ints marks a list whose values are stored as integers.
	Ints bool `json:"ints,omitempty"`
}

func (ListPayload) Kind() models.Kind { return models.KindList }

func (p ListPayload) Clone() ListPayload {
	p.Labels = append([]string(nil), p.Labels...)
	p.Values = append([]string(nil), p.Values...)
	return p
}

// MultiListPayload is a list where any subset of the values may be chosen.
// Selected holds indexes into Values in ascending order.
type MultiListPayload struct {
	Labels   []string `json:"labels"`
	Values   []string `json:"values"`
	Selected []int    `json:"selected"`
}

func (MultiListPayload) Kind() models.Kind { return models.KindMultiList }

func (p MultiListPayload) Clone() MultiListPayload {
	p.Labels = append([]string(nil), p.Labels...)
	p.Values = append([]string(nil), p.Values...)
	p.Selected = append([]int(nil), p.Selected...)
	return p
}

// SelectedValues returns the chosen values in index order.
func (p MultiListPayload) SelectedValues() []string {
	out := make([]string, 0, len(p.Selected))
	for _, i := range p.Selected {
		out = append(out, p.Values[i])
	}
	return out
}

// NumberPayload is an integer with inclusive bounds.
type NumberPayload struct {
	Value   int    `json:"value"`
	Default int    `json:"default"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Unit    string `json:"unit,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (NumberPayload) Kind() models.Kind { return models.KindNumber }

func (p NumberPayload) Clone() NumberPayload { return p }

// InBounds reports whether n lies in [Min, Max].
func (p NumberPayload) InBounds(n int) bool {
	return n >= p.Min && n <= p.Max
}

type TextPayload struct {
	Value string `json:"value"`
	Hint  string `json:"hint,omitempty"`
}

func (TextPayload) Kind() models.Kind { return models.KindText }

func (p TextPayload) Clone() TextPayload { return p }

type TimePayload struct {
	Value period.Time `json:"value"`
}

func (TimePayload) Kind() models.Kind { return models.KindTime }

func (p TimePayload) Clone() TimePayload { return p }

// RangePayload is the period under construction and the half currently
// being entered.
type RangePayload struct {
	Value period.Period `json:"value"`
	Step  Step          `json:"step"`
}

func (RangePayload) Kind() models.Kind { return models.KindTimeRange }

func (p RangePayload) Clone() RangePayload { return p }

// Current returns the half of Value that Step points at.
func (p RangePayload) Current() period.Time {
	if p.Step == StepEnd {
		return p.Value.End
	}
	return p.Value.Start
}
