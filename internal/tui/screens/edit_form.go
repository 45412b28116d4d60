package screens

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/dtg01100/prefedit/internal/editor"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/period"
	"github.com/dtg01100/prefedit/internal/session"
	"github.com/dtg01100/prefedit/internal/tui/components"
)

const maxTextLength = 80

// SessionResultMsg carries the result of a closed edit form back to the
// controllers.
type SessionResultMsg struct {
	Result editor.Result
}

// EditForm is the huh surface for one edit request.
type EditForm struct {
	form  *huh.Form
	req   editor.Request
	done  bool
	width int

	// Form data
	index  int
	chosen []int
	text   string
}

// NewEditForm builds the form for req.
func NewEditForm(req editor.Request) *EditForm {
	f := &EditForm{req: req}
	f.buildForm()
	return f
}

func (f *EditForm) buildForm() {
	var field huh.Field

	switch f.req.Kind {
	case models.KindList:
		options := make([]huh.Option[int], 0, len(f.req.Labels))
		for i, label := range f.req.Labels {
			options = append(options, huh.NewOption(label, i))
		}
		f.index = max(f.req.Selected, 0)
		field = huh.NewSelect[int]().
			Title(f.req.Title).
			Options(options...).
			Value(&f.index)

	case models.KindMultiList:
		options := make([]huh.Option[int], 0, len(f.req.Labels))
		for i, label := range f.req.Labels {
			options = append(options, huh.NewOption(label, i))
		}
		f.chosen = append([]int{}, f.req.Chosen...)
		// Value goes first so Options marks the pre-selected entries.
		field = huh.NewMultiSelect[int]().
			Title(f.req.Title).
			Description("Space toggles an entry").
			Value(&f.chosen).
			Options(options...)

	case models.KindNumber:
		f.text = strconv.Itoa(f.req.Number)
		field = huh.NewInput().
			Title(f.req.Title).
			Description(f.numberDescription()).
			Placeholder(f.req.Hint).
			Value(&f.text).
			Validate(components.ValidateNumber(f.req.Min, f.req.Max))

	case models.KindText:
		f.text = f.req.Text
		field = huh.NewInput().
			Title(f.req.Title).
			Placeholder(f.req.Hint).
			CharLimit(maxTextLength).
			Value(&f.text).
			Validate(components.ValidateText(maxTextLength))

	default:
		f.text = f.req.Time.String()
		field = huh.NewInput().
			Title(f.req.Title).
			Description(f.timeDescription()).
			Placeholder("H:MM").
			Suggestions(components.TimeSuggestions(f.req.Time)).
			Value(&f.text).
			Validate(components.ValidateTime)
	}

	group := huh.NewGroup(field)
	if f.req.Kind == models.KindTimeRange {
		group = group.Title(stepTitle(f.req.Step))
	}

	f.form = huh.NewForm(group)
	f.form.WithTheme(huh.ThemeBase16())
	if f.width > 0 {
		f.form.WithWidth(f.width)
	}
}

func (f *EditForm) numberDescription() string {
	var parts []string
	if f.req.Min > math.MinInt32 || f.req.Max < math.MaxInt32 {
		parts = append(parts, fmt.Sprintf("Between %d and %d", f.req.Min, f.req.Max))
	}
	if f.req.Unit != "" {
		parts = append(parts, "in "+f.req.Unit)
	}
	return strings.Join(parts, ", ")
}

func (f *EditForm) timeDescription() string {
	if f.req.Kind != models.KindTimeRange {
		return "24 hour clock, e.g. 7:30 or 22:00"
	}
	if f.req.Step == session.StepEnd {
		return fmt.Sprintf("Starts at %s. Esc returns to the start.", f.req.Period.Start)
	}
	return fmt.Sprintf("Currently %s. Esc cancels.", f.req.Period)
}

func stepTitle(step session.Step) string {
	if step == session.StepEnd {
		return "Step 2: End"
	}
	return "Step 1: Start"
}

// Request returns the request the form was built for.
func (f *EditForm) Request() editor.Request {
	return f.req
}

// Done reports whether the form has produced its result.
func (f *EditForm) Done() bool {
	return f.done
}

// SetWidth sets the form width.
func (f *EditForm) SetWidth(width int) {
	f.width = width
	if width > 0 {
		f.form.WithWidth(width)
	}
}

// Init initializes the form.
func (f *EditForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update handles form updates. Esc is intercepted: it dismisses single-step
// forms and steps back in a time range.
func (f *EditForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.done {
		return f, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return f, f.finish(f.escapeOutcome())
	}

	form, cmd := f.form.Update(msg)
	if ff, ok := form.(*huh.Form); ok {
		f.form = ff
	}

	switch f.form.State {
	case huh.StateCompleted:
		return f, tea.Batch(cmd, f.finish(editor.Positive))
	case huh.StateAborted:
		return f, tea.Batch(cmd, f.finish(editor.Negative))
	}

	return f, cmd
}

// View renders the form.
func (f *EditForm) View() string {
	return f.form.View()
}

func (f *EditForm) escapeOutcome() editor.Outcome {
	if f.req.Kind == models.KindTimeRange {
		return editor.Back
	}
	return editor.Negative
}

// finish closes the form and returns the command reporting its result.
func (f *EditForm) finish(outcome editor.Outcome) tea.Cmd {
	f.done = true
	res := f.result(outcome)
	return func() tea.Msg { return SessionResultMsg{Result: res} }
}

func (f *EditForm) result(outcome editor.Outcome) editor.Result {
	res := editor.Result{Token: f.req.Token, Outcome: outcome}

	switch f.req.Kind {
	case models.KindList:
		res.Index = f.index
	case models.KindMultiList:
		res.Indexes = append([]int{}, f.chosen...)
	case models.KindNumber:
		n, err := strconv.Atoi(strings.TrimSpace(f.text))
		if err != nil {
			n = f.req.Min - 1
		}
		res.Number = n
	case models.KindText:
		res.Text = f.text
	default:
		t, err := period.ParseTime(f.text)
		switch {
		case err == nil:
		case outcome == editor.Back:
			// Going back keeps the end that was shown.
			t = f.req.Time
		default:
			// Reported out of range so the controller rejects it.
			t = period.Time{Hour: 24}
		}
		res.Time = t
	}

	return res
}
