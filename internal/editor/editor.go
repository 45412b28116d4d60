// Package editor runs preference edit sessions: it opens an editing surface
// when a row is activated, matches the surface's result back to the row by
// token, and commits the validated value to the store.
package editor

import (
	"io"
	"log/slog"

	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/period"
	"github.com/dtg01100/prefedit/internal/session"
)

// Outcome is how the user left an editing surface.
type Outcome int

const (
	// Positive confirms the entered value.
	Positive Outcome = iota
	// Negative dismisses the surface without a value.
	Negative
	// Back navigates to the previous step of a multi-step surface.
	// Single-step editors treat it as Negative.
	Back
)

func (o Outcome) String() string {
	switch o {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Back:
		return "back"
	default:
		return "unknown"
	}
}

// Request asks a surface to collect one value. Only the fields relevant to
// Kind are set.
type Request struct {
	Token int
	Key   string
	Kind  models.Kind
	Title string

	// Step is the half being entered by a time range surface.
	Step session.Step

	Labels   []string
	Selected int
	// Chosen is the pre-selected subset of a multi selection list.
	Chosen []int

	Number int
	Min    int
	Max    int
	Unit   string

	Hint string
	Text string

	// Time is the value to pre-fill for time and time range surfaces.
	Time period.Time
	// Period is the whole range under construction.
	Period period.Period
}

// Result is what a surface reports when it closes.
type Result struct {
	Token   int
	Outcome Outcome

	Index   int
	Indexes []int
	Number  int
	Text    string
	Time    period.Time
}

// Surface opens an editing UI. The result arrives later through
// Controller.OnSessionResult.
type Surface interface {
	Open(req Request)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(req Request)

// Open calls f(req).
func (f SurfaceFunc) Open(req Request) { f(req) }

// Row is the view a controller edits.
type Row interface {
	Key() string
	Preference() models.Preference
	// SetClickHandler registers fn to run when the row is activated.
	SetClickHandler(fn func())
	Refresh()
}

// Controller drives edits of one row.
type Controller interface {
	// Token is the correlation token results must carry.
	Token() int
	Key() string
	// Attach binds the controller to row and registers it as the row's
	// click handler.
	Attach(row Row)
	// Activate starts a new edit session and opens the surface.
	Activate() error
	// OnSessionResult consumes res if it carries this controller's token.
	OnSessionResult(res Result) (handled bool, err error)
	// Active reports whether a session is in flight.
	Active() bool
	// SaveState returns the in-flight session as an opaque blob, or nil
	// when idle.
	SaveState() ([]byte, error)
	// RestoreState reinstates a blob from SaveState and reopens the
	// surface for it.
	RestoreState(blob []byte) error
	// Cancel abandons the in-flight session without writing.
	Cancel()
}

// ChangeListener is told about each committed value in canonical text form.
type ChangeListener func(key, value string)

type options struct {
	logger   *slog.Logger
	listener ChangeListener
}

// Option configures a controller.
type Option func(*options)

// WithLogger sets the logger used for session events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithListener registers fn to run after each successful commit.
func WithListener(fn ChangeListener) Option {
	return func(o *options) { o.listener = fn }
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
