package editor

import (
	"errors"
	"log/slog"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/session"
	"github.com/dtg01100/prefedit/internal/store"
)

// action is what a kind decides to do with a result.
type action int

const (
	actionCancel action = iota
	actionReopen
	actionCommit
)

// kindOps holds the behaviour that differs between editor kinds.
type kindOps[P session.Payload[P]] interface {
	// setup builds the payload from the preference and the stored value.
	// Unreadable stored values fall back to the default.
	setup(pref models.Preference, values store.Store) P
	// fill copies the payload into a surface request.
	fill(req *Request, p P)
	// apply folds a result into the payload.
	apply(p *P, res Result) (action, error)
	// commit writes the payload and returns the stored canonical text.
	commit(values store.Store, key string, p P) (string, error)
}

// Editor is a Controller generic over its session payload, so it only ever
// sees its own kind's state.
type Editor[P session.Payload[P]] struct {
	token   int
	key     string
	row     Row
	values  store.Store
	surface Surface
	ops     kindOps[P]
	opts    options

	state *session.State[P]
}

func newEditor[P session.Payload[P]](token int, values store.Store, surface Surface, ops kindOps[P], opts []Option) *Editor[P] {
	return &Editor[P]{
		token:   token,
		values:  values,
		surface: surface,
		ops:     ops,
		opts:    buildOptions(opts),
	}
}

// Token implements Controller.
func (e *Editor[P]) Token() int { return e.token }

// Key implements Controller.
func (e *Editor[P]) Key() string {
	if e.state != nil {
		return e.state.Key
	}
	return e.key
}

// Attach implements Controller.
func (e *Editor[P]) Attach(row Row) {
	e.row = row
	e.key = row.Key()
	row.SetClickHandler(func() {
		if err := e.Activate(); err != nil {
			e.log().Error("activating editor failed", "error", err)
		}
	})
}

// Active implements Controller.
func (e *Editor[P]) Active() bool { return e.state != nil }

// Session returns a copy of the in-flight session, or nil.
func (e *Editor[P]) Session() *session.State[P] {
	return e.state.Clone()
}

// Activate implements Controller.
func (e *Editor[P]) Activate() error {
	if e.row == nil {
		return apperrors.NewInvalidArgumentError("row", nil, "controller is not attached to a row")
	}

	pref := e.row.Preference()
	e.state = session.New(pref, e.ops.setup(pref, e.values))
	e.log().Info("edit session started")
	e.open()
	return nil
}

// OnSessionResult implements Controller.
func (e *Editor[P]) OnSessionResult(res Result) (bool, error) {
	if res.Token != e.token {
		return false, nil
	}

	if e.state == nil {
		e.log().Warn("dropping result without a session",
			"outcome", res.Outcome,
			"error", apperrors.NewStaleSessionError(e.key, e.token))
		return true, nil
	}

	act, err := e.ops.apply(&e.state.Payload, res)
	if err != nil {
		e.log().Warn("rejected session result", "outcome", res.Outcome, "error", err)
		e.state = nil
		return true, err
	}

	switch act {
	case actionReopen:
		e.open()
		return true, nil
	case actionCommit:
		return true, e.commit()
	default:
		e.log().Info("edit session cancelled", "outcome", res.Outcome)
		e.state = nil
		return true, nil
	}
}

func (e *Editor[P]) commit() error {
	st := e.state
	e.state = nil

	value, err := e.ops.commit(e.values, st.Key, st.Payload)
	if err != nil {
		if !errors.Is(err, apperrors.ErrStoreWrite) {
			err = apperrors.NewStoreWriteError(st.Key, err)
		}
		e.opts.logger.Error("commit failed", "key", st.Key, "token", e.token, "session", st.ID, "error", err)
		return err
	}

	e.opts.logger.Info("edit session committed", "key", st.Key, "token", e.token, "session", st.ID, "value", value)
	if e.opts.listener != nil {
		e.opts.listener(st.Key, value)
	}
	return nil
}

// SaveState implements Controller.
func (e *Editor[P]) SaveState() ([]byte, error) {
	if e.state == nil {
		return nil, nil
	}
	return session.Encode(e.state)
}

// RestoreState implements Controller.
func (e *Editor[P]) RestoreState(blob []byte) error {
	if len(blob) == 0 {
		e.state = nil
		return nil
	}

	st, err := session.Decode[P](blob)
	if err != nil {
		return err
	}

	e.state = st
	e.log().Info("edit session restored")
	e.open()
	return nil
}

// Cancel implements Controller.
func (e *Editor[P]) Cancel() {
	if e.state == nil {
		return
	}
	e.log().Info("edit session cancelled")
	e.state = nil
}

func (e *Editor[P]) open() {
	req := Request{
		Token: e.token,
		Key:   e.state.Key,
		Kind:  e.state.Kind(),
		Title: e.state.Title,
	}
	e.ops.fill(&req, e.state.Payload)
	e.surface.Open(req)
}

func (e *Editor[P]) log() *slog.Logger {
	l := e.opts.logger.With("key", e.Key(), "token", e.token)
	if e.state != nil {
		l = l.With("session", e.state.ID)
	}
	return l
}

// singleStep maps the outcome of a one-surface editor: Positive commits,
// anything else cancels.
func singleStep(res Result) action {
	if res.Outcome == Positive {
		return actionCommit
	}
	return actionCancel
}
