package editor

import (
	"errors"
	"strconv"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/store"
)

// Switch toggles a boolean preference on activation. It opens no surface and
// keeps no session.
type Switch struct {
	token  int
	key    string
	row    Row
	values store.Store
	opts   options
}

// NewSwitch returns a switch controller.
func NewSwitch(token int, values store.Store, opts ...Option) *Switch {
	return &Switch{token: token, values: values, opts: buildOptions(opts)}
}

func (s *Switch) Token() int { return s.token }
func (s *Switch) Key() string { return s.key }

// Attach implements Controller.
func (s *Switch) Attach(row Row) {
	s.row = row
	s.key = row.Key()
	row.SetClickHandler(func() {
		if err := s.Activate(); err != nil {
			s.opts.logger.Error("toggling switch failed", "key", s.key, "error", err)
		}
	})
}

// Activate flips the stored value.
func (s *Switch) Activate() error {
	if s.row == nil {
		return apperrors.NewInvalidArgumentError("row", nil, "controller is not attached to a row")
	}

	pref := s.row.Preference()
	next := !s.values.GetBool(pref.Key, pref.DefaultBool())
	if err := s.values.PutBool(pref.Key, next); err != nil {
		if !errors.Is(err, apperrors.ErrStoreWrite) {
			err = apperrors.NewStoreWriteError(pref.Key, err)
		}
		return err
	}

	value := strconv.FormatBool(next)
	s.opts.logger.Info("switch toggled", "key", pref.Key, "token", s.token, "value", value)
	if s.opts.listener != nil {
		s.opts.listener(pref.Key, value)
	}
	return nil
}

// OnSessionResult never handles anything; switches have no sessions.
func (s *Switch) OnSessionResult(Result) (bool, error) { return false, nil }

func (s *Switch) Active() bool { return false }
func (s *Switch) SaveState() ([]byte, error) { return nil, nil }
func (s *Switch) RestoreState(blob []byte) error { return nil }
func (s *Switch) Cancel() {}
