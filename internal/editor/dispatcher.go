package editor

import (
	"fmt"
	"io"
	"log/slog"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/store"
)

// New returns the controller for pref's kind.
func New(pref models.Preference, token int, values store.Store, surface Surface, opts ...Option) (Controller, error) {
	switch pref.Kind {
	case models.KindSwitch:
		return NewSwitch(token, values, opts...), nil
	case models.KindList:
		return NewList(token, values, surface, opts...), nil
	case models.KindMultiList:
		return NewMultiList(token, values, surface, opts...), nil
	case models.KindNumber:
		return NewNumber(token, values, surface, opts...), nil
	case models.KindText:
		return NewText(token, values, surface, opts...), nil
	case models.KindTime:
		return NewClock(token, values, surface, opts...), nil
	case models.KindTimeRange:
		return NewRangeWizard(token, values, surface, opts...), nil
	default:
		return nil, apperrors.NewInvalidArgumentError("kind", pref.Kind, fmt.Sprintf("no editor for %q", pref.Key))
	}
}

// Dispatcher offers surface results to a set of controllers sharing one
// result channel.
type Dispatcher struct {
	controllers []Controller
	logger      *slog.Logger
}

// NewDispatcher returns an empty dispatcher. A nil logger discards output.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{logger: logger}
}

func (d *Dispatcher) Add(c Controller) {
	d.controllers = append(d.controllers, c)
}

// Remove drops c. Removing an unknown controller does nothing.
func (d *Dispatcher) Remove(c Controller) {
	for i, existing := range d.controllers {
		if existing == c {
			d.controllers = append(d.controllers[:i], d.controllers[i+1:]...)
			return
		}
	}
}

// Controllers returns the registered controllers in order.
func (d *Dispatcher) Controllers() []Controller {
	return append([]Controller(nil), d.controllers...)
}

// Deliver hands res to the first controller that claims it.
func (d *Dispatcher) Deliver(res Result) (bool, error) {
	for _, c := range d.controllers {
		handled, err := c.OnSessionResult(res)
		if handled {
			return true, err
		}
	}

	d.logger.Warn("no controller claimed result", "token", res.Token, "outcome", res.Outcome)
	return false, nil
}
