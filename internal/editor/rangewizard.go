package editor

import (
	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/period"
	"github.com/dtg01100/prefedit/internal/session"
	"github.com/dtg01100/prefedit/internal/store"
)

// RangeWizard edits a time range in two steps, start then end. The range is
// assembled in the session and written only when the end step is confirmed.
//
//	start + Positive  -> set start, open end step
//	end   + Positive  -> set end, commit
//	end   + Back      -> set end, open start step
//	start + Back      -> cancel
//	any   + Negative  -> cancel
type RangeWizard = Editor[session.RangePayload]

// NewRangeWizard returns a time range controller.
func NewRangeWizard(token int, values store.Store, surface Surface, opts ...Option) *RangeWizard {
	return newEditor[session.RangePayload](token, values, surface, rangeOps{}, opts)
}

type rangeOps struct{}

func (rangeOps) setup(pref models.Preference, values store.Store) session.RangePayload {
	return session.RangePayload{
		Value: period.ParsePeriodOrZero(values.GetString(pref.Key, pref.Default)),
		Step:  session.StepStart,
	}
}

func (rangeOps) fill(req *Request, p session.RangePayload) {
	req.Step = p.Step
	req.Time = p.Current()
	req.Period = p.Value
}

func (rangeOps) apply(p *session.RangePayload, res Result) (action, error) {
	switch {
	case res.Outcome == Negative:
		return actionCancel, nil
	case res.Outcome == Back && p.Step == session.StepStart:
		return actionCancel, nil
	}

	if err := validTime(res.Time); err != nil {
		return actionCancel, err
	}

	switch p.Step {
	case session.StepStart:
		p.Value.Start = res.Time
		p.Step = session.StepEnd
		return actionReopen, nil

	case session.StepEnd:
		// Back keeps the end just entered.
		p.Value.End = res.Time
		if res.Outcome == Back {
			p.Step = session.StepStart
			return actionReopen, nil
		}
		return actionCommit, nil

	default:
		return actionCancel, apperrors.NewInvalidArgumentError("step", p.Step, "unknown wizard step")
	}
}

func (rangeOps) commit(values store.Store, key string, p session.RangePayload) (string, error) {
	v := p.Value.String()
	return v, values.PutString(key, v)
}
