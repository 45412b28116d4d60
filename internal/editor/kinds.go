package editor

import (
	"strconv"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/period"
	"github.com/dtg01100/prefedit/internal/session"
	"github.com/dtg01100/prefedit/internal/store"
)

// List edits a preference with a fixed set of choices.
type List = Editor[session.ListPayload]

// NewList returns a list controller.
func NewList(token int, values store.Store, surface Surface, opts ...Option) *List {
	return newEditor[session.ListPayload](token, values, surface, listOps{}, opts)
}

type listOps struct{}

func (listOps) setup(pref models.Preference, values store.Store) session.ListPayload {
	p := session.ListPayload{
		Labels: make([]string, len(pref.Choices)),
		Values: make([]string, len(pref.Choices)),
	}
	for i, c := range pref.Choices {
		p.Labels[i] = c.Label
		p.Values[i] = c.Value
	}
	p.Selected = pref.ChoiceIndex(store.Read(values, pref))
	p.Ints = pref.IntValues
	return p
}

func (listOps) fill(req *Request, p session.ListPayload) {
	req.Labels = append([]string(nil), p.Labels...)
	req.Selected = p.Selected
}

func (listOps) apply(p *session.ListPayload, res Result) (action, error) {
	act := singleStep(res)
	if act != actionCommit {
		return act, nil
	}
	if res.Index < 0 || res.Index >= len(p.Values) {
		return actionCancel, apperrors.NewInvalidArgumentError("index", res.Index, "no such choice")
	}
	p.Selected = res.Index
	return actionCommit, nil
}

func (listOps) commit(values store.Store, key string, p session.ListPayload) (string, error) {
	v := p.Values[p.Selected]
	if p.Ints {
		n, err := strconv.Atoi(v)
		if err != nil {
			return v, apperrors.NewInvalidArgumentError(key, v, "choice is not an integer")
		}
		return v, values.PutInt(key, n)
	}
	return v, values.PutString(key, v)
}

// MultiList edits a preference where any subset of the choices may be
// chosen.
type MultiList = Editor[session.MultiListPayload]

// NewMultiList returns a multi selection list controller.
func NewMultiList(token int, values store.Store, surface Surface, opts ...Option) *MultiList {
	return newEditor[session.MultiListPayload](token, values, surface, multiListOps{}, opts)
}

type multiListOps struct{}

func (multiListOps) setup(pref models.Preference, values store.Store) session.MultiListPayload {
	p := session.MultiListPayload{
		Labels:   make([]string, len(pref.Choices)),
		Values:   make([]string, len(pref.Choices)),
		Selected: []int{},
	}
	chosen := make(map[string]bool)
	for _, v := range values.GetStrings(pref.Key, pref.DefaultValues()) {
		chosen[v] = true
	}
	for i, c := range pref.Choices {
		p.Labels[i] = c.Label
		p.Values[i] = c.Value
		if chosen[c.Value] {
			p.Selected = append(p.Selected, i)
		}
	}
	return p
}

func (multiListOps) fill(req *Request, p session.MultiListPayload) {
	req.Labels = append([]string(nil), p.Labels...)
	req.Chosen = append([]int(nil), p.Selected...)
}

func (multiListOps) apply(p *session.MultiListPayload, res Result) (action, error) {
	act := singleStep(res)
	if act != actionCommit {
		return act, nil
	}

	chosen := make([]bool, len(p.Values))
	for _, i := range res.Indexes {
		if i < 0 || i >= len(p.Values) {
			return actionCancel, apperrors.NewInvalidArgumentError("index", i, "no such choice")
		}
		chosen[i] = true
	}

	p.Selected = p.Selected[:0]
	for i, ok := range chosen {
		if ok {
			p.Selected = append(p.Selected, i)
		}
	}
	return actionCommit, nil
}

func (multiListOps) commit(values store.Store, key string, p session.MultiListPayload) (string, error) {
	selected := p.SelectedValues()
	return models.JoinValues(selected), values.PutStrings(key, selected)
}

// Number edits a bounded integer.
type Number = Editor[session.NumberPayload]

// NewNumber returns a number controller.
func NewNumber(token int, values store.Store, surface Surface, opts ...Option) *Number {
	return newEditor[session.NumberPayload](token, values, surface, numberOps{}, opts)
}

type numberOps struct{}

func (numberOps) setup(pref models.Preference, values store.Store) session.NumberPayload {
	lo, hi := pref.Bounds()
	def := pref.DefaultInt()
	return session.NumberPayload{
		Value:   values.GetInt(pref.Key, def),
		Default: def,
		Min:     lo,
		Max:     hi,
		Unit:    pref.Unit,
		Hint:    pref.Hint,
	}
}

func (numberOps) fill(req *Request, p session.NumberPayload) {
	req.Number = p.Value
	req.Min = p.Min
	req.Max = p.Max
	req.Unit = p.Unit
	req.Hint = p.Hint
}

func (numberOps) apply(p *session.NumberPayload, res Result) (action, error) {
	act := singleStep(res)
	if act != actionCommit {
		return act, nil
	}
	if !p.InBounds(res.Number) {
		return actionCancel, apperrors.NewInvalidArgumentError("number", res.Number,
			"must be between "+strconv.Itoa(p.Min)+" and "+strconv.Itoa(p.Max))
	}
	p.Value = res.Number
	return actionCommit, nil
}

func (numberOps) commit(values store.Store, key string, p session.NumberPayload) (string, error) {
	return strconv.Itoa(p.Value), values.PutInt(key, p.Value)
}

// Text edits free-form text.
type Text = Editor[session.TextPayload]

// NewText returns a text controller.
func NewText(token int, values store.Store, surface Surface, opts ...Option) *Text {
	return newEditor[session.TextPayload](token, values, surface, textOps{}, opts)
}

type textOps struct{}

func (textOps) setup(pref models.Preference, values store.Store) session.TextPayload {
	return session.TextPayload{Value: values.GetString(pref.Key, pref.Default), Hint: pref.Hint}
}

func (textOps) fill(req *Request, p session.TextPayload) {
	req.Text = p.Value
	req.Hint = p.Hint
}

func (textOps) apply(p *session.TextPayload, res Result) (action, error) {
	act := singleStep(res)
	if act == actionCommit {
		p.Value = res.Text
	}
	return act, nil
}

func (textOps) commit(values store.Store, key string, p session.TextPayload) (string, error) {
	return p.Value, values.PutString(key, p.Value)
}

// Clock edits a single clock time.
type Clock = Editor[session.TimePayload]

// NewClock returns a time controller.
func NewClock(token int, values store.Store, surface Surface, opts ...Option) *Clock {
	return newEditor[session.TimePayload](token, values, surface, clockOps{}, opts)
}

type clockOps struct{}

func (clockOps) setup(pref models.Preference, values store.Store) session.TimePayload {
	return session.TimePayload{Value: period.ParseTimeOrZero(values.GetString(pref.Key, pref.Default))}
}

func (clockOps) fill(req *Request, p session.TimePayload) {
	req.Time = p.Value
}

func (clockOps) apply(p *session.TimePayload, res Result) (action, error) {
	act := singleStep(res)
	if act != actionCommit {
		return act, nil
	}
	if err := validTime(res.Time); err != nil {
		return actionCancel, err
	}
	p.Value = res.Time
	return actionCommit, nil
}

func (clockOps) commit(values store.Store, key string, p session.TimePayload) (string, error) {
	v := p.Value.String()
	return v, values.PutString(key, v)
}

func validTime(t period.Time) error {
	_, err := period.NewTime(t.Hour, t.Minute)
	return err
}
