// Package refresh re-renders settings rows when the values they show or
// depend on change in the store.
package refresh

import (
	"io"
	"log/slog"

	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/store"
)

// Row is a view that can redraw itself.
type Row interface {
	Key() string
	Preference() models.Preference
	Refresh()
}

// Broadcaster refreshes attached rows on store changes. Rows are refreshed
// in attach order.
type Broadcaster struct {
	values store.Store
	logger *slog.Logger

	rows        []Row
	unsubscribe func()
}

// New returns a broadcaster over values. A nil logger discards output.
func New(values store.Store, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Broadcaster{values: values, logger: logger}
}

// Attach adds row. Attaching the same row again does nothing.
func (b *Broadcaster) Attach(row Row) {
	for _, r := range b.rows {
		if r == row {
			return
		}
	}
	b.rows = append(b.rows, row)
}

// Detach removes row.
func (b *Broadcaster) Detach(row Row) {
	for i, r := range b.rows {
		if r == row {
			b.rows = append(b.rows[:i], b.rows[i+1:]...)
			return
		}
	}
}

// Rows returns the attached rows.
func (b *Broadcaster) Rows() []Row {
	return append([]Row(nil), b.rows...)
}

// Start subscribes to the store. Calling Start twice is a no-op.
func (b *Broadcaster) Start() {
	if b.unsubscribe != nil {
		return
	}
	b.unsubscribe = b.values.Subscribe(b.changed)
}

// Stop unsubscribes from the store.
func (b *Broadcaster) Stop() {
	if b.unsubscribe == nil {
		return
	}
	b.unsubscribe()
	b.unsubscribe = nil
}

func (b *Broadcaster) changed(key string) {
	refreshed := 0
	for _, r := range b.Rows() {
		if r.Key() == key || r.Preference().DependsOn == key {
			r.Refresh()
			refreshed++
		}
	}
	b.logger.Debug("preference changed", "key", key, "rows", refreshed)
}
