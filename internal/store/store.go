// Package store persists preference values and notifies listeners when they
// change.
package store

import (
	"encoding/json"
	"sync"
)

// Listener is called after key was written or removed.
type Listener func(key string)

// Store is a synchronous typed key-value map with change notification.
// Reading a value through the wrong typed getter yields the default.
type Store interface {
	GetString(key, def string) string
	GetInt(key string, def int) int
	GetBool(key string, def bool) bool
	// GetStrings reads a string set stored by PutStrings.
	GetStrings(key string, def []string) []string
	// Contains reports whether a value is stored for key.
	Contains(key string) bool

	PutString(key, value string) error
	PutInt(key string, value int) error
	PutBool(key string, value bool) error
	// PutStrings stores value as a JSON array.
	PutStrings(key string, value []string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// All returns every stored value decoded to string, float64, bool or
	// []any.
	All() (map[string]any, error)

	// Subscribe registers fn and returns a function that unregisters it.
	Subscribe(fn Listener) (unsubscribe func())

	Close() error
}

// notifier fans change notifications out to subscribers in subscription
// order.
type notifier struct {
	mu        sync.Mutex
	next      int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

func (n *notifier) Subscribe(fn Listener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.next++
	id := n.next
	n.listeners = append(n.listeners, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			for i, s := range n.listeners {
				if s.id == id {
					n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (n *notifier) notify(key string) {
	n.mu.Lock()
	snapshot := make([]subscription, len(n.listeners))
	copy(snapshot, n.listeners)
	n.mu.Unlock()

	for _, s := range snapshot {
		s.fn(key)
	}
}

func decodeString(raw []byte, def string) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return def
	}
	return s
}

func decodeInt(raw []byte, def int) int {
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return def
	}
	return n
}

func decodeBool(raw []byte, def bool) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return def
	}
	return b
}

func decodeStrings(raw []byte, def []string) []string {
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return def
	}
	return values
}

func decodeAny(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
