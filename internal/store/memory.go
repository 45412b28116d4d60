package store

import (
	"encoding/json"
	"sync"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
)

// Memory is a Store held entirely in process memory.
type Memory struct {
	notifier

	mu     sync.RWMutex
	values map[string][]byte

	// FailWrites makes every write fail; tests use it to exercise the
	// store write failure path.
	FailWrites error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.values[key]
	return raw, ok
}

// GetString implements Store.
func (m *Memory) GetString(key, def string) string {
	raw, ok := m.get(key)
	if !ok {
		return def
	}
	return decodeString(raw, def)
}

// GetInt implements Store.
func (m *Memory) GetInt(key string, def int) int {
	raw, ok := m.get(key)
	if !ok {
		return def
	}
	return decodeInt(raw, def)
}

// GetBool implements Store.
func (m *Memory) GetBool(key string, def bool) bool {
	raw, ok := m.get(key)
	if !ok {
		return def
	}
	return decodeBool(raw, def)
}

// GetStrings implements Store.
func (m *Memory) GetStrings(key string, def []string) []string {
	raw, ok := m.get(key)
	if !ok {
		return def
	}
	return decodeStrings(raw, def)
}

// Contains implements Store.
func (m *Memory) Contains(key string) bool {
	_, ok := m.get(key)
	return ok
}

func (m *Memory) put(key string, v any) error {
	if m.FailWrites != nil {
		return apperrors.NewStoreWriteError(key, m.FailWrites)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return apperrors.NewStoreWriteError(key, err)
	}

	m.mu.Lock()
	m.values[key] = raw
	m.mu.Unlock()

	m.notify(key)
	return nil
}

// PutString implements Store.
func (m *Memory) PutString(key, value string) error { return m.put(key, value) }

// PutInt implements Store.
func (m *Memory) PutInt(key string, value int) error { return m.put(key, value) }

// PutBool implements Store.
func (m *Memory) PutBool(key string, value bool) error { return m.put(key, value) }

// PutStrings implements Store. A nil slice is stored as an empty set.
func (m *Memory) PutStrings(key string, value []string) error {
	if value == nil {
		value = []string{}
	}
	return m.put(key, value)
}

// Remove implements Store.
func (m *Memory) Remove(key string) error {
	if m.FailWrites != nil {
		return apperrors.NewStoreWriteError(key, m.FailWrites)
	}

	m.mu.Lock()
	_, existed := m.values[key]
	delete(m.values, key)
	m.mu.Unlock()

	if existed {
		m.notify(key)
	}
	return nil
}

// All implements Store.
func (m *Memory) All() (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]any, len(m.values))
	for k, raw := range m.values {
		v, err := decodeAny(raw)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
