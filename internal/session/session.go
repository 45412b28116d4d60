// Package session defines the in-flight state of one preference edit and the
// opaque blob form it takes while the host is being rebuilt.
package session

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/google/uuid"
)

// Payload is the kind-specific part of a session. Implementations are value
// types; Clone must return an independent copy.
type Payload[P any] interface {
	Kind() models.Kind
	Clone() P
}

// State is one edit session. It is built once when a row is activated and is
// never re-derived from the row afterwards.
type State[P Payload[P]] struct {
	// ID correlates log lines of one session.
	ID      string `json:"id"`
	Key     string `json:"key"`
	Title   string `json:"title"`
	Payload P      `json:"payload"`
}

// New starts a session for pref with the given payload.
func New[P Payload[P]](pref models.Preference, payload P) *State[P] {
	return &State[P]{
		ID:      uuid.New().String()[:8],
		Key:     pref.Key,
		Title:   pref.Title,
		Payload: payload,
	}
}

// Kind returns the payload kind.
func (s *State[P]) Kind() models.Kind {
	return s.Payload.Kind()
}

// Clone returns a deep copy of s.
func (s *State[P]) Clone() *State[P] {
	if s == nil {
		return nil
	}
	c := *s
	c.Payload = s.Payload.Clone()
	return &c
}

type envelope struct {
	Kind  models.Kind     `json:"kind"`
	State json.RawMessage `json:"state"`
}

// Encode serializes s into an opaque blob.
func Encode[P Payload[P]](s *State[P]) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding %s session: %w", s.Kind(), err)
	}
	return json.Marshal(envelope{Kind: s.Kind(), State: raw})
}

// Decode restores a session produced by Encode. A blob holding another
// kind's session is rejected.
func Decode[P Payload[P]](blob []byte) (*State[P], error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, apperrors.NewInvalidArgumentError("session", len(blob), "blob is not an encoded session")
	}

	var zero P
	if env.Kind != zero.Kind() {
		return nil, apperrors.NewInvalidArgumentError("session", env.Kind,
			fmt.Sprintf("blob holds a %s session, want %s", env.Kind, zero.Kind()))
	}

	var s State[P]
	if err := json.Unmarshal(env.State, &s); err != nil {
		return nil, apperrors.NewInvalidArgumentError("session", env.Kind, "cannot decode session state")
	}
	return &s, nil
}
