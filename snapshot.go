package countdown

import (
	"encoding/json"
	"time"

	"braces.dev/errtrace"
)

// TimerSnapshot is a serializable view of a timer's observable state.
// Only deterministic fields are included; the countdown goroutine and its
// control channels are runtime-only and cannot be restored from a snapshot.
type TimerSnapshot struct {
	Step     time.Duration `json:"step"`
	Jitter   time.Duration `json:"jitter,omitzero"`
	Alive    bool          `json:"alive"`
	Expiries uint64        `json:"expiries"`
}

// Snapshot returns an immutable representation of the timer's observable
// state at the moment of the call.
func (t *Timer) Snapshot() *TimerSnapshot {
	if t == nil {
		return nil
	}
	return &TimerSnapshot{
		Step:     t.step,
		Jitter:   t.jitter,
		Alive:    t.alive.Load(),
		Expiries: t.expiries.Load(),
	}
}

// MarshalJSON implements json.Marshaler.
func (t *Timer) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(json.Marshal(t.Snapshot()))
}
