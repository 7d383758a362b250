package countdown

import (
	"context"
	"sync"

	"braces.dev/errtrace"
)

// Signal is a broadcast notification primitive shared between a [Timer] and
// any number of observers. The timer only ever broadcasts on it, observers
// only ever wait on it, so no wait cycle can form through a signal.
//
// Notifications are not queued: an observer that starts waiting after a
// broadcast has happened waits for the next one.
type Signal struct {
	mu sync.Mutex
	ch chan struct{}
}

// NewSignal creates a new [Signal].
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Broadcast wakes every observer currently waiting on the signal.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	close(s.ch)
	s.ch = make(chan struct{})
	s.mu.Unlock()
}

// C returns a channel that is closed on the next broadcast.
// The channel is only valid until that broadcast; select-based observers
// must re-acquire it on each iteration.
func (s *Signal) C() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch
}

// Wait blocks until the next broadcast or until the context is done.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.C():
		return nil
	case <-ctx.Done():
		return errtrace.Wrap(ctx.Err())
	}
}
