// Package timing provides a shim around the standard time functions used by
// the countdown loop, so that tests can enter mock mode and advance virtual
// time deterministically with Elapse instead of sleeping.
package timing

import (
	"slices"
	"sync"
	"time"
)

// MockMode enables the mock clock. It must be set before any timers are
// created and is intended for tests only.
var MockMode = false

// Timer is a resettable single-shot timer.
// In real mode it is backed by a [time.Timer].
type Timer interface {
	// C returns the channel the expiry time is delivered on.
	// Timers created with AfterFunc have no delivery channel in real mode,
	// matching [time.AfterFunc].
	C() <-chan time.Time
	// Stop prevents the timer from firing.
	// It reports whether the timer was still pending.
	Stop() bool
	// Reset re-arms the timer to fire after d, whether or not it has
	// already fired. It reports whether the timer was still pending.
	Reset(d time.Duration) bool
}

// NewTimer creates a timer that fires after d.
func NewTimer(d time.Duration) Timer {
	if MockMode {
		return newMockTimer(d, nil)
	}
	return &realTimer{timer: time.NewTimer(d)}
}

// AfterFunc creates a timer that calls fn in its own goroutine after d.
func AfterFunc(d time.Duration, fn func()) Timer {
	if MockMode {
		return newMockTimer(d, fn)
	}
	return &realTimer{timer: time.AfterFunc(d, fn)}
}

// After returns a channel that delivers the current time after d.
func After(d time.Duration) <-chan time.Time {
	return NewTimer(d).C()
}

// Now returns the current real or mock time.
func Now() time.Time {
	if MockMode {
		mockMu.Lock()
		defer mockMu.Unlock()
		return mockNow
	}
	return time.Now()
}

// Sleep blocks for d real or mock time.
func Sleep(d time.Duration) {
	if MockMode {
		<-After(d)
		return
	}
	time.Sleep(d)
}

// Elapse advances the mock clock by d, firing every pending timer whose end
// time has been reached, in end-time order.
func Elapse(d time.Duration) {
	mockMu.Lock()
	mockNow = mockNow.Add(d)
	now := mockNow
	var due []*mockTimer
	rest := mockTimers[:0]
	for _, t := range mockTimers {
		if t.end.After(now) {
			rest = append(rest, t)
		} else {
			due = append(due, t)
		}
	}
	mockTimers = rest
	mockMu.Unlock()

	slices.SortFunc(due, func(a, b *mockTimer) int { return a.end.Compare(b.end) })
	for _, t := range due {
		t.fire(now)
	}
}

type realTimer struct {
	timer *time.Timer
}

func (t *realTimer) C() <-chan time.Time        { return t.timer.C }
func (t *realTimer) Stop() bool                 { return t.timer.Stop() }
func (t *realTimer) Reset(d time.Duration) bool { return t.timer.Reset(d) }

var (
	mockMu     sync.Mutex
	mockNow    = time.Unix(0, 0)
	mockTimers []*mockTimer
)

type mockTimer struct {
	end time.Time
	ch  chan time.Time
	fn  func()
}

func newMockTimer(d time.Duration, fn func()) *mockTimer {
	t := &mockTimer{ch: make(chan time.Time, 1), fn: fn}
	mockMu.Lock()
	t.end = mockNow.Add(d)
	mockTimers = append(mockTimers, t)
	mockMu.Unlock()
	return t
}

func (t *mockTimer) C() <-chan time.Time { return t.ch }

func (t *mockTimer) Stop() bool {
	mockMu.Lock()
	defer mockMu.Unlock()
	return t.removeLocked()
}

func (t *mockTimer) Reset(d time.Duration) bool {
	mockMu.Lock()
	defer mockMu.Unlock()
	pending := t.removeLocked()
	t.end = mockNow.Add(d)
	mockTimers = append(mockTimers, t)
	return pending
}

// removeLocked unregisters the timer and reports whether it was pending.
// Caller must hold mockMu.
func (t *mockTimer) removeLocked() bool {
	for i, pending := range mockTimers {
		if pending == t {
			mockTimers = slices.Delete(mockTimers, i, i+1)
			return true
		}
	}
	return false
}

func (t *mockTimer) fire(now time.Time) {
	if t.fn != nil {
		go t.fn()
		return
	}
	select {
	case t.ch <- now:
	default:
	}
}
