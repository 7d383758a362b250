package countdown

//go:generate errtrace -w .

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/countdown/internal/errorutil"
	"github.com/ghettovoice/countdown/internal/randutils"
	"github.com/ghettovoice/countdown/timing"
)

// Timer lifecycle states and triggers.
const (
	stateDormant = "dormant"
	stateRunning = "running"

	triggerStart = "start"
	triggerStop  = "stop"
)

// Timer is a resettable countdown timer.
//
// A started timer counts down from the configured step, reduced each cycle by
// a random draw from the jitter window. When a cycle elapses undisturbed the
// timer increments its expiry counter and broadcasts on the timed out signal,
// then begins the next cycle. [Timer.Reset] wakes the current cycle early and
// restarts the countdown without an expiry. [Timer.Stop] terminates the
// background goroutine and joins it before returning.
//
// A stopped timer may be started again: every [Timer.Start] spawns a fresh
// countdown goroutine with its own control channels.
type Timer struct {
	step     time.Duration
	jitter   time.Duration
	timedOut *Signal
	log      *slog.Logger

	fsm *stateless.StateMachine

	mu   sync.Mutex
	sess *session

	alive    atomic.Bool
	expiries atomic.Uint64
}

// session holds the control channels of one countdown goroutine.
// A fresh session is allocated on every start so that restart is well defined.
type session struct {
	id    string
	reset chan struct{}
	stop  chan struct{}
	done  chan struct{}
}

// NewTimer creates a new dormant [Timer].
//
// step is the base countdown interval and must be positive. jitter is the
// maximum duration randomly subtracted from step each cycle; it must be
// non-negative and strictly less than step, so the wait can never underflow.
// timedOut is the caller-owned signal broadcast on every expiry; the timer
// only borrows it. Options are optional, if nil, default values are used
// (see [TimerOptions]).
func NewTimer(step, jitter time.Duration, timedOut *Signal, opts *TimerOptions) (*Timer, error) {
	switch {
	case step <= 0:
		return nil, errtrace.Wrap(NewInvalidArgumentError("step must be positive, got %v", step))
	case jitter < 0:
		return nil, errtrace.Wrap(NewInvalidArgumentError("jitter must be non-negative, got %v", jitter))
	case jitter >= step:
		return nil, errtrace.Wrap(NewInvalidArgumentError("jitter %v must be less than step %v", jitter, step))
	case timedOut == nil:
		return nil, errtrace.Wrap(NewInvalidArgumentError("nil timed out signal"))
	}

	t := &Timer{
		step:     step,
		jitter:   jitter,
		timedOut: timedOut,
		log:      opts.log(),
	}

	fsm := stateless.NewStateMachine(stateDormant)
	fsm.Configure(stateDormant).Permit(triggerStart, stateRunning)
	fsm.Configure(stateRunning).Permit(triggerStop, stateDormant)
	t.fsm = fsm

	return t, nil
}

// Step returns the base countdown interval.
func (t *Timer) Step() time.Duration { return t.step }

// Jitter returns the maximum random reduction applied to the step each cycle.
func (t *Timer) Jitter() time.Duration { return t.jitter }

// Alive reports whether the countdown goroutine is running.
// It becomes true only once the goroutine spawned by [Timer.Start] has
// actually entered its loop, so it may lag Start returning.
func (t *Timer) Alive() bool { return t.alive.Load() }

// Expiries returns the number of genuine timeouts observed so far.
// The counter survives stop and restart and never decreases.
func (t *Timer) Expiries() uint64 { return t.expiries.Load() }

func (t *Timer) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("countdown.Timer<step=%s jitter=%s>", t.step, t.jitter)
}

// Start spawns the background countdown goroutine.
// It returns once the goroutine is spawned, without waiting for its first
// cycle. Starting an already running timer fails with [ErrTimerRunning].
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.fsm.Fire(triggerStart); err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrTimerRunning, err))
	}

	s := &session{
		id:    randutils.RandString(8),
		reset: make(chan struct{}),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	t.sess = s

	go t.spin(s)

	return nil
}

// Stop terminates the countdown and joins the background goroutine.
// It returns only after the goroutine has fully exited; no expiry is
// recorded after Stop returns. Stopping a timer that is not running fails
// with [ErrTimerNotRunning].
func (t *Timer) Stop() error {
	t.mu.Lock()
	if err := t.fsm.Fire(triggerStop); err != nil {
		t.mu.Unlock()
		return errtrace.Wrap(errorutil.NewWrapperError(ErrTimerNotRunning, err))
	}
	s := t.sess
	t.sess = nil
	t.mu.Unlock()

	t.alive.Store(false)
	close(s.stop)
	<-s.done

	return nil
}

// Reset wakes the current countdown cycle early, deferring the pending
// expiry; the next cycle starts with a freshly computed wait.
// Reset is fire-and-forget: on a dormant timer it is inert, and a reset
// arriving while the loop is between waits is dropped, matching
// notify-while-not-waiting semantics of a condition variable.
func (t *Timer) Reset() {
	t.mu.Lock()
	s := t.sess
	t.mu.Unlock()

	if s == nil {
		return
	}
	select {
	case s.reset <- struct{}{}:
	default:
	}
}

// spin is the countdown loop run by the background goroutine.
func (t *Timer) spin(s *session) {
	defer close(s.done)

	t.alive.Store(true)
	defer t.alive.Store(false)

	l := t.log.With(slog.String("countdown", s.id))
	l.Debug("countdown started",
		slog.Duration("step", t.step),
		slog.Duration("jitter", t.jitter),
	)

	for {
		tm := timing.NewTimer(waitDuration(t.step, t.jitter))

		select {
		case <-tm.C():
			num := t.expiries.Add(1)
			t.timedOut.Broadcast()
			l.Debug("countdown expired", slog.Uint64("expiries", num))
		case <-s.reset:
			tm.Stop()
			l.Debug("countdown reset")
		case <-s.stop:
			tm.Stop()
			l.Debug("countdown stopped")
			return
		}
	}
}

// waitDuration computes the next cycle's wait: step reduced by a uniform
// draw from [0, jitter). With jitter validated below step the result always
// stays within (step-jitter, step].
func waitDuration(step, jitter time.Duration) time.Duration {
	if jitter <= 0 {
		return step
	}
	return step - randutils.RandDuration(jitter)
}
