// Package countdown provides a resettable countdown timer.
//
// A [Timer] counts down from a configured step, optionally shortened each
// cycle by a random jitter draw. When a cycle elapses undisturbed the timer
// increments its expiry counter and broadcasts on a caller-owned [Signal];
// resetting the timer wakes the current cycle early and defers the expiry.
// The package is intended for heartbeat, retransmission and failure-detection
// loops where many timers must fire on a common cadence without
// synchronizing with each other.
//
// Basic usage:
//
//	timedOut := countdown.NewSignal()
//	timer, err := countdown.NewTimer(5*time.Second, 500*time.Millisecond, timedOut, nil)
//	if err != nil {
//		// invalid step/jitter configuration
//	}
//	if err := timer.Start(); err != nil {
//		// timer already running
//	}
//	defer timer.Stop()
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	go func() {
//		for {
//			if err := timedOut.Wait(ctx); err != nil {
//				return
//			}
//			slog.Info("expired", "expiries", timer.Expiries())
//		}
//	}()
//
//	// any activity defers the next expiry
//	timer.Reset()
package countdown
