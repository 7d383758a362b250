package countdown

import "github.com/ghettovoice/countdown/internal/errorutil"

// Common errors.
const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrTimerRunning is returned when starting a timer that is already counting down.
	ErrTimerRunning Error = "timer already running"
	// ErrTimerNotRunning is returned when stopping a timer that is not counting down.
	ErrTimerNotRunning Error = "timer not running"
)

// Error represents a countdown error.
// See [errorutil.Error].
type Error = errorutil.Error

// NewInvalidArgumentError creates a new error with [ErrInvalidArgument] or
// wraps provided error with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}
