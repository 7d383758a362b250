package countdown

import (
	"log/slog"

	"github.com/ghettovoice/countdown/log"
)

// TimerOptions are the options for a [Timer].
type TimerOptions struct {
	// Logger is the logger.
	// If nil, the [log.Default] is used.
	Logger *slog.Logger
}

func (o *TimerOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}
