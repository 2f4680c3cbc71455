package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// NewCommandMonitor logs MongoDB commands through zerolog.
//
//   - verbose: every command is logged at debug level
//   - slowThreshold: commands taking longer are logged at warn level; zero disables it
//   - failed commands are always logged at error level
func NewCommandMonitor(logger zerolog.Logger, verbose bool, slowThreshold time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			switch {
			case slowThreshold > 0 && e.Duration >= slowThreshold:
				logger.Warn().
					Str("command", e.CommandName).
					Int64("request_id", e.RequestID).
					Dur("duration", e.Duration).
					Dur("threshold", slowThreshold).
					Msg("slow mongo command")
			case verbose:
				logger.Debug().
					Str("command", e.CommandName).
					Int64("request_id", e.RequestID).
					Dur("duration", e.Duration).
					Msg("mongo command")
			}
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			logger.Error().
				Str("command", e.CommandName).
				Int64("request_id", e.RequestID).
				Dur("duration", e.Duration).
				Str("failure", e.Failure).
				Msg("mongo command failed")
		},
	}
}
