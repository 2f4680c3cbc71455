package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
)

// StatsRefresher recomputes the stats summary and writes it to the cache.
type StatsRefresher interface {
	RefreshStats(ctx context.Context) error
}

// InitHandlers wires the dependencies job handlers need. It must be called
// before Start.
func (j *JobService) InitHandlers(refresher StatsRefresher) {
	j.refresher = refresher
}

// EnqueueStatsRefresh schedules a stats refresh. A refresh that is already
// pending makes this a no-op.
func (j *JobService) EnqueueStatsRefresh(ctx context.Context, reason string) error {
	task, err := NewStatsRefreshTask(reason)
	if err != nil {
		return fmt.Errorf("failed to create stats refresh task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return nil
		}
		return fmt.Errorf("failed to enqueue stats refresh task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("reason", reason).
		Msg("Enqueued stats refresh task")

	return nil
}

// handleStatsRefreshTask processes the stats refresh task.
func (j *JobService) handleStatsRefreshTask(ctx context.Context, t *asynq.Task) error {
	var p StatsRefreshPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal stats refresh payload: %w", err)
	}

	if j.refresher == nil {
		return fmt.Errorf("stats refresh handler not initialized: %w", asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskStatsRefresh).
		Str("reason", p.Reason).
		Msg("Processing stats refresh task")

	if err := j.refresher.RefreshStats(ctx); err != nil {
		j.logger.Error().
			Str("type", TaskStatsRefresh).
			Str("reason", p.Reason).
			Err(err).
			Msg("Failed to refresh stats")
		return err
	}

	j.logger.Info().
		Str("type", TaskStatsRefresh).
		Str("reason", p.Reason).
		Msg("Successfully refreshed stats")

	return nil
}
