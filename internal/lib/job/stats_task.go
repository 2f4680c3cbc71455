package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskStatsRefresh is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskStatsRefresh = "stats:refresh"

	// statsRefreshUniqueTTL collapses bursts of writes into one pending refresh.
	statsRefreshUniqueTTL = 30 * time.Second
)

// StatsRefreshPayload is the JSON payload of a stats refresh task.
type StatsRefreshPayload struct {
	Reason string `json:"reason"`
}

// NewStatsRefreshTask constructs an Asynq task that recomputes the blog
// stats summary and stores it in the cache.
//
// Task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("low"): the cache is also filled lazily on read
//   - Timeout(30s): kill the task if the handler runs longer than 30 seconds
//   - Unique: at most one pending refresh at a time
func NewStatsRefreshTask(reason string) (*asynq.Task, error) {
	payload, err := json.Marshal(StatsRefreshPayload{Reason: reason})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskStatsRefresh,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
		asynq.Unique(statsRefreshUniqueTTL),
	), nil
}
