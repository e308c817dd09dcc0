// internal/store/activity.go
package store

import (
	"context"

	"github.com/redis/go-redis/v9"

	stderrors "recommendation-workers/internal/common/errors"
)

// GetRecentActivity returns the user's recently viewed job IDs, most recent
// first, at most MaxActivityEntries. A user with no activity yields an empty
// list, not an error.
func (c *Client) GetRecentActivity(ctx context.Context, userID string) ([]string, error) {
	key := activityKeyPrefix + userID
	ids, err := c.redis.LRange(ctx, key, 0, MaxActivityEntries-1).Result()
	if err != nil && err != redis.Nil {
		return nil, stderrors.NewActivityReadFailedError(userID, err)
	}
	return ids, nil
}

// RecordActivity applies the activity-log update rule for one job-view
// event: drop the ID if already present, push it to the front, trim to
// MaxActivityEntries. The three commands run in one pipeline so the engine
// always reads a list that satisfies the rule. Concurrent events for the
// same user race last-write-wins; the log is advisory signal, not a ledger,
// so no locking is layered on top.
func (c *Client) RecordActivity(ctx context.Context, userID, jobID string) (int64, error) {
	key := activityKeyPrefix + userID

	pipe := c.redis.TxPipeline()
	pipe.LRem(ctx, key, 0, jobID)
	push := pipe.LPush(ctx, key, jobID)
	pipe.LTrim(ctx, key, 0, MaxActivityEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, stderrors.NewActivityRecordFailedError(userID, jobID, err)
	}

	count := push.Val()
	if count > MaxActivityEntries {
		count = MaxActivityEntries
	}

	c.logger.Debug("recorded activity", map[string]interface{}{
		"userId": userID,
		"jobId":  jobID,
		"count":  count,
	})
	return count, nil
}
