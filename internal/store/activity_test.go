package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redismock "github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
)

func newRedisClient(t *testing.T) *Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(nil, nil, rdb, 0, logger.NewNoOpLogger())
}

func TestRecordActivity_OrdersMostRecentFirst(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()

	for _, jobID := range []string{"j1", "j2", "j3"} {
		_, err := client.RecordActivity(ctx, "user-1", jobID)
		require.NoError(t, err)
	}

	ids, err := client.GetRecentActivity(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"j3", "j2", "j1"}, ids)
}

func TestRecordActivity_DedupOnReinsert(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()

	// J1, J2, then J1 again: J1 moves to the front, no duplicate.
	for _, jobID := range []string{"J1", "J2", "J1"} {
		_, err := client.RecordActivity(ctx, "user-1", jobID)
		require.NoError(t, err)
	}

	ids, err := client.GetRecentActivity(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"J1", "J2"}, ids)
}

func TestRecordActivity_CapsAtTenEntries(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()

	for i := 1; i <= 11; i++ {
		count, err := client.RecordActivity(ctx, "user-1", fmt.Sprintf("j%d", i))
		require.NoError(t, err)
		assert.LessOrEqual(t, count, int64(MaxActivityEntries))
	}

	ids, err := client.GetRecentActivity(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, ids, MaxActivityEntries)
	assert.Equal(t, "j11", ids[0])
	assert.NotContains(t, ids, "j1")
}

func TestGetRecentActivity_NoActivity(t *testing.T) {
	client := newRedisClient(t)

	ids, err := client.GetRecentActivity(context.Background(), "new-user")
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRecordActivity_RedisFailure(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	client := New(nil, nil, rdb, 0, logger.NewNoOpLogger())

	key := activityKeyPrefix + "user-1"
	mock.ExpectTxPipeline()
	mock.ExpectLRem(key, 0, "j1").SetErr(errors.New("connection refused"))

	_, err := client.RecordActivity(context.Background(), "user-1", "j1")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeActivityRecordFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
