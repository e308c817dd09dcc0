// internal/workers/recommendation/activity-insights/handler_test.go
package activityinsights

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	st := store.New(db, nil, rdb, 0, logger.NewNoOpLogger())
	return NewHandler(LoadConfig(), st, logger.NewTestLogger(t)), mock, mr
}

func jobRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "role", "company_name", "location", "job_type", "experience_level",
		"skills", "description", "category", "stipend", "apply_link",
	})
}

func TestExecute_NoActivity(t *testing.T) {
	h, _, _ := newTestHandler(t)

	output, err := h.execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)
	assert.False(t, output.Insights.HasData)
	assert.Equal(t, 0, output.Insights.TotalActivities)
	assert.Equal(t, "low", output.Insights.Strength)
}

func TestExecute_BuildsSummary(t *testing.T) {
	h, mock, mr := newTestHandler(t)

	// Newest first after two pushes.
	mr.Lpush("user:activity:user-1", "job-1")
	mr.Lpush("user:activity:user-1", "job-2")

	mock.ExpectQuery("SELECT id, role").WithArgs("job-2").
		WillReturnRows(jobRows().AddRow("job-2", "Data Analyst", "Globex", "Mumbai", "internship", "entry",
			[]byte(`["python"]`), "", "analytics", "", ""))
	mock.ExpectQuery("SELECT id, role").WithArgs("job-1").
		WillReturnRows(jobRows().AddRow("job-1", "Engineer", "Acme", "Bangalore", "internship", "entry",
			[]byte(`["go"]`), "", "engineering", "", ""))

	output, err := h.execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)
	assert.True(t, output.Insights.HasData)
	assert.Equal(t, 2, output.Insights.TotalActivities)
	assert.Equal(t, []string{"Globex", "Acme"}, output.Insights.RecentCompanies)
	require.NotEmpty(t, output.Insights.TopJobTypes)
	assert.Equal(t, "internship", output.Insights.TopJobTypes[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_SkipsDeletedJobs(t *testing.T) {
	h, mock, mr := newTestHandler(t)

	mr.Lpush("user:activity:user-1", "job-gone")

	mock.ExpectQuery("SELECT id, role").WithArgs("job-gone").WillReturnRows(jobRows())

	output, err := h.execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)
	assert.False(t, output.Insights.HasData)
}

func TestExecute_JobQueryErrorPropagates(t *testing.T) {
	h, mock, mr := newTestHandler(t)

	mr.Lpush("user:activity:user-1", "job-1")
	mock.ExpectQuery("SELECT id, role").WithArgs("job-1").
		WillReturnError(errors.New("connection reset"))

	_, err := h.execute(context.Background(), &Input{UserID: "user-1"})
	require.Error(t, err)
}
