package store

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
)

func newSQLClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, nil, nil, 0, logger.NewNoOpLogger()), mock
}

func TestGetUserProfile_Found(t *testing.T) {
	client, mock := newSQLClient(t)

	rows := sqlmock.NewRows([]string{"user_id", "skills", "location", "experience_level", "education"}).
		AddRow("user-1", []byte(`["Python"," SQL "]`), "Bangalore", "entry", "B.Tech")
	mock.ExpectQuery("SELECT user_id, skills").WithArgs("user-1").WillReturnRows(rows)

	profile, err := client.GetUserProfile(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, []string{"Python", " SQL "}, []string(profile.Skills))
	assert.Equal(t, "Bangalore", profile.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserProfile_SkillsAsString(t *testing.T) {
	client, mock := newSQLClient(t)

	rows := sqlmock.NewRows([]string{"user_id", "skills", "location", "experience_level", "education"}).
		AddRow("user-1", []byte(`"python, sql"`), "", "", "")
	mock.ExpectQuery("SELECT user_id, skills").WithArgs("user-1").WillReturnRows(rows)

	profile, err := client.GetUserProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"python", " sql"}, []string(profile.Skills))
}

func TestGetUserProfile_MalformedSkills(t *testing.T) {
	client, mock := newSQLClient(t)

	rows := sqlmock.NewRows([]string{"user_id", "skills", "location", "experience_level", "education"}).
		AddRow("user-1", []byte(`{not json`), "Pune", "", "")
	mock.ExpectQuery("SELECT user_id, skills").WithArgs("user-1").WillReturnRows(rows)

	profile, err := client.GetUserProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, profile.Skills)
	assert.Equal(t, "Pune", profile.Location)
}

func TestGetUserProfile_Absent(t *testing.T) {
	client, mock := newSQLClient(t)

	mock.ExpectQuery("SELECT user_id, skills").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "skills", "location", "experience_level", "education"}))

	profile, err := client.GetUserProfile(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, profile)
}

func TestGetUserProfile_QueryError(t *testing.T) {
	client, mock := newSQLClient(t)

	mock.ExpectQuery("SELECT user_id, skills").WithArgs("user-1").
		WillReturnError(errors.New("connection reset"))

	profile, err := client.GetUserProfile(context.Background(), "user-1")
	assert.Nil(t, profile)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeProfileQueryFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestGetJob_Found(t *testing.T) {
	client, mock := newSQLClient(t)

	rows := sqlmock.NewRows([]string{
		"id", "role", "company_name", "location", "job_type", "experience_level",
		"skills", "description", "category", "stipend", "apply_link",
	}).AddRow("job-1", "Engineer", "Acme", "Pune", "full-time", "entry",
		[]byte(`["go"]`), "build services", "Engineering", "", "https://acme.example/jobs/1")
	mock.ExpectQuery("SELECT id, role, company_name").WithArgs("job-1").WillReturnRows(rows)

	job, err := client.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, "Acme", job.CompanyName)
	assert.Equal(t, []string{"go"}, []string(job.Skills))
}

func TestGetJob_Absent(t *testing.T) {
	client, mock := newSQLClient(t)

	mock.ExpectQuery("SELECT id, role, company_name").WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "role", "company_name", "location", "job_type", "experience_level",
			"skills", "description", "category", "stipend", "apply_link",
		}))

	job, err := client.GetJob(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, job)
}
