// internal/store/profiles.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/models"
)

// GetUserProfile returns the user's profile snapshot, or nil when the user
// is unknown. Unknown users are not an error: the caller returns an empty
// recommendation set. Reads go through a Redis cache-aside; a cache miss or
// a stale entry falls through to PostgreSQL.
func (c *Client) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	cacheKey := profileKeyPrefix + userID
	if c.redis != nil && c.cacheTTL > 0 {
		if val, err := c.redis.Get(ctx, cacheKey).Result(); err == nil {
			var profile models.UserProfile
			if err := json.Unmarshal([]byte(val), &profile); err == nil {
				return &profile, nil
			}
		}
	}

	row := c.db.QueryRowContext(ctx, `
		SELECT user_id, skills, location, experience_level, education
		FROM user_profiles WHERE user_id = $1`, userID)

	var profile models.UserProfile
	var skills []byte
	err := row.Scan(&profile.UserID, &skills, &profile.Location, &profile.ExperienceLevel, &profile.Education)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, stderrors.NewQueryTimeoutError("get_user_profile")
		}
		return nil, stderrors.NewProfileQueryFailedError(userID, err)
	}

	// SkillList tolerates both string and array shapes in the column.
	if err := json.Unmarshal(skills, &profile.Skills); err != nil {
		profile.Skills = nil
	}

	if c.redis != nil && c.cacheTTL > 0 {
		if data, err := json.Marshal(profile); err == nil {
			c.redis.Set(ctx, cacheKey, data, c.cacheTTL)
		}
	}

	return &profile, nil
}

// GetJob returns one job record, or nil when no such job exists.
func (c *Client) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, role, company_name, location, job_type, experience_level,
		       skills, description, category, stipend, apply_link
		FROM jobs WHERE id = $1`, jobID)

	var job models.Job
	var skills []byte
	err := row.Scan(&job.ID, &job.Role, &job.CompanyName, &job.Location, &job.JobType,
		&job.ExperienceLevel, &skills, &job.Description, &job.Category, &job.Stipend, &job.ApplyLink)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, stderrors.NewQueryTimeoutError("get_job")
		}
		return nil, stderrors.NewJobQueryFailedError(jobID, err)
	}

	if err := json.Unmarshal(skills, &job.Skills); err != nil {
		job.Skills = nil
	}

	return &job, nil
}
