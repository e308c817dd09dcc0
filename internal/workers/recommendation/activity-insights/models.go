// internal/workers/recommendation/activity-insights/models.go
package activityinsights

import "recommendation-workers/internal/models"

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	Insights models.PreferenceSummary `json:"insights"`
}
