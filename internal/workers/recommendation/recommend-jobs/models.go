// internal/workers/recommendation/recommend-jobs/models.go
package recommendjobs

import "recommendation-workers/internal/models"

type Input struct {
	UserID  string          `json:"userId"`
	Limit   int             `json:"limit,omitempty"`
	Filters *models.Filters `json:"filters,omitempty"`
}

type Output struct {
	Recommendations []models.ScoredJob `json:"recommendations"`
	HasActivityData bool               `json:"hasActivityData"`
	Count           int                `json:"count"`
	RequestID       string             `json:"requestId"`
}
