// internal/workers/infrastructure/build-response/models.go
package buildresponse

import "recommendation-workers/internal/models"

type Input struct {
	RequestID       string             `json:"requestId"`
	UserID          string             `json:"userId,omitempty"`
	Recommendations []models.ScoredJob `json:"recommendations"`
	HasActivityData bool               `json:"hasActivityData"`
	Count           int                `json:"count"`
}

type Output struct {
	Response ResponsePayload `json:"response"`
}

type ResponsePayload struct {
	RequestID string                 `json:"requestId"`
	Status    string                 `json:"status"`
	Data      map[string]interface{} `json:"data"`
	Metadata  ResponseMetadata       `json:"metadata"`
}

type ResponseMetadata struct {
	Timestamp string `json:"timestamp"` // ISO 8601
	Version   string `json:"version"`
}

// RecommendationView is the client-facing shape of a scored job: integer
// percentage score, bounded description, direct apply link.
type RecommendationView struct {
	JobID       string `json:"jobId"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	JobType     string `json:"jobType,omitempty"`
	Category    string `json:"category,omitempty"`
	Stipend     string `json:"stipend,omitempty"`
	ApplyLink   string `json:"applyLink,omitempty"`
	Description string `json:"description,omitempty"`
	MatchScore  int    `json:"matchScore"`
	Reason      string `json:"reason"`
}
