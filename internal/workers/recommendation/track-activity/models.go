// internal/workers/recommendation/track-activity/models.go
package trackactivity

type Input struct {
	UserID string `json:"userId"`
	JobID  string `json:"jobId"`
}

type Output struct {
	Recorded      bool  `json:"recorded"`
	ActivityCount int64 `json:"activityCount"`
}
