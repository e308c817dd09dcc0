// internal/models/job.go
package models

// Job is an immutable snapshot of a posting. A job without an ID or a Role
// is invalid and is skipped by the ranking pipeline.
type Job struct {
	ID              string    `json:"id"`
	Role            string    `json:"role"`
	CompanyName     string    `json:"companyName"`
	Location        string    `json:"location"`
	JobType         string    `json:"jobType"`
	ExperienceLevel string    `json:"experienceLevel"`
	Skills          SkillList `json:"skills"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Stipend         string    `json:"stipend"`
	ApplyLink       string    `json:"applyLink"`
}

// Valid reports whether the job carries the fields scoring requires.
func (j *Job) Valid() bool {
	return j.ID != "" && j.Role != ""
}

// ScoredJob is a job plus its component and composite scores.
type ScoredJob struct {
	Job                  Job     `json:"job"`
	SkillScore           float64 `json:"skillScore"`
	LocationScore        float64 `json:"locationScore"`
	ExperienceScore      float64 `json:"experienceScore"`
	ContentScore         float64 `json:"contentScore"`
	ActivityScore        float64 `json:"activityScore"`
	MatchScore           float64 `json:"matchScore"`
	HasActivityData      bool    `json:"hasActivityData"`
	RecommendationReason string  `json:"recommendationReason"`
}

// Filters narrows a recommendation result after scoring. Zero values mean
// "no constraint" for that field.
type Filters struct {
	JobType  string `json:"jobType,omitempty"`
	Location string `json:"location,omitempty"`
	Category string `json:"category,omitempty"`
}

// Empty reports whether no filter field is set.
func (f Filters) Empty() bool {
	return f.JobType == "" && f.Location == "" && f.Category == ""
}
