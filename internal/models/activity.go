// internal/models/activity.go
package models

// PreferenceEntry is one ranked value inside a preference list with its
// accumulated recency weight.
type PreferenceEntry struct {
	Value  string  `json:"value"`
	Weight float64 `json:"weight"`
}

// PreferenceModel aggregates recency-weighted preferences derived from the
// recent-activity job list. It is ephemeral: rebuilt per request, never
// shared across requests.
type PreferenceModel struct {
	Companies  []PreferenceEntry `json:"companies"`
	JobTypes   []PreferenceEntry `json:"jobTypes"`
	Locations  []PreferenceEntry `json:"locations"`
	Categories []PreferenceEntry `json:"categories"`
	Skills     []PreferenceEntry `json:"skills"`
}

// Empty reports whether the model holds no signal at all.
func (m *PreferenceModel) Empty() bool {
	return len(m.Companies) == 0 && len(m.JobTypes) == 0 &&
		len(m.Locations) == 0 && len(m.Categories) == 0 && len(m.Skills) == 0
}

// PreferenceSummary is the insights payload derived from a user's activity.
type PreferenceSummary struct {
	HasData         bool     `json:"hasData"`
	TotalActivities int      `json:"totalActivities"`
	Strength        string   `json:"strength"`
	TopCompanies    []string `json:"topCompanies"`
	TopJobTypes     []string `json:"topJobTypes"`
	TopLocations    []string `json:"topLocations"`
	TopSkills       []string `json:"topSkills"`
	RecentCompanies []string `json:"recentCompanies"`
	ActivityTrend   string   `json:"activityTrend"`
}
