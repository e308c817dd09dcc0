// internal/engine/insights.go
package engine

import (
	"strings"

	"recommendation-workers/internal/models"
)

const (
	strengthLow      = "low"
	strengthModerate = "moderate"
	strengthHigh     = "high"

	trendIncreasing = "increasing"
	trendModerate   = "moderate"

	recentCompanyWindow = 5
	highActivityFloor   = 5
)

// BuildInsights summarizes a user's recent activity into the preference
// summary exposed by the insights operation. An empty activity list yields
// a summary with HasData false.
func BuildInsights(recent []models.Job) models.PreferenceSummary {
	if len(recent) == 0 {
		return models.PreferenceSummary{
			Strength:      strengthLow,
			ActivityTrend: trendModerate,
		}
	}

	prefs := BuildPreferenceModel(recent)

	strength := strengthModerate
	trend := trendModerate
	if len(recent) >= highActivityFloor {
		strength = strengthHigh
		trend = trendIncreasing
	}

	return models.PreferenceSummary{
		HasData:         true,
		TotalActivities: len(recent),
		Strength:        strength,
		TopCompanies:    preferenceValues(prefs.Companies),
		TopJobTypes:     preferenceValues(prefs.JobTypes),
		TopLocations:    preferenceValues(prefs.Locations),
		TopSkills:       preferenceValues(prefs.Skills),
		RecentCompanies: recentCompanies(recent),
		ActivityTrend:   trend,
	}
}

func preferenceValues(entries []models.PreferenceEntry) []string {
	values := make([]string, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.Value)
	}
	return values
}

// recentCompanies lists the distinct companies of the most recent
// activities, newest first.
func recentCompanies(recent []models.Job) []string {
	window := recent
	if len(window) > recentCompanyWindow {
		window = window[:recentCompanyWindow]
	}
	seen := make(map[string]bool, len(window))
	companies := make([]string, 0, len(window))
	for i := range window {
		name := strings.TrimSpace(window[i].CompanyName)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		companies = append(companies, name)
	}
	return companies
}
