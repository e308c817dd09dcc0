// internal/engine/preferences.go
package engine

import (
	"sort"
	"strings"

	"recommendation-workers/internal/models"
)

// recencyDecay assigns the weight for each activity position,
// most-recent-first. Positions past the tenth fall back to the floor.
var recencyDecay = []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}

const (
	topCompanies  = 5
	topSkills     = 5
	topJobTypes   = 3
	topLocations  = 3
	topCategories = 3
)

// BuildPreferenceModel converts the ordered recent-activity job list into
// recency-weighted ranked preference lists. An empty activity list yields an
// empty model, which downstream scoring treats as "no activity signal".
func BuildPreferenceModel(recent []models.Job) *models.PreferenceModel {
	companies := make(map[string]float64)
	jobTypes := make(map[string]float64)
	locations := make(map[string]float64)
	categories := make(map[string]float64)
	skills := make(map[string]float64)

	for i := range recent {
		w := decayWeight(i)
		job := &recent[i]
		accumulate(companies, job.CompanyName, w)
		accumulate(jobTypes, job.JobType, w)
		accumulate(locations, job.Location, w)
		accumulate(categories, job.Category, w)
		for _, skill := range NormalizeSkills(job.Skills) {
			skills[skill] += w
		}
	}

	return &models.PreferenceModel{
		Companies:  rankPreferences(companies, topCompanies),
		JobTypes:   rankPreferences(jobTypes, topJobTypes),
		Locations:  rankPreferences(locations, topLocations),
		Categories: rankPreferences(categories, topCategories),
		Skills:     rankPreferences(skills, topSkills),
	}
}

func decayWeight(position int) float64 {
	if position < len(recencyDecay) {
		return recencyDecay[position]
	}
	return recencyDecay[len(recencyDecay)-1]
}

func accumulate(totals map[string]float64, value string, weight float64) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return
	}
	totals[value] += weight
}

// rankPreferences sorts accumulated weights descending and truncates to the
// top n. Ties break alphabetically so ranking is deterministic.
func rankPreferences(totals map[string]float64, n int) []models.PreferenceEntry {
	entries := make([]models.PreferenceEntry, 0, len(totals))
	for value, weight := range totals {
		entries = append(entries, models.PreferenceEntry{Value: value, Weight: weight})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return entries[i].Value < entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
