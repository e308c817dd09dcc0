// internal/engine/activity.go
package engine

import (
	"strings"

	"recommendation-workers/internal/models"
)

// SeenJobScore marks a candidate the user already viewed. Callers must
// discard such candidates; the sentinel never reaches ranked output.
const SeenJobScore = -1.0

const (
	companyExactWeight     = 0.25
	companySubstringWeight = 0.15
	jobTypeWeight          = 0.2
	locationWeight         = 0.15
	categoryWeight         = 0.15
	skillTrendWeight       = 0.25
)

// ActivityScore scores a candidate against the learned preference model.
// Each preference category contributes at most once, from its first matching
// entry, and every per-category weight is capped at 1.0 before scaling.
func ActivityScore(job *models.Job, model *models.PreferenceModel, seen map[string]bool) float64 {
	if seen[job.ID] {
		return SeenJobScore
	}
	if model.Empty() {
		return 0.0
	}

	score := 0.0
	company := strings.ToLower(strings.TrimSpace(job.CompanyName))
	for _, pref := range model.Companies {
		if company == "" {
			break
		}
		if company == pref.Value {
			score += companyExactWeight * capWeight(pref.Weight)
			break
		}
		if strings.Contains(company, pref.Value) || strings.Contains(pref.Value, company) {
			score += companySubstringWeight * capWeight(pref.Weight)
			break
		}
	}

	jobType := strings.ToLower(strings.TrimSpace(job.JobType))
	for _, pref := range model.JobTypes {
		if jobType != "" && jobType == pref.Value {
			score += jobTypeWeight * capWeight(pref.Weight)
			break
		}
	}

	location := strings.ToLower(strings.TrimSpace(job.Location))
	for _, pref := range model.Locations {
		if location == "" {
			break
		}
		if strings.Contains(location, pref.Value) || strings.Contains(pref.Value, location) {
			score += locationWeight * capWeight(pref.Weight)
			break
		}
	}

	category := strings.ToLower(strings.TrimSpace(job.Category))
	for _, pref := range model.Categories {
		if category != "" && category == pref.Value {
			score += categoryWeight * capWeight(pref.Weight)
			break
		}
	}

	score += skillTrendWeight * trendingSkillOverlap(job, model.Skills)

	if score > 1.0 {
		return 1.0
	}
	return score
}

// trendingSkillOverlap sums the trending weights of the candidate's skills
// that appear in the preference model, normalized by the candidate's own
// skill count and capped at 1.0.
func trendingSkillOverlap(job *models.Job, trending []models.PreferenceEntry) float64 {
	jobSkills := NormalizeSkills(job.Skills)
	if len(jobSkills) == 0 || len(trending) == 0 {
		return 0.0
	}

	weights := make(map[string]float64, len(trending))
	for _, t := range trending {
		weights[t.Value] = t.Weight
	}

	total := 0.0
	for _, s := range jobSkills {
		total += weights[s]
	}
	overlap := total / float64(len(jobSkills))
	if overlap > 1.0 {
		return 1.0
	}
	return overlap
}

func capWeight(w float64) float64 {
	if w > 1.0 {
		return 1.0
	}
	return w
}
