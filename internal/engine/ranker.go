// internal/engine/ranker.go
package engine

import (
	"sort"
	"strings"

	"recommendation-workers/internal/models"
)

// Weights are the composite-score coefficients for one scoring mode.
type Weights struct {
	Skill      float64
	Content    float64
	Location   float64
	Experience float64
	Activity   float64
}

// warmStartWeights apply when the user has recorded activity: the learned
// preference signal dominates.
var warmStartWeights = Weights{
	Skill:      0.20,
	Content:    0.20,
	Location:   0.10,
	Experience: 0.10,
	Activity:   0.40,
}

// coldStartWeights apply when no activity exists; scoring leans on the
// profile attributes and text content alone.
var coldStartWeights = Weights{
	Skill:      0.35,
	Content:    0.35,
	Location:   0.20,
	Experience: 0.10,
}

const (
	reasonRecentInterests = "Based on your recent interests"
	reasonSkillMatch      = "Strong skill match"
	reasonSimilarProfile  = "Similar to your profile"
	reasonFallback        = "Recommended for you"
)

// Rank scores the candidate pool for the user and returns the top `limit`
// jobs, best first. Candidates missing an ID or role are skipped; candidates
// the user already viewed are discarded. A nil profile yields an empty
// result. Everything here is pure computation over the inputs: no state
// survives the call, so concurrent rankings need no coordination.
func Rank(profile *models.UserProfile, recent []models.Job, pool []models.Job, limit int) []models.ScoredJob {
	if profile == nil || len(pool) == 0 {
		return []models.ScoredJob{}
	}

	candidates := make([]models.Job, 0, len(pool))
	for _, job := range pool {
		if job.Valid() {
			candidates = append(candidates, job)
		}
	}
	if len(candidates) == 0 {
		return []models.ScoredJob{}
	}

	seen := make(map[string]bool, len(recent))
	for i := range recent {
		seen[recent[i].ID] = true
	}
	prefs := BuildPreferenceModel(recent)
	hasActivity := len(recent) > 0

	weights := coldStartWeights
	if hasActivity {
		weights = warmStartWeights
	}

	userSkills := NormalizeSkills(profile.Skills)
	contentScores := ContentSimilarities(profile, candidates)

	scored := make([]models.ScoredJob, 0, len(candidates))
	for i := range candidates {
		job := candidates[i]

		activityScore := ActivityScore(&job, prefs, seen)
		if activityScore < 0 {
			continue
		}

		sj := models.ScoredJob{
			Job:             job,
			SkillScore:      SkillSimilarity(userSkills, job.Skills),
			LocationScore:   LocationMatch(profile.Location, job.Location),
			ExperienceScore: ExperienceMatch(profile.ExperienceLevel, job.ExperienceLevel),
			ContentScore:    contentScores[i].OrZero(),
			ActivityScore:   activityScore,
			HasActivityData: hasActivity,
		}
		sj.MatchScore = weights.Skill*sj.SkillScore +
			weights.Content*sj.ContentScore +
			weights.Location*sj.LocationScore +
			weights.Experience*sj.ExperienceScore +
			weights.Activity*sj.ActivityScore
		sj.RecommendationReason = reasonFor(&sj)
		scored = append(scored, sj)
	}

	// Stable keeps input order on ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func reasonFor(sj *models.ScoredJob) string {
	switch {
	case sj.ActivityScore > 0.3:
		return reasonRecentInterests
	case sj.SkillScore > 0.4:
		return reasonSkillMatch
	case sj.ContentScore > 0.3:
		return reasonSimilarProfile
	default:
		return reasonFallback
	}
}

// ApplyFilters keeps the scored jobs matching every supplied filter, in
// ranked order, up to `limit`. Callers over-fetch before filtering; highly
// selective filters may still under-fill and that is accepted.
func ApplyFilters(scored []models.ScoredJob, filters models.Filters, limit int) []models.ScoredJob {
	out := make([]models.ScoredJob, 0, limit)
	wantLocation := strings.ToLower(strings.TrimSpace(filters.Location))
	for _, sj := range scored {
		if filters.JobType != "" && sj.Job.JobType != filters.JobType {
			continue
		}
		if wantLocation != "" && !strings.Contains(strings.ToLower(sj.Job.Location), wantLocation) {
			continue
		}
		if filters.Category != "" && sj.Job.Category != filters.Category {
			continue
		}
		out = append(out, sj)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
