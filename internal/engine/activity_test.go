package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recommendation-workers/internal/models"
)

func TestActivityScore_SeenJobSentinel(t *testing.T) {
	job := activityJob("j1", "Acme", "full-time", "Pune", "Eng", "python")
	model := BuildPreferenceModel([]models.Job{job})
	seen := map[string]bool{"j1": true}

	assert.Equal(t, SeenJobScore, ActivityScore(&job, model, seen))
}

func TestActivityScore_EmptyModel(t *testing.T) {
	job := activityJob("j1", "Acme", "full-time", "Pune", "Eng", "python")
	assert.Equal(t, 0.0, ActivityScore(&job, BuildPreferenceModel(nil), nil))
}

func TestActivityScore_CompanyExactBeatsSubstring(t *testing.T) {
	model := BuildPreferenceModel([]models.Job{
		activityJob("j1", "Acme", "", "", ""),
	})

	exact := activityJob("c1", "Acme", "", "", "")
	substring := activityJob("c2", "Acme Labs", "", "", "")

	exactScore := ActivityScore(&exact, model, nil)
	substringScore := ActivityScore(&substring, model, nil)

	assert.InDelta(t, 0.25, exactScore, 1e-9)
	assert.InDelta(t, 0.15, substringScore, 1e-9)
}

func TestActivityScore_ContributionsAccumulate(t *testing.T) {
	viewed := activityJob("j1", "Acme", "full-time", "Bangalore", "Engineering", "python", "sql")
	model := BuildPreferenceModel([]models.Job{viewed})

	candidate := activityJob("c1", "Acme", "full-time", "Bangalore", "Engineering", "python", "sql")
	score := ActivityScore(&candidate, model, nil)

	// Every category matches at full weight 1.0: company 0.25, job type 0.2,
	// location 0.15, category 0.15, skills 0.25.
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestActivityScore_CappedAtOne(t *testing.T) {
	// Repeated views push accumulated weights past 1.0; contributions are
	// capped per category and the total is capped as well.
	recent := make([]models.Job, 0, 10)
	for i := 0; i < 10; i++ {
		recent = append(recent, activityJob("j"+string(rune('0'+i)), "Acme", "full-time", "Pune", "Eng", "python"))
	}
	model := BuildPreferenceModel(recent)

	candidate := activityJob("c1", "Acme", "full-time", "Pune", "Eng", "python")
	score := ActivityScore(&candidate, model, nil)
	assert.LessOrEqual(t, score, 1.0)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestActivityScore_SkillOverlapNormalized(t *testing.T) {
	viewed := activityJob("j1", "", "", "", "", "python")
	model := BuildPreferenceModel([]models.Job{viewed})

	// One of four skills is trending with weight 1.0: overlap 0.25, scaled
	// by the 0.25 skill weight.
	candidate := activityJob("c1", "", "", "", "", "python", "go", "rust", "java")
	assert.InDelta(t, 0.25*0.25, ActivityScore(&candidate, model, nil), 1e-9)
}

func TestActivityScore_NoDoubleCountingWithinCategory(t *testing.T) {
	model := &models.PreferenceModel{
		Companies: []models.PreferenceEntry{
			{Value: "acme corp", Weight: 1.0},
			{Value: "acme", Weight: 0.9},
		},
	}

	// The candidate matches both entries as substrings; only the first
	// matching entry contributes.
	candidate := activityJob("c1", "Acme Corp", "", "", "")
	assert.InDelta(t, 0.25, ActivityScore(&candidate, model, nil), 1e-9)
}
