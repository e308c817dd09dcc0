// internal/engine/attribute.go
package engine

import (
	"math"
	"strings"
)

// experienceLevels maps free-text experience descriptions to an ordinal
// level. Lookup is first-match-wins, so the order here matters.
var experienceLevels = []struct {
	keyword string
	level   int
}{
	{"entry", 1},
	{"junior", 1},
	{"fresher", 1},
	{"mid", 2},
	{"intermediate", 2},
	{"senior", 3},
	{"lead", 4},
	{"principal", 5},
	{"director", 6},
}

// SkillSimilarity is the Jaccard index over the two normalized skill sets.
// Either set being empty scores 0.0: missing skills are not a neutral signal.
func SkillSimilarity(userSkills, jobSkills []string) float64 {
	a := skillSet(userSkills)
	b := skillSet(jobSkills)
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for s := range a {
		if b[s] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// LocationMatch scores how well a job's location fits the user's.
// The check order matters: an exact match wins before the remote shortcut.
func LocationMatch(userLocation, jobLocation string) float64 {
	user := strings.ToLower(strings.TrimSpace(userLocation))
	job := strings.ToLower(strings.TrimSpace(jobLocation))

	if user == "" || job == "" {
		return 0.5
	}
	if user == job {
		return 1.0
	}
	if strings.Contains(job, "remote") || strings.Contains(job, "anywhere") {
		return 0.9
	}
	for _, part := range strings.Fields(user) {
		if strings.Contains(job, part) {
			return 0.7
		}
	}
	return 0.3
}

// ExperienceMatch scores the distance between two experience levels on the
// ordinal scale. Each level of difference costs 0.2; a gap of five or more
// clamps to zero.
func ExperienceMatch(userExperience, jobExperience string) float64 {
	diff := experienceLevel(userExperience) - experienceLevel(jobExperience)
	return math.Max(0, 1.0-0.2*math.Abs(float64(diff)))
}

func experienceLevel(text string) int {
	lowered := strings.ToLower(text)
	for _, e := range experienceLevels {
		if strings.Contains(lowered, e.keyword) {
			return e.level
		}
	}
	return 1
}
