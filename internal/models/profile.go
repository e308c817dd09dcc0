// internal/models/profile.go
package models

import (
	"encoding/json"
	"strings"
)

// SkillList tolerates both JSON shapes the profile store produces:
// a comma-separated string or an array of strings. The shape is resolved
// here once so nothing downstream has to branch on it.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*s = asList
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if strings.TrimSpace(asString) == "" {
			*s = nil
			return nil
		}
		*s = strings.Split(asString, ",")
		return nil
	}

	// Anything else (number, object, null) degrades to empty, not an error.
	*s = nil
	return nil
}

type UserProfile struct {
	UserID          string    `json:"userId"`
	Skills          SkillList `json:"skills"`
	Location        string    `json:"location"`
	ExperienceLevel string    `json:"experienceLevel"`
	Education       string    `json:"education"`
}
