// internal/engine/normalize.go
package engine

import "strings"

// NormalizeSkills canonicalizes a skill list into lowercase, trimmed,
// de-duplicated tokens. Empty entries are dropped. A nil or empty input
// yields an empty slice, never an error.
func NormalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		tok := strings.ToLower(strings.TrimSpace(s))
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

func skillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range NormalizeSkills(skills) {
		set[s] = true
	}
	return set
}
