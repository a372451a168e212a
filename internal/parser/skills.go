package parser

import (
	"sort"
	"strings"

	"resume-parser/internal/nlp"
)

var skillLabels = map[string]struct{}{
	nlp.LabelProduct:  {},
	nlp.LabelLanguage: {},
	nlp.LabelOrg:      {},
}

// Educational institutions are often labelled ORG; keep them out of skills.
var institutionMarkers = []string{"school", "college", "academy"}

// ExtractSkills filters entities down to a sorted, de-duplicated skill set.
func ExtractSkills(entities []nlp.Entity) []string {
	seen := make(map[string]struct{})
	for _, ent := range entities {
		if _, ok := skillLabels[ent.Label]; !ok {
			continue
		}
		text := strings.TrimSpace(ent.Text)
		if n := len(strings.Fields(text)); n < 1 || n > 3 {
			continue
		}
		if isInstitution(text) {
			continue
		}
		seen[text] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func isInstitution(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range institutionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
