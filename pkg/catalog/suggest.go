package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to limit names close to text, for empty result pages.
// Names come from species, pre-evolutions and evolutions.
func Suggest(records []Record, text string, limit int) []string {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" || limit <= 0 {
		return nil
	}

	type candidate struct {
		name string
		dist int
	}

	seen := make(map[string]bool)
	var cands []candidate
	consider := func(name string) {
		key := strings.ToLower(name)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		dist := levenshtein.ComputeDistance(needle, key)
		if dist > levenshteinLimit(len(key)) {
			return
		}
		cands = append(cands, candidate{name: name, dist: dist})
	}

	for _, r := range records {
		consider(r.Name)
		consider(r.PreEvolution)
		for _, ev := range r.Evolutions {
			consider(ev)
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})

	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.name)
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
