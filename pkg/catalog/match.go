package catalog

import "strings"

// MatchSpawns picks the spawns that belong to target. Strict matching compares
// the whole subject name case-insensitively (a species' own spawns); loose
// matching looks for target inside the subject name, case-sensitively (a
// form's aspect). An empty target matches nothing.
func MatchSpawns(spawns []Spawn, target string, strict bool) []Spawn {
	out := []Spawn{}
	if target == "" {
		return out
	}
	for _, s := range spawns {
		if strict {
			if strings.EqualFold(s.Name, target) {
				out = append(out, s)
			}
			continue
		}
		if strings.Contains(s.Name, target) {
			out = append(out, s)
		}
	}
	return out
}
