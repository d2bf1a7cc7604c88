package catalog

import (
	"github.com/atmdb/atmdb/pkg/dex"
)

// Normalizer flattens codex entries into records. A zero Normalizer applies
// no denylist.
type Normalizer struct {
	Cleaner *Cleaner
	Rarity  RarityResolver
}

func NewNormalizer() *Normalizer {
	return &Normalizer{Cleaner: defaultCleaner}
}

var defaultNormalizer = NewNormalizer()

// Normalize flattens one entry with the default normalizer.
func Normalize(e dex.SourceEntry) []Record {
	return defaultNormalizer.Normalize(e)
}

// NormalizeAll flattens every entry, in document order.
func (n *Normalizer) NormalizeAll(entries []dex.SourceEntry) []Record {
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, n.Normalize(e)...)
	}
	return out
}

// Normalize returns the species record followed by one record per form.
func (n *Normalizer) Normalize(e dex.SourceEntry) []Record {
	all := displaySpawns(e.Spawns)

	base := Record{
		Number:       e.NationalPokedexNumber,
		Name:         e.Name,
		Types:        types(e.PrimaryType, e.SecondaryType),
		Implemented:  e.Implemented,
		Aspects:      e.Aspects,
		Stats:        e.BaseStats,
		Abilities:    e.Abilities,
		CatchRate:    e.CatchRate,
		PreEvolution: CapitalizeWords(e.PreEvolution),
		Evolutions:   n.evolutionNames(e.Evolutions),
		Labels:       e.Labels,
		MaleRatio:    e.MaleRatio,
		Spawns:       MatchSpawns(all, e.Name, true),
		Source:       e.Source,
	}
	// The declared rarity is ignored; the spawn table decides.
	base.Rarity = n.Rarity.Resolve(base.Spawns)

	out := make([]Record, 0, 1+len(e.Forms))
	out = append(out, base)
	for _, f := range e.Forms {
		out = append(out, n.form(base, f, all))
	}
	return out
}

func (n *Normalizer) form(base Record, f dex.Form, all []Spawn) Record {
	labels := base.Labels
	if f.Labels != nil {
		labels = f.Labels
	}
	// A declared ratio wins even when it is 0 (all female); only an absent
	// ratio falls back to the species'.
	maleRatio := base.MaleRatio
	if f.MaleRatio != nil {
		maleRatio = f.MaleRatio
	}
	aspect := ""
	if len(f.Aspects) > 0 {
		aspect = f.Aspects[0]
	}

	return Record{
		Number:       base.Number,
		Name:         base.Name,
		Form:         f.Name,
		Aspects:      f.Aspects,
		Types:        types(f.PrimaryType, f.SecondaryType),
		Implemented:  base.Implemented,
		Stats:        f.BaseStats,
		Abilities:    f.Abilities,
		CatchRate:    f.CatchRate,
		PreEvolution: CapitalizeWords(f.PreEvolution),
		Evolutions:   n.evolutionNames(f.Evolutions),
		Labels:       labels,
		MaleRatio:    maleRatio,
		Spawns:       MatchSpawns(all, aspect, false),
		Rarity:       base.Rarity,
		Source:       base.Source,
	}
}

func (n *Normalizer) evolutionNames(evs []dex.Evolution) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, CapitalizeWords(n.Cleaner.Clean(ev.Result)))
	}
	return out
}

func displaySpawns(t *dex.SpawnTable) []Spawn {
	if t == nil {
		return []Spawn{}
	}
	out := make([]Spawn, 0, len(t.Spawns))
	for _, s := range t.Spawns {
		out = append(out, Spawn{
			Name:           s.Pokemon,
			Level:          s.Level,
			Weight:         s.Weight,
			Bucket:         s.Bucket,
			Context:        s.Context,
			Conditions:     PropertiesString(s.Condition),
			Anticonditions: PropertiesString(s.Anticondition),
			Biomes:         s.Biomes(),
		})
	}
	return out
}

func types(primary, secondary string) []string {
	out := make([]string, 0, 2)
	for _, t := range []string{primary, secondary} {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
