package catalog

import (
	"context"
	"sort"

	"github.com/atmdb/atmdb/internal/utils"
	"github.com/atmdb/atmdb/pkg/dex"
	"github.com/hashicorp/go-retryablehttp"
)

// Catalog is the session's record list. It is built once and only read
// afterwards, so it is safe to share between goroutines.
type Catalog struct {
	records []Record
	err     error
}

// New wraps records. loadErr is the error that left the catalog empty, if any.
func New(records []Record, loadErr error) *Catalog {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Catalog{records: cp, err: loadErr}
}

// Load reads and normalizes the codex at location. A failed load is logged
// and yields an empty catalog carrying the error.
func Load(ctx context.Context, location string, client *retryablehttp.Client, n *Normalizer) *Catalog {
	if n == nil {
		n = defaultNormalizer
	}
	entries, err := dex.Load(ctx, location, client)
	if err != nil {
		utils.Log.Errorf("Error loading codex: %v", err)
		return New(nil, err)
	}
	records := n.NormalizeAll(entries)
	utils.Log.Debugf("Loaded %d entries (%d records) from %s", len(entries), len(records), location)
	return New(records, nil)
}

func (c *Catalog) Err() error { return c.err }

func (c *Catalog) Len() int { return len(c.records) }

// Records returns a copy of every record in document order.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Find looks a record up by species number and form name ("" for the base
// species).
func (c *Catalog) Find(number int, form string) (Record, bool) {
	for _, r := range c.records {
		if r.Number == number && r.Form == form {
			return r, true
		}
	}
	return Record{}, false
}

func (c *Catalog) Query(v View) []Record {
	return v.Apply(c.records)
}

func (c *Catalog) Suggest(text string, limit int) []string {
	return Suggest(c.records, text, limit)
}

// Count is one row of a breakdown.
type Count struct {
	Label string
	Count int
}

type Stats struct {
	Records     int
	Species     int
	Forms       int
	Implemented int
	BySource    []Count
	ByRarity    []Count
}

// Stats summarizes the catalog. Sources are ordered by name, rarities by rank.
func (c *Catalog) Stats() Stats {
	s := Stats{Records: len(c.records)}
	bySource := make(map[string]int)
	byRarity := make(map[Rarity]int)
	for _, r := range c.records {
		if r.Form == "" {
			s.Species++
		} else {
			s.Forms++
		}
		if r.Implemented {
			s.Implemented++
		}
		source := r.Source
		if source == "" {
			source = "unknown"
		}
		bySource[source]++
		byRarity[r.Rarity]++
	}

	for label, n := range bySource {
		s.BySource = append(s.BySource, Count{Label: label, Count: n})
	}
	sort.Slice(s.BySource, func(i, j int) bool { return s.BySource[i].Label < s.BySource[j].Label })

	for _, r := range []Rarity{Common, Uncommon, Rare, UltraRare, RarityUnknown} {
		if n := byRarity[r]; n > 0 {
			s.ByRarity = append(s.ByRarity, Count{Label: r.String(), Count: n})
		}
	}
	return s
}
