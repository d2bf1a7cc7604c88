package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the column a query is ordered by.
type SortKey int

const (
	SortNumber SortKey = iota
	SortName
	SortImplemented
	SortForm
	SortCatchRate
	SortMaleRatio
	SortRarity
	SortSource
	SortSpawns
)

// sortValue is a comparable column value. Values with ok == false are
// absent and compare equal to anything.
type sortValue struct {
	num   float64
	str   string
	isStr bool
	ok    bool
}

func numeric(f float64) sortValue { return sortValue{num: f, ok: true} }

func text(s string) sortValue { return sortValue{str: s, isStr: true, ok: s != ""} }

func absent() sortValue { return sortValue{} }

type sortField struct {
	name    string
	aliases []string
	value   func(Record) sortValue
}

var sortFields = [...]sortField{
	SortNumber: {"number", []string{"nationalPokedexNumber", "#"}, func(r Record) sortValue {
		return numeric(float64(r.Number))
	}},
	SortName: {"name", nil, func(r Record) sortValue {
		return text(r.Name)
	}},
	SortImplemented: {"implemented", []string{"ingame"}, func(r Record) sortValue {
		if r.Implemented {
			return numeric(1)
		}
		return numeric(0)
	}},
	SortForm: {"form", nil, func(r Record) sortValue {
		return text(r.Form)
	}},
	SortCatchRate: {"catch-rate", []string{"catchRate"}, func(r Record) sortValue {
		if r.CatchRate == nil {
			return absent()
		}
		return numeric(float64(*r.CatchRate))
	}},
	SortMaleRatio: {"male-ratio", []string{"maleRatio"}, func(r Record) sortValue {
		if r.MaleRatio == nil {
			return absent()
		}
		return numeric(*r.MaleRatio)
	}},
	SortRarity: {"rarity", nil, func(r Record) sortValue {
		return numeric(float64(r.Rarity.Rank()))
	}},
	SortSource: {"source", nil, func(r Record) sortValue {
		return text(r.Source)
	}},
	SortSpawns: {"spawns", nil, func(r Record) sortValue {
		return numeric(float64(len(r.Spawns)))
	}},
}

// SortKeys lists every sortable column.
func SortKeys() []SortKey {
	keys := make([]SortKey, len(sortFields))
	for i := range sortFields {
		keys[i] = SortKey(i)
	}
	return keys
}

func (k SortKey) valid() bool { return k >= 0 && int(k) < len(sortFields) }

func (k SortKey) String() string {
	if !k.valid() {
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
	return sortFields[k].name
}

// ParseSortKey accepts a column name or the codex field name, ignoring case.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	for i, f := range sortFields {
		if strings.EqualFold(s, f.name) {
			return SortKey(i), nil
		}
		for _, alias := range f.aliases {
			if strings.EqualFold(s, alias) {
				return SortKey(i), nil
			}
		}
	}
	return SortNumber, fmt.Errorf("unknown sort key %q", s)
}

func compare(a, b sortValue) int {
	if !a.ok || !b.ok {
		return 0
	}
	if a.isStr || b.isStr {
		return strings.Compare(a.str, b.str)
	}
	switch {
	case a.num < b.num:
		return -1
	case a.num > b.num:
		return 1
	}
	return 0
}

// Matches reports whether the lower-cased needle appears in the record's
// name, pre-evolution, evolutions or labels.
func (r Record) Matches(needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.PreEvolution), needle) {
		return true
	}
	for _, ev := range r.Evolutions {
		if strings.Contains(strings.ToLower(ev), needle) {
			return true
		}
	}
	for _, l := range r.Labels {
		if strings.Contains(strings.ToLower(l), needle) {
			return true
		}
	}
	return false
}

// Query filters records by text and orders them by key. The input slice is
// left untouched; ties and absent values keep their input order.
func Query(records []Record, text string, key SortKey, ascending bool) []Record {
	needle := strings.ToLower(text)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Matches(needle) {
			out = append(out, r)
		}
	}

	if !key.valid() {
		key = SortNumber
	}
	value := sortFields[key].value
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(value(out[i]), value(out[j]))
		if !ascending {
			c = -c
		}
		return c < 0
	})
	return out
}

// View is the browser's query state.
type View struct {
	Text      string
	Sort      SortKey
	Ascending bool
}

func DefaultView() View {
	return View{Sort: SortNumber, Ascending: true}
}

// ToggleSort flips the direction when key is already active, otherwise it
// switches to key in ascending order.
func (v View) ToggleSort(key SortKey) View {
	if v.Sort == key {
		v.Ascending = !v.Ascending
		return v
	}
	v.Sort = key
	v.Ascending = true
	return v
}

func (v View) WithText(text string) View {
	v.Text = text
	return v
}

// Order is "asc" or "desc".
func (v View) Order() string {
	if v.Ascending {
		return "asc"
	}
	return "desc"
}

func (v View) Apply(records []Record) []Record {
	return Query(records, v.Text, v.Sort, v.Ascending)
}
