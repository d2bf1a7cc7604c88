// Package dex decodes the codex document: the merged list of species entries,
// their form variants and spawn tables, as written by the codex builder.
package dex

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// SourceEntry is one species as it appears in the codex document.
type SourceEntry struct {
	NationalPokedexNumber int
	Name                  string
	PrimaryType           string
	SecondaryType         string
	Implemented           bool
	Aspects               []string
	BaseStats             []Stat
	Abilities             []string
	CatchRate             *int
	PreEvolution          string
	Evolutions            []Evolution
	Labels                []string
	MaleRatio             *float64
	Spawns                *SpawnTable
	Source                string
	Rarity                string // declared, informational only
	Forms                 []Form
}

// Form is an alternate version of a species. Identity (number, name) comes
// from the parent entry.
type Form struct {
	Name          string
	Aspects       []string
	PrimaryType   string
	SecondaryType string
	BaseStats     []Stat
	Abilities     []string
	CatchRate     *int
	PreEvolution  string
	Evolutions    []Evolution
	Labels        []string
	MaleRatio     *float64
}

type Stat struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type Evolution struct {
	ID     string
	Result string
}

// SpawnTable is the spawn file attached to an entry.
type SpawnTable struct {
	Source string
	Spawns []SpawnDefinition
}

type SpawnDefinition struct {
	Pokemon       string
	Level         Level
	Weight        float64
	Bucket        string
	Context       string
	Condition     Properties
	Anticondition Properties
}

// Biomes returns the reserved "biomes" list of the spawn condition.
func (s SpawnDefinition) Biomes() []string {
	v, ok := s.Condition.Get("biomes")
	if !ok {
		return []string{}
	}
	out := stringList(v)
	if out == nil {
		return []string{}
	}
	return out
}

// Level is a spawn level or level range. The zero value means no level.
type Level struct {
	Min int
	Max int
}

// ParseLevel accepts a number ("level": 5) or a range string ("5-32").
// Anything else yields the zero Level.
func ParseLevel(r gjson.Result) Level {
	switch r.Type {
	case gjson.Number:
		n := int(r.Int())
		return Level{Min: n, Max: n}
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		lo, hi, found := strings.Cut(s, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return Level{}
		}
		if !found {
			return Level{Min: from, Max: from}
		}
		to, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil || to < from {
			return Level{Min: from, Max: from}
		}
		return Level{Min: from, Max: to}
	}
	return Level{}
}

func (l Level) String() string {
	if l.Min == l.Max {
		return strconv.Itoa(l.Min)
	}
	return strconv.Itoa(l.Min) + "-" + strconv.Itoa(l.Max)
}

// MarshalJSON writes a single level as a number and a range as "min-max".
func (l Level) MarshalJSON() ([]byte, error) {
	if l.Min == l.Max {
		return []byte(strconv.Itoa(l.Min)), nil
	}
	return []byte(strconv.Quote(l.String())), nil
}

func (l Level) MarshalYAML() (interface{}, error) {
	if l.Min == l.Max {
		return l.Min, nil
	}
	return l.String(), nil
}

// Property is one key/value pair of a JSON object, kept in document order.
type Property struct {
	Key   string
	Value gjson.Result
}

// Properties is an ordered JSON object. A nil Properties means the object was
// absent from the document.
type Properties []Property

func (p Properties) Get(key string) (gjson.Result, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return gjson.Result{}, false
}
