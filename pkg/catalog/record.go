// Package catalog turns codex entries into flat display records and answers
// the browser's search and sort queries over them.
package catalog

import (
	"fmt"

	"github.com/atmdb/atmdb/pkg/dex"
)

// Record is one row of the browser: a species or one of its forms.
// Form records share Number and Name with their species.
type Record struct {
	Number       int        `json:"nationalPokedexNumber" yaml:"nationalPokedexNumber"`
	Name         string     `json:"name" yaml:"name"`
	Types        []string   `json:"type" yaml:"type"`
	Implemented  bool       `json:"implemented" yaml:"implemented"`
	Form         string     `json:"form,omitempty" yaml:"form,omitempty"`
	Aspects      []string   `json:"aspects,omitempty" yaml:"aspects,omitempty"`
	Stats        []dex.Stat `json:"baseStats" yaml:"baseStats"`
	Abilities    []string   `json:"abilities" yaml:"abilities"`
	CatchRate    *int       `json:"catchRate,omitempty" yaml:"catchRate,omitempty"`
	PreEvolution string     `json:"preEvolution" yaml:"preEvolution"`
	Evolutions   []string   `json:"evolutions" yaml:"evolutions"`
	Labels       []string   `json:"labels,omitempty" yaml:"labels,omitempty"`
	MaleRatio    *float64   `json:"maleRatio,omitempty" yaml:"maleRatio,omitempty"`
	Rarity       Rarity     `json:"rarity" yaml:"rarity"`
	Spawns       []Spawn    `json:"spawns" yaml:"spawns"`
	Source       string     `json:"source,omitempty" yaml:"source,omitempty"`
}

// Key identifies a record within the catalog.
func (r Record) Key() string {
	form := r.Form
	if form == "" {
		form = "base"
	}
	return fmt.Sprintf("%d-%s", r.Number, form)
}

// Spawn is a display-ready spawn rule.
type Spawn struct {
	Name           string    `json:"name" yaml:"name"`
	Level          dex.Level `json:"level" yaml:"level"`
	Weight         float64   `json:"weight" yaml:"weight"`
	Bucket         string    `json:"bucket" yaml:"bucket"`
	Context        string    `json:"context" yaml:"context"`
	Conditions     string    `json:"conditions" yaml:"conditions"`
	Anticonditions string    `json:"anticonditions" yaml:"anticonditions"`
	Biomes         []string  `json:"biomes" yaml:"biomes"`
}

// Rarity returns the parsed bucket and whether the bucket is a known one.
func (s Spawn) Rarity() (Rarity, bool) {
	return ParseRarity(s.Bucket)
}
