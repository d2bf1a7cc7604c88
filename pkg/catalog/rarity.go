package catalog

import (
	"fmt"
	"strings"
)

// Rarity is a spawn bucket. The numeric value is the bucket's rank: lower
// means easier to find.
type Rarity int

const (
	RarityUnknown Rarity = iota
	Common
	Uncommon
	Rare
	UltraRare
)

var rarityNames = map[Rarity]string{
	RarityUnknown: "unknown",
	Common:        "common",
	Uncommon:      "uncommon",
	Rare:          "rare",
	UltraRare:     "ultra-rare",
}

var rarityByBucket = map[string]Rarity{
	"common":     Common,
	"uncommon":   Uncommon,
	"rare":       Rare,
	"ultra-rare": UltraRare,
}

// ParseRarity maps a spawn bucket id to its Rarity. ok is false for buckets
// outside the ranking table.
func ParseRarity(bucket string) (r Rarity, ok bool) {
	r, ok = rarityByBucket[bucket]
	return r, ok
}

func (r Rarity) Rank() int { return int(r) }

func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return rarityNames[RarityUnknown]
}

func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// EmptyPolicy decides the rarity of a record with no matched spawns.
type EmptyPolicy int

const (
	// EmptyAsUltraRare keeps the fold's starting value: no known spawn reads
	// as the rarest tier.
	EmptyAsUltraRare EmptyPolicy = iota
	EmptyAsUnknown
)

func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ultra-rare":
		return EmptyAsUltraRare, nil
	case "unknown":
		return EmptyAsUnknown, nil
	}
	return EmptyAsUltraRare, fmt.Errorf("unknown empty rarity policy %q (want ultra-rare or unknown)", s)
}

// RarityResolver derives a record's rarity from its matched spawns.
type RarityResolver struct {
	Empty EmptyPolicy
}

// Resolve returns the easiest bucket among spawns. Buckets outside the
// ranking table never win.
func (rr RarityResolver) Resolve(spawns []Spawn) Rarity {
	if len(spawns) == 0 && rr.Empty == EmptyAsUnknown {
		return RarityUnknown
	}
	easiest := UltraRare
	for _, s := range spawns {
		r, ok := s.Rarity()
		if !ok {
			continue
		}
		if r.Rank() < easiest.Rank() {
			easiest = r
		}
	}
	return easiest
}
