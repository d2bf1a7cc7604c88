package dex

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atmdb/atmdb/pkg/whttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("codex document is not valid JSON")
	ErrNotArray    = errors.New("codex document is not a JSON array")
)

// Parse decodes a codex document. Only the document shape can fail: entries
// with missing or oddly typed fields decode to zero values.
func Parse(data []byte) ([]SourceEntry, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, ErrNotArray
	}

	entries := []SourceEntry{}
	doc.ForEach(func(_, value gjson.Result) bool {
		entries = append(entries, decodeEntry(value))
		return true
	})
	return entries, nil
}

// Load reads the codex document from a file path or an http(s) URL.
func Load(ctx context.Context, location string, client *retryablehttp.Client) ([]SourceEntry, error) {
	var data []byte
	if whttp.IsURL(location) {
		res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{URL: location}, client)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch codex: %w", err)
		}
		data = res.Body
	} else {
		var err error
		data, err = os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to read codex: %w", err)
		}
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return entries, nil
}

func decodeEntry(v gjson.Result) SourceEntry {
	e := SourceEntry{
		NationalPokedexNumber: int(v.Get("nationalPokedexNumber").Int()),
		Name:                  v.Get("name").String(),
		PrimaryType:           v.Get("primaryType").String(),
		SecondaryType:         v.Get("secondaryType").String(),
		Implemented:           v.Get("implemented").Type == gjson.True,
		Aspects:               stringList(v.Get("aspects")),
		BaseStats:             stats(v.Get("baseStats")),
		Abilities:             stringList(v.Get("abilities")),
		CatchRate:             optionalInt(v.Get("catchRate")),
		PreEvolution:          v.Get("preEvolution").String(),
		Evolutions:            evolutions(v.Get("evolutions")),
		Labels:                stringList(v.Get("labels")),
		MaleRatio:             optionalFloat(v.Get("maleRatio")),
		Source:                v.Get("source").String(),
		Rarity:                v.Get("rarity").String(),
	}

	if spawns := v.Get("spawns"); spawns.IsObject() {
		e.Spawns = spawnTable(spawns)
	}

	v.Get("forms").ForEach(func(_, f gjson.Result) bool {
		e.Forms = append(e.Forms, decodeForm(f))
		return true
	})

	return e
}

func decodeForm(v gjson.Result) Form {
	return Form{
		Name:          v.Get("name").String(),
		Aspects:       stringList(v.Get("aspects")),
		PrimaryType:   v.Get("primaryType").String(),
		SecondaryType: v.Get("secondaryType").String(),
		BaseStats:     stats(v.Get("baseStats")),
		Abilities:     stringList(v.Get("abilities")),
		CatchRate:     optionalInt(v.Get("catchRate")),
		PreEvolution:  v.Get("preEvolution").String(),
		Evolutions:    evolutions(v.Get("evolutions")),
		Labels:        stringList(v.Get("labels")),
		MaleRatio:     optionalFloat(v.Get("maleRatio")),
	}
}

func spawnTable(v gjson.Result) *SpawnTable {
	t := &SpawnTable{Source: v.Get("source").String()}
	v.Get("spawns").ForEach(func(_, s gjson.Result) bool {
		anti := s.Get("anticonditions")
		if !anti.Exists() {
			anti = s.Get("anticondition")
		}
		t.Spawns = append(t.Spawns, SpawnDefinition{
			Pokemon:       s.Get("pokemon").String(),
			Level:         ParseLevel(s.Get("level")),
			Weight:        s.Get("weight").Float(),
			Bucket:        s.Get("bucket").String(),
			Context:       s.Get("context").String(),
			Condition:     properties(s.Get("condition")),
			Anticondition: properties(anti),
		})
		return true
	})
	return t
}

func evolutions(v gjson.Result) []Evolution {
	if !v.IsArray() {
		return nil
	}
	out := []Evolution{}
	v.ForEach(func(_, ev gjson.Result) bool {
		out = append(out, Evolution{
			ID:     ev.Get("id").String(),
			Result: ev.Get("result").String(),
		})
		return true
	})
	return out
}

func stats(v gjson.Result) []Stat {
	if !v.IsObject() {
		return nil
	}
	out := []Stat{}
	v.ForEach(func(k, val gjson.Result) bool {
		out = append(out, Stat{Name: k.String(), Value: int(val.Int())})
		return true
	})
	return out
}

func properties(v gjson.Result) Properties {
	if !v.IsObject() {
		return nil
	}
	out := Properties{}
	v.ForEach(func(k, val gjson.Result) bool {
		out = append(out, Property{Key: k.String(), Value: val})
		return true
	})
	return out
}

// stringList returns nil when v is absent or not an array, so callers can
// tell "not declared" from "declared empty".
func stringList(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	out := []string{}
	v.ForEach(func(_, s gjson.Result) bool {
		out = append(out, s.String())
		return true
	})
	return out
}

func optionalInt(v gjson.Result) *int {
	if v.Type != gjson.Number {
		return nil
	}
	n := int(v.Int())
	return &n
}

func optionalFloat(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}
