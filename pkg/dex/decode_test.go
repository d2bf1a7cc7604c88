package dex

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/atmdb/atmdb/pkg/whttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

const sampleCodex = `[
  {
    "nationalPokedexNumber": 37,
    "name": "Vulpix",
    "primaryType": "fire",
    "implemented": true,
    "baseStats": {"hp": 38, "attack": 41, "speed": 65},
    "abilities": ["flashfire", "h:drought"],
    "catchRate": 190,
    "evolutions": [{"id": "vulpix_ninetales", "result": "ninetales"}],
    "labels": ["gen1"],
    "maleRatio": 0.25,
    "source": "cobblemon",
    "rarity": "rare",
    "spawns": {
      "source": "Cobblemon",
      "spawns": [
        {
          "pokemon": "vulpix",
          "level": "5-32",
          "weight": 9.0,
          "bucket": "common",
          "context": "grounded",
          "condition": {"minSkyLight": 8, "canSeeSky": true, "biomes": ["#minecraft:is_forest"]},
          "anticondition": {"biomes": ["#cobblemon:is_freezing"], "structures": ["a", "b"]}
        },
        {
          "pokemon": "vulpix alolan",
          "weight": 1.5,
          "bucket": "uncommon",
          "context": "grounded"
        }
      ]
    },
    "forms": [
      {"name": "Alola", "aspects": ["alolan"], "primaryType": "ice", "labels": []}
    ]
  },
  {"name": "Missingno", "implemented": "yes", "catchRate": "lots"}
]`

func TestParse(t *testing.T) {
	entries, err := Parse([]byte(sampleCodex))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	v := entries[0]
	assert.Equal(t, 37, v.NationalPokedexNumber)
	assert.Equal(t, "Vulpix", v.Name)
	assert.True(t, v.Implemented)
	assert.Equal(t, []Stat{{"hp", 38}, {"attack", 41}, {"speed", 65}}, v.BaseStats)
	require.NotNil(t, v.CatchRate)
	assert.Equal(t, 190, *v.CatchRate)
	require.NotNil(t, v.MaleRatio)
	assert.Equal(t, 0.25, *v.MaleRatio)
	assert.Equal(t, "rare", v.Rarity)
	assert.Equal(t, []Evolution{{ID: "vulpix_ninetales", Result: "ninetales"}}, v.Evolutions)
	assert.Nil(t, v.Aspects)

	require.NotNil(t, v.Spawns)
	assert.Equal(t, "Cobblemon", v.Spawns.Source)
	require.Len(t, v.Spawns.Spawns, 2)

	first := v.Spawns.Spawns[0]
	assert.Equal(t, Level{Min: 5, Max: 32}, first.Level)
	assert.Equal(t, 9.0, first.Weight)
	assert.Equal(t, []string{"#minecraft:is_forest"}, first.Biomes())

	var keys []string
	for _, p := range first.Condition {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"minSkyLight", "canSeeSky", "biomes"}, keys, "condition keys keep document order")

	structures, ok := first.Anticondition.Get("structures")
	require.True(t, ok)
	assert.True(t, structures.IsArray())

	second := v.Spawns.Spawns[1]
	assert.Equal(t, Level{}, second.Level)
	assert.Nil(t, second.Condition)
	assert.Equal(t, []string{}, second.Biomes())

	require.Len(t, v.Forms, 1)
	assert.Equal(t, "Alola", v.Forms[0].Name)
	assert.Equal(t, []string{"alolan"}, v.Forms[0].Aspects)
	assert.NotNil(t, v.Forms[0].Labels, "declared empty labels stay non-nil")
	assert.Nil(t, v.Forms[0].MaleRatio)

	m := entries[1]
	assert.False(t, m.Implemented, "only a literal true counts as implemented")
	assert.Nil(t, m.CatchRate)
	assert.Nil(t, m.Spawns)
	assert.Zero(t, m.NationalPokedexNumber)
}

func TestParseRejectsDocumentShape(t *testing.T) {
	_, err := Parse([]byte(`{"name": "Bulbasaur"}`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = Parse([]byte(`[{"name": `))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	entries, err := Parse([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAnticonditionsAlias(t *testing.T) {
	entries, err := Parse([]byte(`[{"name":"a","spawns":{"spawns":[{"pokemon":"a","anticonditions":{"isRaining":true}}]}}]`))
	require.NoError(t, err)
	v, ok := entries[0].Spawns.Spawns[0].Anticondition.Get("isRaining")
	require.True(t, ok)
	assert.True(t, v.Bool())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want Level
		str  string
	}{
		{`5`, Level{5, 5}, "5"},
		{`"5-32"`, Level{5, 32}, "5-32"},
		{`"12"`, Level{12, 12}, "12"},
		{`"30-10"`, Level{30, 30}, "30"},
		{`"abc"`, Level{}, "0"},
		{`null`, Level{}, "0"},
	}
	for _, tc := range tests {
		got := ParseLevel(gjson.Parse(tc.raw))
		if got != tc.want {
			t.Errorf("ParseLevel(%s) = %+v, want %+v", tc.raw, got, tc.want)
		}
		if got.String() != tc.str {
			t.Errorf("ParseLevel(%s).String() = %q, want %q", tc.raw, got.String(), tc.str)
		}
	}
}

func TestLevelEncoding(t *testing.T) {
	spawn := struct {
		Single Level `json:"single" yaml:"single"`
		Range  Level `json:"range" yaml:"range"`
		Unset  Level `json:"unset" yaml:"unset"`
	}{Level{5, 5}, Level{5, 32}, Level{}}

	data, err := json.Marshal(spawn)
	require.NoError(t, err)
	assert.JSONEq(t, `{"single": 5, "range": "5-32", "unset": 0}`, string(data))

	out, err := yaml.Marshal(spawn)
	require.NoError(t, err)
	assert.Equal(t, "single: 5\nrange: 5-32\nunset: 0\n", string(out))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codex.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCodex), 0o644))

	entries, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/codex.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleCodex))
	}))
	defer srv.Close()

	entries, err := Load(context.Background(), srv.URL+"/data/codex.json", nil)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = Load(context.Background(), srv.URL+"/nope.json", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, whttp.ErrStatus)

	var statusErr *whttp.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
