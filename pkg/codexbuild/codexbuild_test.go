package codexbuild

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atmdb/atmdb/pkg/dex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestDocumentMergesDexAndSpawns(t *testing.T) {
	root := t.TempDir()
	opts := DefaultOptions()
	opts.BaseDexDir = filepath.Join(root, "dex", "cobblemon")
	opts.ExpansionDexDir = filepath.Join(root, "dex", "atm")
	opts.BaseSpawnDir = filepath.Join(root, "spawn", "cobblemon")
	opts.ExpansionSpawnDir = filepath.Join(root, "spawn", "atm")

	writeFiles(t, opts.BaseDexDir, map[string]string{
		"bulbasaur.json": `{"nationalPokedexNumber": 1, "name": "Bulbasaur", "moves": ["1:tackle"], "drops": {"amount": 1}}`,
		"vulpix.json":    `{"nationalPokedexNumber": 37, "name": "Vulpix", "primaryType": "fire"}`,
		"_index.json":    `["ignored"]`,
		"broken.json":    `{"name": `,
		"notes.txt":      `not json`,
	})
	writeFiles(t, opts.ExpansionDexDir, map[string]string{
		"vulpix.json":  `{"nationalPokedexNumber": 37, "name": "Vulpix", "primaryType": "ice"}`,
		"fakemon.json": `{"nationalPokedexNumber": 2001, "name": "Fakemon"}`,
	})
	writeFiles(t, opts.BaseSpawnDir, map[string]string{
		"bulbasaur.json": `{"enabled": true, "spawns": [{"pokemon": "bulbasaur", "bucket": "rare", "weight": 1}]}`,
		"vulpix.json":    `{"spawns": [{"pokemon": "vulpix", "bucket": "rare"}]}`,
	})
	writeFiles(t, opts.ExpansionSpawnDir, map[string]string{
		"Vulpix.json": `{"spawns": [{"pokemon": "vulpix", "bucket": "common"}]}`,
	})

	data, res, err := Document(opts)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Entries)
	assert.Equal(t, 2, res.WithSpawns)
	assert.Equal(t, []string{filepath.Join(opts.BaseDexDir, "broken.json")}, res.Skipped)

	entries, err := dex.Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	bulba, fake, vulpix := entries[0], entries[1], entries[2]
	assert.Equal(t, "Bulbasaur", bulba.Name)
	assert.Equal(t, "Cobblemon", bulba.Source)
	require.NotNil(t, bulba.Spawns)
	assert.Equal(t, "rare", bulba.Spawns.Spawns[0].Bucket)

	assert.Equal(t, "Fakemon", fake.Name)
	assert.Equal(t, "AllTheMons", fake.Source)
	assert.Nil(t, fake.Spawns)

	assert.Equal(t, "ice", vulpix.PrimaryType, "expansion dex overrides base")
	require.NotNil(t, vulpix.Spawns)
	assert.Equal(t, "common", vulpix.Spawns.Spawns[0].Bucket, "expansion spawns override base")
	assert.Equal(t, "AllTheMons", vulpix.Source, "source follows the spawn table")

	assert.NotContains(t, string(data), "tackle", "moves are stripped")
	assert.NotContains(t, string(data), `"drops"`)
}

func TestBuildWritesOutput(t *testing.T) {
	root := t.TempDir()
	opts := DefaultOptions()
	opts.BaseDexDir = filepath.Join(root, "dex")
	opts.Output = filepath.Join(root, "codex.json")
	writeFiles(t, opts.BaseDexDir, map[string]string{
		"ditto.json": `{"nationalPokedexNumber": 132, "name": "Ditto"}`,
	})

	res, err := Build(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Entries)
	assert.NoFileExists(t, opts.Output+".lock")

	entries, err := dex.Load(context.Background(), opts.Output, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cobblemon", entries[0].Source)
}

func TestDocumentErrors(t *testing.T) {
	_, _, err := Document(Options{})
	assert.Error(t, err)

	opts := DefaultOptions()
	opts.BaseDexDir = filepath.Join(t.TempDir(), "missing")
	_, _, err = Document(opts)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
