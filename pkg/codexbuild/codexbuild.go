// Package codexbuild merges per-species dex files and spawn files into the
// single codex document the browser loads.
package codexbuild

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atmdb/atmdb/internal/utils"
	"github.com/tidwall/gjson"
)

const indexFile = "_index.json"

// Options names the input directories. Expansion files override base files
// with the same name; spawn files are matched to species by lower-cased name.
type Options struct {
	BaseDexDir        string
	ExpansionDexDir   string
	BaseSpawnDir      string
	ExpansionSpawnDir string

	BaseLabel      string
	ExpansionLabel string

	// StripFields are removed from every species entry.
	StripFields []string

	Output string
}

func DefaultOptions() Options {
	return Options{
		BaseLabel:      "Cobblemon",
		ExpansionLabel: "AllTheMons",
		StripFields:    []string{"drops", "moves"},
		Output:         "codex.json",
	}
}

// Result summarizes a build.
type Result struct {
	Entries    int
	WithSpawns int
	Skipped    []string
}

type object map[string]json.RawMessage

// Build writes the merged document to opts.Output.
func Build(opts Options) (*Result, error) {
	data, res, err := Document(opts)
	if err != nil {
		return nil, err
	}
	if opts.Output == "" {
		return nil, errors.New("no output file given")
	}

	lock, err := utils.NewFileLock(opts.Output)
	if err != nil {
		return nil, err
	}
	if err := lock.Lock(); err != nil {
		return nil, err
	}
	defer lock.Unlock()

	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}
	return res, nil
}

// Document returns the merged document as indented JSON.
func Document(opts Options) ([]byte, *Result, error) {
	if opts.BaseDexDir == "" {
		return nil, nil, errors.New("base dex directory is required")
	}
	res := &Result{}

	species := make(map[string]object)
	if err := readDir(opts.BaseDexDir, res, func(file string, o object) {
		setString(o, "source", opts.BaseLabel)
		species[file] = o
	}); err != nil {
		return nil, nil, err
	}
	if opts.ExpansionDexDir != "" {
		if err := readDir(opts.ExpansionDexDir, res, func(file string, o object) {
			setString(o, "source", opts.ExpansionLabel)
			species[file] = o
		}); err != nil {
			return nil, nil, err
		}
	}

	spawns := make(map[string]object)
	for _, dir := range []struct{ path, label string }{
		{opts.BaseSpawnDir, opts.BaseLabel},
		{opts.ExpansionSpawnDir, opts.ExpansionLabel},
	} {
		if dir.path == "" {
			continue
		}
		label := dir.label
		if err := readDir(dir.path, res, func(file string, o object) {
			setString(o, "source", label)
			spawns[strings.ToLower(strings.TrimSuffix(file, filepath.Ext(file)))] = o
		}); err != nil {
			return nil, nil, err
		}
	}

	files := make([]string, 0, len(species))
	for f := range species {
		files = append(files, f)
	}
	sort.Strings(files)

	merged := make([]object, 0, len(files))
	for _, f := range files {
		o := species[f]
		for _, field := range opts.StripFields {
			delete(o, field)
		}
		name := strings.ToLower(gjson.ParseBytes(o["name"]).String())
		if table, ok := spawns[name]; ok && name != "" {
			raw, err := json.Marshal(table)
			if err != nil {
				return nil, nil, err
			}
			o["spawns"] = raw
			o["source"] = table["source"]
			res.WithSpawns++
		}
		merged = append(merged, o)
	}
	res.Entries = len(merged)

	data, err := json.MarshalIndent(merged, "", "    ")
	if err != nil {
		return nil, nil, err
	}
	return data, res, nil
}

// readDir decodes every JSON object file in dir, in file name order.
// Files that do not hold a JSON object are logged and skipped.
func readDir(dir string, res *Result, fn func(file string, o object)) error {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, ent := range ents {
		name := ent.Name()
		if ent.IsDir() || filepath.Ext(name) != ".json" || name == indexFile {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		var o object
		if err := json.Unmarshal(data, &o); err != nil || o == nil {
			utils.Log.Warnf("Skipping %s: not a JSON object", path)
			res.Skipped = append(res.Skipped, path)
			continue
		}
		fn(name, o)
	}
	return nil
}

func setString(o object, key, value string) {
	raw, _ := json.Marshal(value)
	o[key] = raw
}
