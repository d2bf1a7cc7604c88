package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/atmdb/atmdb/pkg/catalog"
	"github.com/atmdb/atmdb/pkg/dex"
	"gopkg.in/yaml.v3"
)

func sampleRecord() catalog.Record {
	rate := 190
	ratio := 0.25
	return catalog.Record{
		Number:      37,
		Name:        "Vulpix",
		Form:        "Alola",
		Types:       []string{"Ice"},
		Implemented: true,
		CatchRate:   &rate,
		MaleRatio:   &ratio,
		Rarity:      catalog.Rare,
		Source:      "cobblemon",
		Spawns: []catalog.Spawn{{
			Name:   "Vulpix Alolan",
			Level:  dex.Level{Min: 5, Max: 32},
			Weight: 1.5,
			Bucket: "rare",
			Biomes: []string{"#minecraft:is_snowy"},
		}},
	}
}

func TestWriteRecordTable(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRecordTable(&buf, []catalog.Record{sampleRecord()}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	for _, want := range []string{"0037", "Vulpix", "Alola", "Ice", "yes", "rare", "cobblemon"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q is missing %q", lines[1], want)
		}
	}
}

func TestWriteRecordDetail(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRecordDetail(&buf, sampleRecord()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"25%", "Spawns (1)", "5-32", "#minecraft:is_snowy", "190"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail output is missing %q:\n%s", want, out)
		}
	}
}

func TestWriteStructuredYAML(t *testing.T) {
	var buf bytes.Buffer
	done, err := writeStructured(&buf, outputYAML, []catalog.Record{sampleRecord()})
	if err != nil || !done {
		t.Fatalf("writeStructured = %v, %v", done, err)
	}

	var decoded []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d documents, want 1", len(decoded))
	}
	if decoded[0]["rarity"] != "rare" || decoded[0]["name"] != "Vulpix" {
		t.Errorf("unexpected yaml record: %v", decoded[0])
	}

	done, err = writeStructured(&buf, outputTable, nil)
	if done || err != nil {
		t.Errorf("table output should be left to the caller, got %v, %v", done, err)
	}
}

func TestCheckOutput(t *testing.T) {
	for _, f := range []string{outputTable, outputJSON, outputYAML} {
		if err := checkOutput(f); err != nil {
			t.Errorf("checkOutput(%q) = %v", f, err)
		}
	}
	if err := checkOutput("csv"); err == nil {
		t.Error("checkOutput(csv) should fail")
	}
}

func TestMaleRatio(t *testing.T) {
	neg := -1.0
	zero := 0.0
	if got := maleRatio(&neg); got != "genderless" {
		t.Errorf("maleRatio(-1) = %q", got)
	}
	if got := maleRatio(&zero); got != "0%" {
		t.Errorf("maleRatio(0) = %q", got)
	}
	if got := maleRatio(nil); got != "-" {
		t.Errorf("maleRatio(nil) = %q", got)
	}
}
