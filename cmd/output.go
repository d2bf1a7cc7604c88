package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/atmdb/atmdb/pkg/catalog"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func checkOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("invalid output format %q (want table, json or yaml)", format)
}

// writeStructured handles the json and yaml formats. It reports false for
// table output, which each command renders itself.
func writeStructured(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func writeRecordTable(w io.Writer, records []catalog.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tFORM\tTYPE\tIN GAME\tRARITY\tSOURCE\tSPAWNS\t")
	for _, r := range records {
		fmt.Fprintf(tw, "%04d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t\n",
			r.Number,
			r.Name,
			dash(r.Form),
			strings.Join(r.Types, "/"),
			yesNo(r.Implemented),
			r.Rarity,
			dash(r.Source),
			len(r.Spawns),
		)
	}
	return tw.Flush()
}

func writeRecordDetail(w io.Writer, r catalog.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Number\t%04d\n", r.Number)
	fmt.Fprintf(tw, "Name\t%s\n", r.Name)
	fmt.Fprintf(tw, "Form\t%s\n", dash(r.Form))
	fmt.Fprintf(tw, "Type\t%s\n", strings.Join(r.Types, "/"))
	fmt.Fprintf(tw, "In game\t%s\n", yesNo(r.Implemented))
	fmt.Fprintf(tw, "Rarity\t%s\n", r.Rarity)
	fmt.Fprintf(tw, "Source\t%s\n", dash(r.Source))
	fmt.Fprintf(tw, "Abilities\t%s\n", dash(strings.Join(r.Abilities, ", ")))
	fmt.Fprintf(tw, "Pre-evolution\t%s\n", dash(r.PreEvolution))
	fmt.Fprintf(tw, "Evolutions\t%s\n", dash(strings.Join(r.Evolutions, ", ")))
	fmt.Fprintf(tw, "Catch rate\t%s\n", catchRate(r.CatchRate))
	fmt.Fprintf(tw, "Male ratio\t%s\n", maleRatio(r.MaleRatio))
	if len(r.Labels) > 0 {
		fmt.Fprintf(tw, "Labels\t%s\n", strings.Join(r.Labels, ", "))
	}
	for _, s := range r.Stats {
		fmt.Fprintf(tw, "  %s\t%d\n", s.Name, s.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nSpawns (%d)\n", len(r.Spawns))
	if len(r.Spawns) == 0 {
		return nil
	}
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POKEMON\tBUCKET\tLEVEL\tWEIGHT\tCONTEXT\tBIOMES\tCONDITIONS\tANTICONDITIONS\t")
	for _, s := range r.Spawns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			s.Name,
			s.Bucket,
			s.Level,
			strconv.FormatFloat(s.Weight, 'f', -1, 64),
			dash(s.Context),
			dash(strings.Join(s.Biomes, ", ")),
			dash(s.Conditions),
			dash(s.Anticonditions),
		)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func catchRate(rate *int) string {
	if rate == nil {
		return "-"
	}
	return strconv.Itoa(*rate)
}

func maleRatio(ratio *float64) string {
	if ratio == nil {
		return "-"
	}
	if *ratio < 0 {
		return "genderless"
	}
	return strconv.FormatFloat(*ratio*100, 'f', -1, 64) + "%"
}
