package cmd

import (
	"fmt"

	"github.com/atmdb/atmdb/internal/utils"
	"github.com/atmdb/atmdb/pkg/codexbuild"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the codex from dex and spawn files",
	Long: `Merges the per-species dex files of the base game and the expansion, attaches
spawn tables by species name, and writes the codex document the browser loads.
Expansion files override base files with the same name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := codexbuild.DefaultOptions()
		opts.BaseDexDir = stringSetting(cmd, "base-dex", "build.basedex")
		opts.ExpansionDexDir = stringSetting(cmd, "expansion-dex", "build.expansiondex")
		opts.BaseSpawnDir = stringSetting(cmd, "base-spawns", "build.basespawns")
		opts.ExpansionSpawnDir = stringSetting(cmd, "expansion-spawns", "build.expansionspawns")
		opts.BaseLabel = stringSetting(cmd, "base-label", "build.baselabel")
		opts.ExpansionLabel = stringSetting(cmd, "expansion-label", "build.expansionlabel")
		opts.Output = stringSetting(cmd, "output", "codex")

		if cmd.Flags().Changed("strip") {
			strip, _ := cmd.Flags().GetString("strip")
			opts.StripFields = utils.SplitList(strip)
		} else {
			opts.StripFields = viper.GetStringSlice("build.strip")
		}

		res, err := codexbuild.Build(opts)
		if err != nil {
			return err
		}

		if len(res.Skipped) > 0 {
			utils.Log.Warnf("%d files were not JSON objects and were skipped", len(res.Skipped))
		}
		fmt.Printf("Wrote %d entries (%d with spawns) to %s\n", res.Entries, res.WithSpawns, opts.Output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().String("base-dex", "", "Base game species directory")
	buildCmd.Flags().String("expansion-dex", "", "Expansion species directory")
	buildCmd.Flags().String("base-spawns", "", "Base game spawn pool directory")
	buildCmd.Flags().String("expansion-spawns", "", "Expansion spawn pool directory")
	buildCmd.Flags().String("base-label", "", "Source label for base game entries")
	buildCmd.Flags().String("expansion-label", "", "Source label for expansion entries")
	buildCmd.Flags().String("strip", "", "Comma separated fields removed from every entry (default drops,moves)")
	buildCmd.Flags().StringP("output", "o", "", "Output file (default is the configured codex path)")
}
