package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints statistics about the records in the codex.",
	Long:  "Prints record, species and form counts, broken down by source and by rarity.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		if err := c.Err(); err != nil {
			return err
		}

		stats := c.Stats()
		if stats.Records == 0 {
			fmt.Println("No records in the codex to generate stats.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "SOURCE\tRECORDS\t")
		for _, s := range stats.BySource {
			fmt.Fprintf(w, "%s\t%d\t\n", dash(s.Label), s.Count)
		}

		fmt.Fprintln(w, " \t \t")
		fmt.Fprintln(w, "RARITY\tRECORDS\t")
		for _, r := range stats.ByRarity {
			fmt.Fprintf(w, "%s\t%d\t\n", r.Label, r.Count)
		}

		fmt.Fprintln(w, " \t \t")
		fmt.Fprintf(w, "SPECIES\t%d\t\n", stats.Species)
		fmt.Fprintf(w, "FORMS\t%d\t\n", stats.Forms)
		fmt.Fprintf(w, "IN GAME\t%d\t\n", stats.Implemented)
		fmt.Fprintf(w, "TOTAL\t%d\t\n", stats.Records)

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
