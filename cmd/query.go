package cmd

import (
	"os"
	"strings"

	"github.com/atmdb/atmdb/pkg/catalog"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search and sort the codex",
	Long: `Lists the records whose name, pre-evolution, evolutions or labels contain the
given text (case-insensitive). Without text every record is listed.

Sort keys: ` + sortKeyList(),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sortBy, _ := cmd.Flags().GetString("sort")
		desc, _ := cmd.Flags().GetBool("desc")
		output, _ := cmd.Flags().GetString("output")

		if err := checkOutput(output); err != nil {
			return err
		}
		key, err := catalog.ParseSortKey(sortBy)
		if err != nil {
			return err
		}

		c, err := loadCatalog(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		if err := c.Err(); err != nil {
			return err
		}

		view := catalog.View{Sort: key, Ascending: !desc}
		if len(args) > 0 {
			view = view.WithText(strings.TrimSpace(args[0]))
		}
		records := c.Query(view)

		if done, err := writeStructured(os.Stdout, output, records); done {
			return err
		}
		if len(records) == 0 && view.Text != "" {
			if suggestions := c.Suggest(view.Text, 5); len(suggestions) > 0 {
				cmd.PrintErrf("No records found. Did you mean: %s\n", strings.Join(suggestions, ", "))
				return nil
			}
		}
		return writeRecordTable(os.Stdout, records)
	},
}

func sortKeyList() string {
	var names []string
	for _, k := range catalog.SortKeys() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringP("sort", "s", catalog.SortNumber.String(), "Sort key")
	queryCmd.Flags().BoolP("desc", "d", false, "Sort in descending order")
	queryCmd.Flags().StringP("output", "o", outputTable, "Output format: table, json, yaml")
}
