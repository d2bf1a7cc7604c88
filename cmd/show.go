package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <number>",
	Short: "Show one species or form in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form, _ := cmd.Flags().GetString("form")
		output, _ := cmd.Flags().GetString("output")

		if err := checkOutput(output); err != nil {
			return err
		}
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid species number %q", args[0])
		}

		c, err := loadCatalog(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		if err := c.Err(); err != nil {
			return err
		}

		r, ok := c.Find(number, form)
		if !ok {
			if form != "" {
				return fmt.Errorf("no form %q for species %d", form, number)
			}
			return fmt.Errorf("no species with number %d", number)
		}

		if done, err := writeStructured(os.Stdout, output, r); done {
			return err
		}
		return writeRecordDetail(os.Stdout, r)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("form", "f", "", "Form name (empty for the base species)")
	showCmd.Flags().StringP("output", "o", outputTable, "Output format: table, json, yaml")
}
