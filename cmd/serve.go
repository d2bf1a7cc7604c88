package cmd

import (
	"github.com/atmdb/atmdb/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the species browser web server",
	Long: `Loads the codex once and serves the searchable species table, detail pages
and a JSON API. A codex that fails to load is reported on the page and by
/health instead of stopping the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		return server.New(c).Start(stringSetting(cmd, "listen", "serve.listen"))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address (default from config serve.listen)")
}
