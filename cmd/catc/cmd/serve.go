package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aloussase/cat/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transpilation/execution HTTP API",
	Long: `Starts the HTTP surface exposing the transpiler and
simulator over /api/v1/transpilation, /api/v1/execution, and
/api/v1/transpilation_and_execution. Listens on the PORT
environment variable, defaulting to 8080.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return httpapi.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
