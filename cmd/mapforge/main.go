// Command mapforge builds, inspects, and serves Source Map v3 documents
// for a generator library, the way dingo-lsp wraps gopls around a
// transpiler's generated output.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mapforge/mapforge/pkg/logging"
)

var (
	logLevel   string
	configPath string
	logger     logging.Logger
)

func main() {
	root := &cobra.Command{
		Use:   "mapforge",
		Short: "Build and inspect Source Map v3 documents",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel == "" {
				logLevel = os.Getenv("MAPFORGE_LOG")
			}
			logger = logging.New(logLevel, os.Stderr)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to mapforge.toml")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
