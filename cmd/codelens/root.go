package main

import (
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "codelens",
		Short: "Static code quality analysis",
		Long: `codelens scores source files with heuristic metrics, suggestions and issues.

Run "codelens serve" for the HTTP API or "codelens analyze" on local files.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML config file")

	root.AddCommand(
		newServeCmd(&cfgFile),
		newAnalyzeCmd(&cfgFile),
		newVersionCmd(),
	)
	return root
}
