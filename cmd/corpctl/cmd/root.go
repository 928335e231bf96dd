package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the corpctl command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "corpctl",
		Short: "corpctl - company record utilities",
		Long: `corpctl converts IPv4 addresses between dotted and integer form
and rewrites company JSON documents from one date pattern to another.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level for diagnostics written to stderr")
	rootCmd.AddCommand(newIPCmd(), newJSONCmd())
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
