// Package cmd implements the cmdpal CLI.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cmdpal",
	Short: "keyboard-driven command palette",
	Long: `cmdpal - keyboard-driven command palette
  - fuzzy search across your command catalog
  - recent commands first, ineligible commands hidden`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
