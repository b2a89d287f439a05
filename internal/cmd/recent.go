package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/cmdpal/internal/recency"
)

var (
	recentClear bool
	recentLimit int
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recently executed commands",
	Long: `Show recently executed palette commands, most recent first.

Entries for commands no longer present in the catalog are dropped.

Examples:
  cmdpal recent             # last few commands
  cmdpal recent -n 10       # the whole stored list
  cmdpal recent --clear     # forget everything`,
	Args: cobra.NoArgs,
	RunE: runRecent,
}

func init() {
	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "clear the recency list")
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", recency.DisplaySeed, "maximum number of entries")

	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
	a, closeApp, err := newApp()
	if err != nil {
		return err
	}
	defer closeApp()

	if recentClear {
		a.palette.ClearRecent(cmd.Context())
		fmt.Println("Recency list cleared.")
		return nil
	}

	commands := a.palette.Recent(cmd.Context(), recentLimit)
	if len(commands) == 0 {
		fmt.Println("No recent commands.")
		return nil
	}
	for _, c := range commands {
		fmt.Printf("%-28s %s\n", c.Title, c.Description)
	}
	return nil
}
