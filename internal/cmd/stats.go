package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/runger/cmdpal/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show command usage statistics",
	Long:  "Show how often each palette command has been executed, from the execution log.",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, closeApp, err := newApp()
	if err != nil {
		return err
	}
	defer closeApp()

	counts, err := a.store.CountExecutions(cmd.Context())
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Println("No executions recorded.")
		return nil
	}

	type row struct {
		id    string
		count int
	}
	rows := make([]row, 0, len(counts))
	for id, n := range counts {
		rows = append(rows, row{id: id, count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].id < rows[j].id
	})

	for _, r := range rows {
		title := r.id
		if c, err := a.palette.Registry().Get(r.id); err == nil {
			title = c.Title
		}
		fmt.Printf("%6d  %s\n", r.count, title)
	}

	last, err := a.store.QueryExecutions(cmd.Context(), storage.ExecutionQuery{Limit: 1})
	if err == nil && len(last) == 1 {
		fmt.Printf("\nlast execution: %s\n", last[0].CommandID)
	}
	return nil
}
