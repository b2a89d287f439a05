package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runger/cmdpal/internal/picker"
)

var (
	searchJSON  bool
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the command catalog",
	Long: `Search the command catalog with fuzzy matching.

Results are ranked by relevance, category, and title length, and
commands your session is not eligible for are hidden.

Examples:
  cmdpal search camp              # fuzzy search
  cmdpal search --json offers     # output as JSON
  cmdpal search --credits 0 gen   # eligibility with an empty budget`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = config default)")
	addEligibilityFlags(searchCmd)

	rootCmd.AddCommand(searchCmd)
}

type searchOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
}

type searchResponse struct {
	Results []searchOutput `json:"results"`
	Total   int            `json:"total"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, closeApp, err := newApp()
	if err != nil {
		return err
	}
	defer closeApp()

	results := a.palette.Query(cmd.Context(), args[0], a.eligibility())

	limit := searchLimit
	if limit <= 0 {
		limit = a.cfg.Palette.MaxResults
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if searchJSON {
		out := make([]searchOutput, len(results))
		for i, r := range results {
			out[i] = searchOutput{
				ID:          r.Command.ID,
				Title:       r.Command.Title,
				Description: r.Command.Description,
				Category:    string(r.Command.Category),
				Score:       r.Score,
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(searchResponse{Results: out, Total: len(out)})
	}

	if len(results) == 0 {
		fmt.Println("No matching commands.")
		return nil
	}

	width := termWidth()
	for _, r := range results {
		line := fmt.Sprintf("%-28s %s", r.Command.Title, r.Command.Description)
		if width > 10 {
			line = picker.Truncate(line, width-10)
		}
		fmt.Printf("%s  [%s]\n", line, r.Command.Category)
	}
	return nil
}
