package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the command catalog",
	Long: `List every command in the catalog (built-ins plus the configured
catalog file), with its category and eligibility gates. Loading also
validates the catalog file, so this doubles as a lint command.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	a, closeApp, err := newApp()
	if err != nil {
		return err
	}
	defer closeApp()

	for _, c := range a.palette.Registry().All() {
		gates := ""
		if c.RequiresAuth {
			gates += " auth"
		}
		if c.RequiresProfile {
			gates += " profile"
		}
		if c.CreditCost > 0 {
			gates += fmt.Sprintf(" credits:%d", c.CreditCost)
		}
		fmt.Printf("%-26s %-12s %s%s\n", c.ID, c.Category, c.Title, gates)
	}
	return nil
}
