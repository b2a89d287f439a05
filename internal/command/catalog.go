package command

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape of a command catalog.
type catalogFile struct {
	Commands []Command `yaml:"commands"`
}

// LoadCatalog reads a YAML catalog file and returns a registry holding
// the built-in commands followed by the file's commands. An empty path
// yields the built-in set alone.
func LoadCatalog(path string) (*Registry, error) {
	commands := DefaultCommands()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
		var cf catalogFile
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
		}
		for i, cmd := range cf.Commands {
			if err := Validate(cmd); err != nil {
				return nil, fmt.Errorf("catalog %s: command %d: %w", path, i, err)
			}
		}
		commands = append(commands, cf.Commands...)
	}

	return NewRegistry(commands)
}

// Validate checks the fields a catalog author controls. Unknown
// categories are rejected here rather than silently sorting last.
func Validate(cmd Command) error {
	if cmd.ID == "" {
		return fmt.Errorf("id is required")
	}
	if cmd.Title == "" {
		return fmt.Errorf("command %s: title is required", cmd.ID)
	}
	if !cmd.Category.Valid() {
		return fmt.Errorf("command %s: unknown category %q", cmd.ID, cmd.Category)
	}
	if cmd.CreditCost < 0 {
		return fmt.Errorf("command %s: credit_cost cannot be negative", cmd.ID)
	}
	switch cmd.Action.Kind {
	case ActionURL, ActionView, ActionRun:
	case "":
		return fmt.Errorf("command %s: action kind is required", cmd.ID)
	default:
		return fmt.Errorf("command %s: unknown action kind %q", cmd.ID, cmd.Action.Kind)
	}
	return nil
}

// DefaultCommands returns the built-in catalog. These mirror the
// actions the hosted dashboard exposes; user catalogs extend them.
func DefaultCommands() []Command {
	return []Command{
		{
			ID:          "nav-dashboard",
			Title:       "Dashboard",
			Description: "Go to the main dashboard",
			Category:    CategoryNavigation,
			Keywords:    []string{"home", "overview", "start"},
			Action:      Action{Kind: ActionView, Target: "dashboard"},
		},
		{
			ID:           "nav-campaigns",
			Title:        "Campaigns",
			Description:  "Browse your marketing campaigns",
			Category:     CategoryNavigation,
			Keywords:     []string{"marketing", "ads", "list"},
			RequiresAuth: true,
			Action:       Action{Kind: ActionView, Target: "campaigns"},
		},
		{
			ID:              "nav-offers",
			Title:           "Offers",
			Description:     "Browse your offer catalog",
			Category:        CategoryNavigation,
			Keywords:        []string{"products", "catalog", "pricing"},
			RequiresAuth:    true,
			RequiresProfile: true,
			Action:          Action{Kind: ActionView, Target: "offers"},
		},
		{
			ID:              "nav-competitors",
			Title:           "Competitors",
			Description:     "View competitor research",
			Category:        CategoryNavigation,
			Keywords:        []string{"research", "market", "analysis"},
			RequiresAuth:    true,
			RequiresProfile: true,
			Action:          Action{Kind: ActionView, Target: "competitors"},
		},
		{
			ID:              "create-campaign",
			Title:           "New campaign",
			Description:     "Create a new marketing campaign",
			Category:        CategoryCreate,
			Keywords:        []string{"add", "start", "marketing"},
			RequiresAuth:    true,
			RequiresProfile: true,
			Action:          Action{Kind: ActionView, Target: "campaigns/new"},
		},
		{
			ID:              "create-offer",
			Title:           "New offer",
			Description:     "Add an offer to your catalog",
			Category:        CategoryCreate,
			Keywords:        []string{"add", "product", "pricing"},
			RequiresAuth:    true,
			RequiresProfile: true,
			Action:          Action{Kind: ActionView, Target: "offers/new"},
		},
		{
			ID:              "ai-generate-ads",
			Title:           "Generate ads",
			Description:     "Generate ad copy for a campaign",
			Category:        CategoryAI,
			Keywords:        []string{"copy", "creative", "write"},
			RequiresAuth:    true,
			RequiresProfile: true,
			CreditCost:      10,
			Action:          Action{Kind: ActionView, Target: "ads/generate"},
		},
		{
			ID:              "ai-research-competitors",
			Title:           "Research competitors",
			Description:     "Run AI competitor research for your profile",
			Category:        CategoryAI,
			Keywords:        []string{"analysis", "market", "scan"},
			RequiresAuth:    true,
			RequiresProfile: true,
			CreditCost:      25,
			Action:          Action{Kind: ActionView, Target: "competitors/research"},
		},
		{
			ID:          "search-docs",
			Title:       "Search documentation",
			Description: "Search the product documentation",
			Category:    CategorySearch,
			Keywords:    []string{"help", "docs", "manual"},
			Action:      Action{Kind: ActionURL, Target: "https://docs.cmdpal.dev/search"},
		},
		{
			ID:           "settings-profile",
			Title:        "Business profile",
			Description:  "Edit your business profile",
			Category:     CategorySettings,
			Keywords:     []string{"company", "account", "edit"},
			RequiresAuth: true,
			Action:       Action{Kind: ActionView, Target: "settings/profile"},
		},
		{
			ID:           "settings-billing",
			Title:        "Billing",
			Description:  "Manage your plan and credits",
			Category:     CategorySettings,
			Keywords:     []string{"plan", "credits", "payment"},
			RequiresAuth: true,
			Action:       Action{Kind: ActionView, Target: "settings/billing"},
		},
	}
}
