// Package command defines the palette's command catalog: the immutable
// descriptors users can invoke, the registry that holds them, and the
// eligibility rules that decide which of them are visible.
package command

// Category classifies a command for grouping and ranking tie-breaks.
type Category string

const (
	CategoryRecent     Category = "recent"
	CategoryNavigation Category = "navigation"
	CategoryCreate     Category = "create"
	CategoryAI         Category = "ai"
	CategorySearch     Category = "search"
	CategorySettings   Category = "settings"
)

// categoryPriority is the tie-break table used by the search ordering.
// Categories missing from the table sort last.
var categoryPriority = map[Category]int{
	CategoryRecent:     7,
	CategoryNavigation: 6,
	CategoryCreate:     5,
	CategoryAI:         4,
	CategorySearch:     3,
	CategorySettings:   2,
}

// Priority returns the ranking priority for the category (0 for unknown).
func (c Category) Priority() int {
	return categoryPriority[c]
}

// Valid reports whether the category is one of the closed set.
func (c Category) Valid() bool {
	_, ok := categoryPriority[c]
	return ok
}

// ActionKind describes how a selected command is dispatched. The palette
// core never interprets actions; it passes them through to the caller.
type ActionKind string

const (
	ActionURL  ActionKind = "url"  // open a URL
	ActionView ActionKind = "view" // switch to a named view
	ActionRun  ActionKind = "run"  // execute a command line
)

// Action is an opaque dispatch descriptor attached to a command.
type Action struct {
	Kind   ActionKind `yaml:"kind"`
	Target string     `yaml:"target"`
}

// Command is a single invocable palette entry. Commands are immutable:
// the registry never changes during a session, and the search engine
// only ever reads them.
type Command struct {
	// ID is the unique, session-stable key. Recency persistence and
	// lookup both depend on it.
	ID string `yaml:"id"`

	// Title and Description may be localization keys; the search engine
	// resolves them through a Resolver and otherwise treats them as
	// opaque strings.
	Title       string `yaml:"title"`
	Description string `yaml:"description"`

	Category Category `yaml:"category"`

	// Keywords are auxiliary search terms, scored as one space-joined
	// field.
	Keywords []string `yaml:"keywords"`

	// Eligibility gates. Zero values mean "no gate".
	RequiresAuth    bool `yaml:"requires_auth"`
	RequiresProfile bool `yaml:"requires_profile"`
	CreditCost      int  `yaml:"credit_cost"`

	Action Action `yaml:"action"`
}
