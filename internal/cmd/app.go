package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/cmdpal/internal/command"
	"github.com/runger/cmdpal/internal/config"
	"github.com/runger/cmdpal/internal/logging"
	"github.com/runger/cmdpal/internal/palette"
	"github.com/runger/cmdpal/internal/storage"
)

// Shared eligibility flags. Registered on every command that queries
// the palette; unset flags fall back to the config's session defaults.
var (
	flagAnonymous bool
	flagNoProfile bool
	flagCredits   int
)

// addEligibilityFlags registers the eligibility-context overrides.
func addEligibilityFlags(c *cobra.Command) {
	c.Flags().BoolVar(&flagAnonymous, "anonymous", false, "evaluate eligibility as an unauthenticated session")
	c.Flags().BoolVar(&flagNoProfile, "no-profile", false, "evaluate eligibility without a business profile")
	c.Flags().IntVar(&flagCredits, "credits", -1, "available credits (-1 = config default)")
}

// app bundles everything a subcommand needs.
type app struct {
	cfg     *config.Config
	store   storage.Store
	palette *palette.Palette
}

// newApp loads the config, opens the store, and builds the palette.
// The caller must invoke close when done.
func newApp() (*app, func(), error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	registry, err := command.LoadCatalog(cfg.Palette.CatalogPath)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	logger := logging.NewFromEnv()
	logger.Debug("catalog loaded", "commands", registry.Len())

	a := &app{
		cfg:     cfg,
		store:   store,
		palette: palette.New(registry, store, nil, logger),
	}
	return a, func() { store.Close() }, nil
}

// eligibility builds the eligibility context from config defaults and
// any flag overrides.
func (a *app) eligibility() command.Context {
	ctx := command.Context{
		Authenticated: a.cfg.Session.Authenticated,
		HasProfile:    a.cfg.Session.HasProfile,
		Credits:       a.cfg.Session.Credits,
	}
	if flagAnonymous {
		ctx.Authenticated = false
	}
	if flagNoProfile {
		ctx.HasProfile = false
	}
	if flagCredits >= 0 {
		ctx.Credits = flagCredits
	}
	return ctx
}
