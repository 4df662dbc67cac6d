// Package ui provides the command line interface for gridcal.
package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gridcal/internal/config"
	"github.com/javiermolinar/gridcal/internal/schedule"
	"github.com/javiermolinar/gridcal/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   schedule.Repository
	config *config.Config
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo schedule.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "gridcal",
		Short: "A weekly time-grid scheduler",
		Long: `Gridcal is a weekly scheduling grid for the terminal.

It buckets items by calendar day, derives the visible week window from
your data, and places items onto a shared time axis. Run without a
subcommand to open the interactive grid.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.Run(a.repo, a.config)
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.purgeCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("gridcal %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// loadStore builds an in-memory store from the persisted items. The load
// runs inside a single change bracket so window recomputation is deferred
// to the end of the batch.
func loadStore(ctx context.Context, repo schedule.Repository) (*schedule.Store, error) {
	items, err := repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	store := schedule.NewStore()
	err = store.Batch(func() error {
		for _, it := range items {
			spec := schedule.ItemSpec{
				ID:           it.ID,
				Day:          it.Day,
				StartMins:    it.StartMins,
				DurationMins: it.DurationMins,
				Caption:      it.Caption,
				Data:         it.Data,
			}
			if _, err := store.AddItem(spec); err != nil {
				return fmt.Errorf("loading item %s: %w", it.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
