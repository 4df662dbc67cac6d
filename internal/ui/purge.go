package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) purgeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all items",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to purge without --yes")
			}
			if err := a.repo.DeleteAll(context.Background()); err != nil {
				return fmt.Errorf("purging items: %w", err)
			}
			fmt.Println("All items deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
