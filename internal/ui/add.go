package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gridcal/internal/dateutil"
	"github.com/javiermolinar/gridcal/internal/schedule"
)

func (a *App) addCmd() *cobra.Command {
	var (
		id       string
		day      string
		start    string
		duration int
		caption  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a scheduling item",
		Long: `Add an item to the grid.

Example:
  gridcal add --day=2025-01-15 --start=09:00 --duration=60 --caption="Standup"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			date, err := dateutil.ParseDate(day)
			if err != nil {
				return err
			}
			startMins, err := schedule.ParseClock(start)
			if err != nil {
				return err
			}

			ctx := context.Background()

			// Validate and assign the ID against the full data set so the
			// spec goes through the same checks the engine applies.
			store, err := loadStore(ctx, a.repo)
			if err != nil {
				return err
			}
			spec := schedule.ItemSpec{
				ID:           id,
				Day:          date,
				StartMins:    startMins,
				DurationMins: duration,
			}
			if caption != "" {
				spec.Caption = schedule.LiteralCaption(caption)
			}
			item, err := store.AddItem(spec)
			if err != nil {
				return err
			}

			if err := a.repo.SaveItem(ctx, item); err != nil {
				return fmt.Errorf("saving item: %w", err)
			}

			opts := a.config.FormatOpts()
			fmt.Printf("Added %s: %s %s\n",
				item.ID,
				item.Day.Format("2006-01-02"),
				item.TimeRange(opts),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Item ID (assigned when empty)")
	cmd.Flags().StringVar(&day, "day", "", "Calendar date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (required)")
	cmd.Flags().StringVar(&caption, "caption", "", "Display caption")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}
