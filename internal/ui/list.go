package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gridcal/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items in a date range",
		Long: `List all items scheduled within a date range (inclusive).

If no dates are specified, lists today's items.
If only --start is specified, lists items for that single day.`,
		Example: `  gridcal list
  gridcal list --start=2025-01-15
  gridcal list --start=2025-01-15 --end=2025-01-20`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			start, err := dateutil.ParseDate(startDate)
			if err != nil {
				return err
			}
			end := start
			if endDate != "" {
				end, err = dateutil.ParseDate(endDate)
				if err != nil {
					return err
				}
			}
			if end.Before(start) {
				return dateutil.ErrEndDateBeforeStart
			}

			items, err := a.repo.ListItemsByDateRange(context.Background(), start, end)
			if err != nil {
				return fmt.Errorf("listing items: %w", err)
			}

			if len(items) == 0 {
				fmt.Println("No items found in the specified date range.")
				return nil
			}

			opts := a.config.FormatOpts()
			var currentDate string
			for _, it := range items {
				date := it.Day.Format("2006-01-02")
				if date != currentDate {
					if currentDate != "" {
						fmt.Println()
					}
					fmt.Printf("%s\n", formatHeader(it.Day.Format("Mon Jan 2")))
					currentDate = date
				}

				caption := it.CaptionText(opts)
				if caption == "" {
					caption = formatMuted("(no caption)")
				}
				fmt.Printf("  %s  %s  %s\n",
					formatAxis(it.TimeRange(opts)),
					caption,
					formatMuted("#"+it.ID),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Range start date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&endDate, "end", "", "Range end date (YYYY-MM-DD, default: start)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}
