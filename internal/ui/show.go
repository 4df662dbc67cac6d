package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gridcal/internal/schedule"
)

func (a *App) showCmd() *cobra.Command {
	var (
		page    int
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the scheduling grid",
		Long: `Print the current page of the scheduling grid.

The visible week is derived from your items; --page moves forward or
backward by whole weeks.`,
		Example: `  gridcal show
  gridcal show --page=1
  gridcal show --page=-2`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			store, err := loadStore(context.Background(), a.repo)
			if err != nil {
				return err
			}
			window, err := a.config.NewWindow(store)
			if err != nil {
				return err
			}
			window.ChangeViewPage(page)

			printGrid(window, a.config.FormatOpts())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "Week pages to move from the derived window")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}

// Day column width bounds. The actual width adapts to the terminal.
const (
	minColumnWidth = 10
	maxColumnWidth = 14
)

// gridColumnWidth fits the day columns to the terminal width.
func gridColumnWidth(numDays int) int {
	if numDays < 1 {
		return maxColumnWidth
	}
	width := (termWidth() - 8) / numDays
	if width > maxColumnWidth {
		width = maxColumnWidth
	}
	if width < minColumnWidth {
		width = minColumnWidth
	}
	return width
}

// printGrid renders the window's slot axis and day columns to stdout.
func printGrid(w *schedule.Window, opts schedule.FormatOpts) {
	slots := w.Slots()
	days := w.VisibleDays()
	columnWidth := gridColumnWidth(len(days))

	header := fmt.Sprintf("%s - %s",
		w.ViewStartDate().Format("Mon Jan 2"),
		w.ViewEndDate().Format("Mon Jan 2, 2006"))
	fmt.Printf("\n  %s\n", formatHeader(header))

	// Day name row.
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", 8))
	for _, d := range days {
		label := fmt.Sprintf("%-*s", columnWidth, d.Format("Mon 2"))
		if w.DateEnabled(d) {
			sb.WriteString(formatHeader(label))
		} else {
			sb.WriteString(formatMuted(label))
		}
	}
	fmt.Println(sb.String())
	fmt.Println("  " + strings.Repeat("─", 6+columnWidth*len(days)))

	columns := make([][]string, len(days))
	for i, d := range days {
		columns[i] = dayColumn(w.PlaceDay(d), len(slots), opts)
	}

	for row, slot := range slots {
		label := fmt.Sprintf("%6s", schedule.FormatMinutes(slot.MinuteOfDay, opts))
		if slot.InView {
			label = formatAxis(label)
		} else {
			label = formatMuted(label)
		}

		var line strings.Builder
		line.WriteString("  " + label)
		for _, col := range columns {
			cell := col[row]
			padded := fmt.Sprintf("  %-*s", columnWidth-2, truncate(cell, columnWidth-2))
			if cell != "" && cell != continuationMark {
				padded = formatItem(padded)
			} else {
				padded = formatMuted(padded)
			}
			line.WriteString(padded)
		}
		fmt.Println(line.String())
	}
	fmt.Println()
}

// continuationMark fills the rows an item spans beyond its first.
const continuationMark = "┆"

// dayColumn expands a day's placement records into one text cell per slot
// row. Item cells carry the caption (or the time range when no caption is
// set); rows consumed by a span show a continuation mark.
func dayColumn(placements []schedule.Placement, numSlots int, opts schedule.FormatOpts) []string {
	cells := make([]string, numSlots)
	for _, p := range placements {
		if p.Item == nil {
			continue
		}
		text := p.Item.CaptionText(opts)
		if text == "" {
			text = p.Item.TimeRange(opts)
		}
		cells[p.SlotIndex] = text
		for k := 1; k < p.Span && p.SlotIndex+k < numSlots; k++ {
			cells[p.SlotIndex+k] = continuationMark
		}
	}
	return cells
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
