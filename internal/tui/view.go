package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/gridcal/internal/dateutil"
	"github.com/javiermolinar/gridcal/internal/schedule"
)

// View renders the TUI.
func (m Model) View() string {
	if m.loading {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	if m.mode == ModeForm {
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("gridcal  %s - %s",
		m.window.ViewStartDate().Format("Mon Jan 2"),
		m.window.ViewEndDate().Format("Mon Jan 2, 2006"))
	return m.styles.TitleStyle.Render(title) + "\n"
}

func (m Model) renderGrid() string {
	slots := m.window.Slots()
	days := m.window.VisibleDays()
	opts := m.config.FormatOpts()
	today := dateutil.TruncateToDay(m.now())

	var b strings.Builder

	// Day header row.
	cells := make([]string, 0, len(days)+1)
	cells = append(cells, m.styles.TimeColumnStyle.Render(""))
	for _, d := range days {
		style := m.styles.DayHeaderStyle
		switch {
		case dateutil.SameDay(d, today):
			style = m.styles.DayHeaderTodayStyle
		case !m.window.DateEnabled(d):
			style = m.styles.DayHeaderOffStyle
		}
		cells = append(cells, style.Render(fmt.Sprintf("%s %d", dateutil.WeekdayShortName(d.Weekday()), d.Day())))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n")

	columns := make([][]gridCell, len(days))
	for i, d := range days {
		columns[i] = m.dayCells(d, len(slots), opts)
	}

	for row, slot := range slots {
		label := schedule.FormatMinutes(slot.MinuteOfDay, opts) + " "
		timeStyle := m.styles.TimeColumnStyle
		if !slot.InView {
			timeStyle = m.styles.TimeColumnMutedStyle
		}

		line := make([]string, 0, len(days)+1)
		line = append(line, timeStyle.Render(label))
		for day := range columns {
			line = append(line, m.renderCell(Position{Day: day, Slot: row}, columns[day][row]))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line...))
		b.WriteString("\n")
	}

	return b.String()
}

// gridCell is one renderable cell of a day column.
type gridCell struct {
	item *schedule.Item
	text string
	span bool // row is covered by an item that starts above it
}

// dayCells expands a day's placement records into one cell per slot row.
// Rows covered by a multi-slot item show a continuation mark.
func (m Model) dayCells(day time.Time, numSlots int, opts schedule.FormatOpts) []gridCell {
	cells := make([]gridCell, numSlots)
	for _, p := range m.window.PlaceDay(day) {
		if p.Item == nil {
			continue
		}
		text := p.Item.CaptionText(opts)
		if text == "" {
			text = p.Item.TimeRange(opts)
		}
		cells[p.SlotIndex] = gridCell{item: p.Item, text: text}
		for k := 1; k < p.Span && p.SlotIndex+k < numSlots; k++ {
			cells[p.SlotIndex+k] = gridCell{item: p.Item, text: "┆", span: true}
		}
	}
	return cells
}

func (m Model) renderCell(pos Position, cell gridCell) string {
	text := cell.text
	style := m.styles.EmptyCellStyle

	switch {
	case cell.item != nil && m.selection.IsSelected(cell.item):
		text = fmt.Sprintf("[%d] %s", m.selection.Rank(cell.item), text)
		style = m.styles.ItemSelectedStyle
	case cell.span:
		style = m.styles.ItemSpanStyle
	case cell.item != nil:
		style = m.styles.ItemCellStyle
	}

	if pos == m.cursor {
		style = style.Inherit(m.styles.CursorStyle)
	}

	if len(text) > colWidth-1 {
		text = text[:colWidth-2] + "…"
	}
	return style.Render(" " + text)
}

func (m Model) renderForm() string {
	days := m.window.VisibleDays()
	day := days[m.cursor.Day]

	label := func(field int, name string) string {
		if m.formFocus == field {
			return m.styles.FormFocusStyle.Render("> " + name)
		}
		return m.styles.FormLabelStyle.Render("  " + name)
	}

	var b strings.Builder
	b.WriteString(m.styles.FormTitleStyle.Render(fmt.Sprintf("New item on %s", day.Format("Mon Jan 2"))))
	b.WriteString("\n")
	b.WriteString(label(formFieldCaption, "Caption:  ") + m.formCaption.View() + "\n")
	b.WriteString(label(formFieldStart, "Start:    ") + m.formStart.View() + "\n")
	b.WriteString(label(formFieldDuration, "Duration: ") + m.formDuration.View() + "\n")
	b.WriteString(m.styles.HelpStyle.Render("enter save • tab next field • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := m.styles.StatusStyle
		if m.err != nil && strings.HasPrefix(m.statusMsg, "Error") {
			style = m.styles.ErrorStyle
		}
		return style.Render(m.statusMsg)
	}
	help := "hjkl move • H/L week • space select • a add • d delete • c clear • q quit"
	if n := m.selection.Len(); n > 0 {
		help = fmt.Sprintf("%d selected • %s", n, help)
	}
	return m.styles.HelpStyle.Render(help)
}
