package tui

import "github.com/charmbracelet/lipgloss"

// Width of one day column in the grid.
const colWidth = 16

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	colorFg       lipgloss.Color
	colorFgMuted  lipgloss.Color
	colorAccent   lipgloss.Color
	colorItem     lipgloss.Color
	colorSelected lipgloss.Color
	colorCursor   lipgloss.Color
	colorWarning  lipgloss.Color

	TitleStyle          lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	DayHeaderOffStyle   lipgloss.Style

	TimeColumnStyle      lipgloss.Style
	TimeColumnMutedStyle lipgloss.Style

	ItemCellStyle     lipgloss.Style
	ItemSelectedStyle lipgloss.Style
	ItemSpanStyle     lipgloss.Style
	EmptyCellStyle    lipgloss.Style
	CursorStyle       lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	FormTitleStyle lipgloss.Style
	FormLabelStyle lipgloss.Style
	FormFocusStyle lipgloss.Style
}

// NewStyles builds the default style set.
func NewStyles() *Styles {
	s := &Styles{
		colorFg:       lipgloss.Color("252"),
		colorFgMuted:  lipgloss.Color("240"),
		colorAccent:   lipgloss.Color("75"),
		colorItem:     lipgloss.Color("37"),
		colorSelected: lipgloss.Color("214"),
		colorCursor:   lipgloss.Color("236"),
		colorWarning:  lipgloss.Color("203"),
	}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.DayHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorFg).Width(colWidth)
	s.DayHeaderTodayStyle = s.DayHeaderStyle.Foreground(s.colorAccent)
	s.DayHeaderOffStyle = s.DayHeaderStyle.Bold(false).Foreground(s.colorFgMuted)

	s.TimeColumnStyle = lipgloss.NewStyle().Foreground(s.colorAccent).Width(7).Align(lipgloss.Right)
	s.TimeColumnMutedStyle = s.TimeColumnStyle.Foreground(s.colorFgMuted)

	s.ItemCellStyle = lipgloss.NewStyle().Foreground(s.colorItem).Width(colWidth)
	s.ItemSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorSelected).Width(colWidth)
	s.ItemSpanStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted).Width(colWidth)
	s.EmptyCellStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted).Width(colWidth)
	s.CursorStyle = lipgloss.NewStyle().Background(s.colorCursor).Width(colWidth)

	s.StatusStyle = lipgloss.NewStyle().Foreground(s.colorAccent)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(s.colorWarning)
	s.HelpStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	s.FormTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.FormLabelStyle = lipgloss.NewStyle().Foreground(s.colorFg)
	s.FormFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorSelected)

	return s
}
