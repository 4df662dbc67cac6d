package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gridcal/internal/schedule"
	"github.com/javiermolinar/gridcal/internal/tui/commands"
)

// Form field indices.
const (
	formFieldCaption = iota
	formFieldStart
	formFieldDuration
	formFieldCount
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeForm:
		return m.handleFormKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
	case "l", "right":
		if m.cursor.Day < m.window.ViewNumDays()-1 {
			m.cursor.Day++
		}
	case "j", "down":
		if m.cursor.Slot < len(m.window.Slots())-1 {
			m.cursor.Slot++
		}
	case "k", "up":
		if m.cursor.Slot > 0 {
			m.cursor.Slot--
		}
	case "g", "home":
		m.cursor.Slot = 0
	case "G", "end":
		m.cursor.Slot = len(m.window.Slots()) - 1

	// Week paging
	case "H", "shift+left", "[":
		m.window.ChangeViewPage(-1)
		m.clampCursor()
	case "L", "shift+right", "]":
		m.window.ChangeViewPage(1)
		m.clampCursor()

	// Selection
	case " ", "enter":
		if it := m.itemAt(m.cursor); it != nil {
			m.selection.Toggle(it)
		}
	case "c":
		m.selection.Clear()

	// Actions
	case "a":
		return m.openForm()
	case "d":
		if it := m.itemAt(m.cursor); it != nil {
			return m, commands.DeleteItem(m.repo, it.ID)
		}
	case "r":
		m.loading = true
		return m, commands.LoadItems(m.repo)
	}

	return m, nil
}

// openForm switches to the add form, targeting the day under the cursor.
func (m Model) openForm() (tea.Model, tea.Cmd) {
	days := m.window.VisibleDays()
	if len(days) == 0 || !m.window.DateEnabled(days[m.cursor.Day]) {
		return m, commands.Status("Day is outside the selectable range")
	}

	m.mode = ModeForm
	m.formFocus = formFieldCaption
	m.formCaption.SetValue("")
	m.formStart.SetValue("")
	m.formDuration.SetValue("")
	m.formCaption.Focus()
	m.formStart.Blur()
	m.formDuration.Blur()
	return m, textinput.Blink
}

// handleFormKeys handles keys in the add form.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return m, nil

	case "tab", "down":
		return m.focusFormField((m.formFocus + 1) % formFieldCount)
	case "shift+tab", "up":
		return m.focusFormField((m.formFocus + formFieldCount - 1) % formFieldCount)

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m = m.updateFocusedInput(msg, &cmd)
	return m, cmd
}

func (m Model) focusFormField(field int) (tea.Model, tea.Cmd) {
	m.formFocus = field
	m.formCaption.Blur()
	m.formStart.Blur()
	m.formDuration.Blur()
	switch field {
	case formFieldCaption:
		m.formCaption.Focus()
	case formFieldStart:
		m.formStart.Focus()
	case formFieldDuration:
		m.formDuration.Focus()
	}
	return m, textinput.Blink
}

// submitForm validates the form, adds the item to the store, and persists it.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	startMins, err := schedule.ParseClock(strings.TrimSpace(m.formStart.Value()))
	if err != nil {
		return m, commands.Status(fmt.Sprintf("Invalid start time: %v", err))
	}
	duration, err := strconv.Atoi(strings.TrimSpace(m.formDuration.Value()))
	if err != nil || duration < 1 {
		return m, commands.Status("Duration must be a positive number of minutes")
	}

	spec := schedule.ItemSpec{
		Day:          m.window.VisibleDays()[m.cursor.Day],
		StartMins:    startMins,
		DurationMins: duration,
	}
	if caption := strings.TrimSpace(m.formCaption.Value()); caption != "" {
		spec.Caption = schedule.LiteralCaption(caption)
	}

	item, err := m.store.AddItem(spec)
	if err != nil {
		return m, commands.Status(fmt.Sprintf("Invalid item: %v", err))
	}

	m.mode = ModeNormal
	return m, commands.SaveItem(m.repo, item)
}
