package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gridcal/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.ItemsLoadedMsg:
		m.rebuildStore(msg.Items)
		m.loading = false
		return m, nil

	case commands.ItemSavedMsg:
		return m, commands.Status(fmt.Sprintf("Added %s", msg.Item.ID))

	case commands.ItemDeletedMsg:
		// Reload from storage; the in-memory store has no per-item removal.
		m.loading = true
		return m, tea.Batch(
			commands.Status(fmt.Sprintf("Deleted %s", msg.ID)),
			commands.LoadItems(m.repo),
		)

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Forward everything else to the focused form input.
	if m.mode == ModeForm {
		var cmd tea.Cmd
		m = m.updateFocusedInput(msg, &cmd)
		return m, cmd
	}

	return m, nil
}

// updateFocusedInput routes msg to the form field that currently has focus.
func (m Model) updateFocusedInput(msg tea.Msg, cmd *tea.Cmd) Model {
	switch m.formFocus {
	case formFieldCaption:
		m.formCaption, *cmd = m.formCaption.Update(msg)
	case formFieldStart:
		m.formStart, *cmd = m.formStart.Update(msg)
	case formFieldDuration:
		m.formDuration, *cmd = m.formDuration.Update(msg)
	}
	return m
}
