// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gridcal/internal/schedule"
)

// ItemsLoadedMsg is sent when the persisted items have been loaded.
type ItemsLoadedMsg struct {
	Items []*schedule.Item
}

// ItemSavedMsg is sent when an item has been persisted.
type ItemSavedMsg struct {
	Item *schedule.Item
}

// ItemDeletedMsg is sent when an item has been deleted from storage.
type ItemDeletedMsg struct {
	ID string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadItems loads every persisted item.
func LoadItems(repo schedule.Repository) tea.Cmd {
	return func() tea.Msg {
		items, err := repo.ListItems(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ItemsLoadedMsg{Items: items}
	}
}

// SaveItem persists item.
func SaveItem(repo schedule.Repository, item *schedule.Item) tea.Cmd {
	return func() tea.Msg {
		if err := repo.SaveItem(context.Background(), item); err != nil {
			return ErrMsg{Err: err}
		}
		return ItemSavedMsg{Item: item}
	}
}

// DeleteItem removes the item with the given ID from storage.
func DeleteItem(repo schedule.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteItem(context.Background(), id); err != nil {
			return ErrMsg{Err: err}
		}
		return ItemDeletedMsg{ID: id}
	}
}

// Status emits a temporary status message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
