// Package tui provides the interactive grid interface for gridcal.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gridcal/internal/config"
	"github.com/javiermolinar/gridcal/internal/schedule"
	"github.com/javiermolinar/gridcal/internal/tui/commands"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm        // Adding a new item
)

// Position represents a cursor position in the grid.
type Position struct {
	Day  int // Column index into the visible days
	Slot int // Row index into the slot axis
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   schedule.Repository
	config *config.Config

	// Engine state
	store     *schedule.Store
	window    *schedule.Window
	selection *schedule.Selection

	// Styles
	styles *Styles

	// State
	cursor  Position
	mode    Mode
	loading bool
	now     func() time.Time

	// Add form
	formCaption  textinput.Model
	formStart    textinput.Model
	formDuration textinput.Model
	formFocus    int

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow overrides the clock used to derive the initial view window.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model.
func New(repo schedule.Repository, cfg *config.Config, opts ...ModelOption) (*Model, error) {
	formCaption := textinput.New()
	formCaption.Placeholder = "Caption (optional)"
	formCaption.CharLimit = 128
	formCaption.Width = 32

	formStart := textinput.New()
	formStart.Placeholder = "09:00"
	formStart.CharLimit = 5
	formStart.Width = 8

	formDuration := textinput.New()
	formDuration.Placeholder = "60"
	formDuration.CharLimit = 4
	formDuration.Width = 8

	m := &Model{
		repo:         repo,
		config:       cfg,
		store:        schedule.NewStore(),
		selection:    schedule.NewSelection(cfg.Selection.MaxItems),
		styles:       NewStyles(),
		mode:         ModeNormal,
		loading:      true,
		now:          time.Now,
		formCaption:  formCaption,
		formStart:    formStart,
		formDuration: formDuration,
	}

	for _, opt := range opts {
		opt(m)
	}

	wcfg := cfg.WindowConfig()
	wcfg.Now = m.now
	window, err := schedule.NewWindow(m.store, wcfg)
	if err != nil {
		return nil, err
	}
	start, end, err := cfg.EnabledRange()
	if err != nil {
		return nil, err
	}
	window.SetEnabledRange(start, end)
	m.window = window

	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return commands.LoadItems(m.repo)
}

// Run starts the TUI.
func Run(repo schedule.Repository, cfg *config.Config) error {
	model, err := New(repo, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// rebuildStore replaces the in-memory items with the persisted set.
// IDs and captions are preserved by adding through the store.
func (m *Model) rebuildStore(items []*schedule.Item) {
	m.store.Purge()
	_ = m.store.Batch(func() error {
		for _, it := range items {
			_, err := m.store.AddItem(schedule.ItemSpec{
				ID:           it.ID,
				Day:          it.Day,
				StartMins:    it.StartMins,
				DurationMins: it.DurationMins,
				Caption:      it.Caption,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	m.pruneSelection()
	m.clampCursor()
}

// itemAt returns the item whose placement covers the given grid cell.
func (m *Model) itemAt(pos Position) *schedule.Item {
	days := m.window.VisibleDays()
	if pos.Day < 0 || pos.Day >= len(days) {
		return nil
	}
	for _, p := range m.window.PlaceDay(days[pos.Day]) {
		if p.Item == nil {
			continue
		}
		span := p.Span
		if span < 1 {
			span = 1
		}
		if pos.Slot >= p.SlotIndex && pos.Slot < p.SlotIndex+span {
			return p.Item
		}
	}
	return nil
}

// pruneSelection drops selected items that no longer exist in the store.
func (m *Model) pruneSelection() {
	for _, it := range m.selection.Items() {
		if !m.storeHas(it.ID) {
			m.selection.Toggle(it)
		}
	}
}

func (m *Model) storeHas(id string) bool {
	for _, b := range m.store.Buckets() {
		for _, it := range b.Items() {
			if it.ID == id {
				return true
			}
		}
	}
	return false
}

// clampCursor keeps the cursor inside the current grid dimensions.
func (m *Model) clampCursor() {
	if n := m.window.ViewNumDays(); m.cursor.Day >= n {
		m.cursor.Day = n - 1
	}
	if m.cursor.Day < 0 {
		m.cursor.Day = 0
	}
	if n := len(m.window.Slots()); m.cursor.Slot >= n {
		m.cursor.Slot = n - 1
	}
	if m.cursor.Slot < 0 {
		m.cursor.Slot = 0
	}
}
