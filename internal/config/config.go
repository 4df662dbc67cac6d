// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/gridcal/internal/dateutil"
	"github.com/javiermolinar/gridcal/internal/schedule"
)

// Config holds the application configuration.
type Config struct {
	View      ViewConfig      `toml:"view"`
	Selection SelectionConfig `toml:"selection"`
	Display   DisplayConfig   `toml:"display"`
	Storage   StorageConfig   `toml:"storage"`
}

// ViewConfig holds the window and grid settings.
type ViewConfig struct {
	StartDay         string `toml:"start_day"`          // weekday name, e.g. "monday"
	NumDays          int    `toml:"num_days"`           // width of the rendering window
	GranularityMins  int    `toml:"granularity_mins"`   // fixed at 30, see Validate
	RenderOffMins    int    `toml:"render_off_mins"`    // padding around the time bounds
	EnabledStartDate string `toml:"enabled_start_date"` // optional, YYYY-MM-DD
	EnabledEndDate   string `toml:"enabled_end_date"`   // optional, YYYY-MM-DD
}

// SelectionConfig holds selection settings.
type SelectionConfig struct {
	MaxItems int `toml:"max_items"`
}

// DisplayConfig holds time display settings.
type DisplayConfig struct {
	Use24HourTime            bool `toml:"use_24_hour_time"`
	OmitMinutesForWholeHours bool `toml:"omit_minutes_for_whole_hours"`
	OmitMeridianSuffix       bool `toml:"omit_meridian_suffix"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			StartDay:        "monday",
			NumDays:         schedule.DefaultViewNumDays,
			GranularityMins: schedule.DefaultGranularityMins,
			RenderOffMins:   schedule.DefaultRenderOffMins,
		},
		Selection: SelectionConfig{
			MaxItems: schedule.DefaultMaxSelectedItems,
		},
		Display: DisplayConfig{
			Use24HourTime: true,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gridcal.db"
	}
	return filepath.Join(home, ".local", "share", "gridcal", "gridcal.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "gridcal", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the default config path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRIDCAL_VIEW_START_DAY"); v != "" {
		cfg.View.StartDay = v
	}
	if v := os.Getenv("GRIDCAL_VIEW_NUM_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.View.NumDays = n
		}
	}
	if v := os.Getenv("GRIDCAL_GRANULARITY_MINS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.View.GranularityMins = n
		}
	}
	if v := os.Getenv("GRIDCAL_RENDER_OFF_MINS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.View.RenderOffMins = n
		}
	}
	if v := os.Getenv("GRIDCAL_ENABLED_START_DATE"); v != "" {
		cfg.View.EnabledStartDate = v
	}
	if v := os.Getenv("GRIDCAL_ENABLED_END_DATE"); v != "" {
		cfg.View.EnabledEndDate = v
	}
	if v := os.Getenv("GRIDCAL_MAX_SELECTED_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Selection.MaxItems = n
		}
	}
	if v := os.Getenv("GRIDCAL_USE_24_HOUR_TIME"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Display.Use24HourTime = b
		}
	}
	if v := os.Getenv("GRIDCAL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := dateutil.ParseWeekday(c.View.StartDay); err != nil {
		return fmt.Errorf("view.start_day: %w", err)
	}
	if c.View.NumDays < 1 {
		return errors.New("view.num_days must be at least 1")
	}
	// Granularity is frozen: other values are a known slot-generation hazard.
	if c.View.GranularityMins != schedule.DefaultGranularityMins {
		return fmt.Errorf("view.granularity_mins: %w: got %d, only %d is supported",
			schedule.ErrUnsupportedGranularity, c.View.GranularityMins, schedule.DefaultGranularityMins)
	}
	if c.View.RenderOffMins < 0 {
		return errors.New("view.render_off_mins cannot be negative")
	}
	if c.Selection.MaxItems < 1 {
		return errors.New("selection.max_items must be at least 1")
	}
	if c.Storage.DBPath == "" {
		return errors.New("storage.db_path must be set")
	}

	start, end, err := c.EnabledRange()
	if err != nil {
		return err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("view.enabled_end_date: %w", dateutil.ErrEndDateBeforeStart)
	}
	return nil
}

// EnabledRange parses the optional enabled date bounds.
func (c *Config) EnabledRange() (start, end time.Time, err error) {
	if c.View.EnabledStartDate != "" {
		start, err = dateutil.ParseDate(c.View.EnabledStartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("view.enabled_start_date: %w", err)
		}
	}
	if c.View.EnabledEndDate != "" {
		end, err = dateutil.ParseDate(c.View.EnabledEndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("view.enabled_end_date: %w", err)
		}
	}
	return start, end, nil
}

// WindowConfig translates the view settings into a schedule.WindowConfig.
func (c *Config) WindowConfig() schedule.WindowConfig {
	day, err := dateutil.ParseWeekday(c.View.StartDay)
	if err != nil {
		day = schedule.DefaultViewStartDay
	}
	return schedule.WindowConfig{
		ViewStartDay:    day,
		ViewNumDays:     c.View.NumDays,
		GranularityMins: c.View.GranularityMins,
		RenderOffMins:   c.View.RenderOffMins,
		Now:             time.Now,
	}
}

// NewWindow builds a configured Window over store, applying the enabled
// selection bounds.
func (c *Config) NewWindow(store *schedule.Store) (*schedule.Window, error) {
	w, err := schedule.NewWindow(store, c.WindowConfig())
	if err != nil {
		return nil, err
	}
	start, end, err := c.EnabledRange()
	if err != nil {
		return nil, err
	}
	w.SetEnabledRange(start, end)
	return w, nil
}

// FormatOpts translates the display settings into schedule.FormatOpts.
func (c *Config) FormatOpts() schedule.FormatOpts {
	return schedule.FormatOpts{
		Use24HourTime:            c.Display.Use24HourTime,
		OmitMinutesForWholeHours: c.Display.OmitMinutesForWholeHours,
		OmitMeridianSuffix:       c.Display.OmitMeridianSuffix,
	}
}
