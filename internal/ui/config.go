package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gridcal/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  gridcal config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.View.StartDay = promptValue(reader, "View start day", cfg.View.StartDay)
	cfg.View.NumDays = promptInt(reader, "View days", cfg.View.NumDays)
	cfg.View.RenderOffMins = promptInt(reader, "Render padding minutes", cfg.View.RenderOffMins)
	cfg.View.EnabledStartDate = promptValue(reader, "Enabled start date (empty for none)", cfg.View.EnabledStartDate)
	cfg.View.EnabledEndDate = promptValue(reader, "Enabled end date (empty for none)", cfg.View.EnabledEndDate)
	cfg.Selection.MaxItems = promptInt(reader, "Max selected items", cfg.Selection.MaxItems)
	cfg.Display.Use24HourTime = promptBool(reader, "Use 24-hour time", cfg.Display.Use24HourTime)
	cfg.Display.OmitMinutesForWholeHours = promptBool(reader, "Omit :00 on whole hours", cfg.Display.OmitMinutesForWholeHours)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[view]")
	fmt.Printf("  start_day          = %s\n", cfg.View.StartDay)
	fmt.Printf("  num_days           = %d\n", cfg.View.NumDays)
	fmt.Printf("  granularity_mins   = %d\n", cfg.View.GranularityMins)
	fmt.Printf("  render_off_mins    = %d\n", cfg.View.RenderOffMins)
	fmt.Printf("  %s\n", enabledRangeNote(cfg.View.EnabledStartDate, cfg.View.EnabledEndDate))
	fmt.Println("\n[selection]")
	fmt.Printf("  max_items          = %d\n", cfg.Selection.MaxItems)
	fmt.Println("\n[display]")
	fmt.Printf("  use_24_hour_time   = %t\n", cfg.Display.Use24HourTime)
	fmt.Printf("  omit_whole_hours   = %t\n", cfg.Display.OmitMinutesForWholeHours)
	fmt.Printf("  omit_meridian      = %t\n", cfg.Display.OmitMeridianSuffix)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path            = %s\n", cfg.Storage.DBPath)
}

// enabledRangeNote summarizes the enabled selection bounds for display.
func enabledRangeNote(start, end string) string {
	switch {
	case start == "" && end == "":
		return "all dates selectable"
	case end == "":
		return fmt.Sprintf("selectable from %s", start)
	case start == "":
		return fmt.Sprintf("selectable until %s", end)
	default:
		return fmt.Sprintf("selectable %s to %s", start, end)
	}
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		raw := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Printf("  Invalid number %q.\n", raw)
			continue
		}
		return n
	}
}

func promptBool(reader *bufio.Reader, label string, current bool) bool {
	for {
		raw := strings.ToLower(promptValue(reader, label, strconv.FormatBool(current)))
		b, err := strconv.ParseBool(raw)
		if err != nil {
			fmt.Printf("  Invalid value %q. Use true or false.\n", raw)
			continue
		}
		return b
	}
}
