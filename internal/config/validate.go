package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Accepted enum values, in documentation order.
var (
	DisplayModes    = []string{"word", "line", "line_plus_next"}
	HighlightStyles = []string{"preserve", "line_all", "none"}
	logFormats      = []string{"console", "json"}
	logLevels       = []string{"debug", "info", "warn", "error"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateKaraoke(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.History.Enabled && strings.TrimSpace(c.Paths.HistoryDB) == "" {
		return errors.New("paths.history_db must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateKaraoke() error {
	if !slices.Contains(DisplayModes, c.Karaoke.DisplayMode) {
		return fmt.Errorf("karaoke.display_mode %q must be one of %s", c.Karaoke.DisplayMode, strings.Join(DisplayModes, ", "))
	}
	if !slices.Contains(HighlightStyles, c.Karaoke.HighlightStyle) {
		return fmt.Errorf("karaoke.highlight_style %q must be one of %s", c.Karaoke.HighlightStyle, strings.Join(HighlightStyles, ", "))
	}
	if !ValidColor(c.Karaoke.HighlightColor) {
		return fmt.Errorf("karaoke.highlight_color %q must be #rrggbb", c.Karaoke.HighlightColor)
	}
	if c.Karaoke.Workers < 0 {
		return errors.New("karaoke.workers must not be negative")
	}
	if c.Karaoke.LRCTailSeconds <= 0 {
		return errors.New("karaoke.lrc_tail_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level %q must be one of %s", c.Logging.Level, strings.Join(logLevels, ", "))
	}
	return nil
}

// ValidColor reports whether value is a #rrggbb color.
func ValidColor(value string) bool {
	if len(value) != 7 || value[0] != '#' {
		return false
	}
	for _, r := range value[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
