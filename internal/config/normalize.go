package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(envDisplayMode); ok && strings.TrimSpace(value) != "" {
		c.Karaoke.DisplayMode = value
	}
	if value, ok := os.LookupEnv(envHighlightStyle); ok && strings.TrimSpace(value) != "" {
		c.Karaoke.HighlightStyle = value
	}
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeKaraoke()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

// canonicalEnum lowercases and maps dashes to underscores so "line-plus-next"
// and "LINE_PLUS_NEXT" both become "line_plus_next".
func canonicalEnum(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.ReplaceAll(value, "-", "_")
}

func (c *Config) normalizeKaraoke() {
	c.Karaoke.DisplayMode = canonicalEnum(c.Karaoke.DisplayMode)
	if c.Karaoke.DisplayMode == "" {
		c.Karaoke.DisplayMode = defaultDisplayMode
	}
	c.Karaoke.HighlightStyle = canonicalEnum(c.Karaoke.HighlightStyle)
	if c.Karaoke.HighlightStyle == "" {
		c.Karaoke.HighlightStyle = defaultHighlightStyle
	}
	c.Karaoke.HighlightColor = strings.ToLower(strings.TrimSpace(c.Karaoke.HighlightColor))
	if c.Karaoke.HighlightColor == "" {
		c.Karaoke.HighlightColor = defaultHighlightColor
	}
	if c.History.ListLimit <= 0 {
		c.History.ListLimit = defaultHistoryListLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
