package config

const (
	defaultLogDir           = "~/.local/share/karaokesync/logs"
	defaultHistoryDB        = "~/.local/share/karaokesync/history.db"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultDisplayMode      = "word"
	defaultHighlightStyle   = "preserve"
	defaultHighlightColor   = "#00ff00"
	defaultLRCTailSeconds   = 5
	defaultHistoryListLimit = 20
)

// Environment variables that override file values.
const (
	envDisplayMode    = "KARAOKESYNC_DISPLAY_MODE"
	envHighlightStyle = "KARAOKESYNC_HIGHLIGHT_STYLE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Karaoke: Karaoke{
			DisplayMode:    defaultDisplayMode,
			HighlightStyle: defaultHighlightStyle,
			HighlightColor: defaultHighlightColor,
			LRCTailSeconds: defaultLRCTailSeconds,
		},
		History: History{
			Enabled:   true,
			ListLimit: defaultHistoryListLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
