package karaoke

import (
	"fmt"
	"strings"

	"karaokesync/internal/config"
)

// DisplayMode selects how much lyric context each output block shows.
type DisplayMode string

// Display modes.
const (
	ModeWord         DisplayMode = "word"
	ModeLine         DisplayMode = "line"
	ModeLinePlusNext DisplayMode = "line_plus_next"
)

// HighlightStyle selects how the current token is marked in the output.
type HighlightStyle string

// Highlight styles.
const (
	StylePreserve HighlightStyle = "preserve"
	StyleLineAll  HighlightStyle = "line_all"
	StyleNone     HighlightStyle = "none"
)

// DefaultColor is the canonical highlight color emitted under StyleLineAll.
const DefaultColor = "#00ff00"

// ParseDisplayMode accepts the canonical names case-insensitively, with
// '-' allowed in place of '_'.
func ParseDisplayMode(value string) (DisplayMode, error) {
	switch mode := DisplayMode(canonical(value)); mode {
	case ModeWord, ModeLine, ModeLinePlusNext:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown display mode %q", value)
	}
}

// ParseHighlightStyle accepts the canonical names case-insensitively, with
// '-' allowed in place of '_'.
func ParseHighlightStyle(value string) (HighlightStyle, error) {
	switch style := HighlightStyle(canonical(value)); style {
	case StylePreserve, StyleLineAll, StyleNone:
		return style, nil
	default:
		return "", fmt.Errorf("unknown highlight style %q", value)
	}
}

func canonical(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
}

// Options is the immutable configuration of one run.
type Options struct {
	Mode  DisplayMode
	Style HighlightStyle
	// Color is used when markup is generated rather than preserved.
	Color string
	// Workers bounds per-block parallelism. Zero or less means one per CPU.
	Workers int
}

// DefaultOptions returns word mode with preserved highlights.
func DefaultOptions() Options {
	return Options{
		Mode:  ModeWord,
		Style: StylePreserve,
		Color: DefaultColor,
	}
}

// NewOptions parses the textual settings produced by configuration or flags.
func NewOptions(mode, style, color string, workers int) (Options, error) {
	m, err := ParseDisplayMode(mode)
	if err != nil {
		return Options{}, err
	}
	s, err := ParseHighlightStyle(style)
	if err != nil {
		return Options{}, err
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultColor
	}
	if !config.ValidColor(color) {
		return Options{}, fmt.Errorf("highlight color %q must be #rrggbb", color)
	}
	return Options{Mode: m, Style: s, Color: color, Workers: workers}, nil
}

func (o Options) color() string {
	if o.Color == "" {
		return DefaultColor
	}
	return o.Color
}
