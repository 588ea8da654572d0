package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"karaokesync/internal/config"
)

// LogFileName is the file written inside the configured log directory.
const LogFileName = "karaokesync.log"

// Options configures New.
type Options struct {
	// Level is debug, info, warn or error. Empty means info.
	Level string
	// Format is console or json. Empty means console.
	Format string
	// Outputs lists "stderr", "stdout" or file paths. Empty means stderr.
	Outputs []string
}

// New builds a logger writing to every output in opts.
func New(opts Options) (*slog.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	w, err := openOutputs(opts.Outputs)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		return slog.New(newConsoleHandler(w, level)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, ReplaceAttr: jsonAttr})), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig logs to stderr and, when a log directory is configured, to
// LogFileName inside it.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{})
	}
	outputs := []string{"stderr"}
	if dir := cfg.Paths.LogDir; dir != "" {
		outputs = append(outputs, filepath.Join(dir, LogFileName))
	}
	return New(Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Outputs: outputs,
	})
}

func parseLevel(value string) (slog.Level, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

func openOutputs(outputs []string) (io.Writer, error) {
	if len(outputs) == 0 {
		return os.Stderr, nil
	}
	seen := make(map[string]bool, len(outputs))
	writers := make([]io.Writer, 0, len(outputs))
	for _, out := range outputs {
		out = strings.TrimSpace(out)
		if out == "" || seen[out] {
			continue
		}
		seen[out] = true
		switch out {
		case "stderr":
			writers = append(writers, os.Stderr)
		case "stdout":
			writers = append(writers, os.Stdout)
		default:
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return nil, fmt.Errorf("ensure log directory: %w", err)
			}
			file, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", out, err)
			}
			writers = append(writers, file)
		}
	}
	switch len(writers) {
	case 0:
		return os.Stderr, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}

// jsonAttr renames the time key to ts and lowercases levels.
func jsonAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	}
	return attr
}
