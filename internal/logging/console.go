package logging

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one line per record:
//
//	2026-01-02T15:04:05Z WARN karaoke [1a2b3c4d]: message key=value
//
// The component and run ID become the line prefix instead of fields.
type consoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

func newConsoleHandler(w io.Writer, level slog.Leveler) *consoleHandler {
	return &consoleHandler{mu: new(sync.Mutex), w: w, level: level}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := slices.Clone(h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		attrs = appendQualified(attrs, h.prefix, attr)
		return true
	})

	var component, runID string
	var fields strings.Builder
	for _, attr := range attrs {
		switch {
		case attr.Key == FieldComponent && component == "":
			component = attr.Value.String()
		case attr.Key == FieldRunID && runID == "":
			runID = attr.Value.String()
		default:
			fields.WriteByte(' ')
			fields.WriteString(attr.Key)
			fields.WriteByte('=')
			fields.WriteString(formatValue(attr.Value))
		}
	}

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var line strings.Builder
	line.WriteString(ts.UTC().Format(time.RFC3339))
	line.WriteByte(' ')
	line.WriteString(record.Level.String())
	line.WriteByte(' ')
	if component != "" {
		line.WriteString(component)
		if runID != "" {
			line.WriteString(" [" + shortRunID(runID) + "]")
		}
		line.WriteString(": ")
	}
	line.WriteString(record.Message)
	line.WriteString(fields.String())
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = slices.Clone(h.attrs)
	for _, attr := range attrs {
		clone.attrs = appendQualified(clone.attrs, h.prefix, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// appendQualified flattens groups into dotted keys.
func appendQualified(dst []slog.Attr, prefix string, attr slog.Attr) []slog.Attr {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	if attr.Value.Kind() == slog.KindGroup {
		inner := prefix
		if attr.Key != "" {
			inner += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			dst = appendQualified(dst, inner, member)
		}
		return dst
	}
	attr.Key = prefix + attr.Key
	return append(dst, attr)
}

func formatValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindTime {
		s = v.Time().UTC().Format(time.RFC3339)
	}
	if s == "" || strings.ContainsAny(s, " \t\r\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// shortRunID keeps console lines compact; JSON output carries the full ID.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
