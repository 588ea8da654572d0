package srt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// arrow separates the start and end timestamps on a timing line.
const arrow = "-->"

// ParseTimestamp parses an SRT timestamp of the form HH:MM:SS,mmm.
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	clock, millisText, ok := strings.Cut(value, ",")
	if !ok || len(millisText) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 || len(hms[0]) < 2 || len(hms[1]) != 2 || len(hms[2]) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := parseDigits(hms[0])
	minutes, errM := parseDigits(hms[1])
	seconds, errS := parseDigits(hms[2])
	millis, errMS := parseDigits(millisText)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if minutes > 59 || seconds > 59 {
		return 0, fmt.Errorf("invalid timestamp %q: field out of range", value)
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
	return total, nil
}

// FormatTimestamp renders d as HH:MM:SS,mmm. Negative durations clamp to zero.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMillis := d.Milliseconds()
	hours := totalMillis / 3_600_000
	minutes := (totalMillis % 3_600_000) / 60_000
	seconds := (totalMillis % 60_000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// parseTiming splits a "start --> end" line into its two timestamps.
func parseTiming(line string) (time.Duration, time.Duration, error) {
	startText, endText, ok := strings.Cut(line, arrow)
	if !ok {
		return 0, 0, fmt.Errorf("missing %q", arrow)
	}
	start, err := ParseTimestamp(startText)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(endText)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseDigits(value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("empty field")
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
	}
	return strconv.Atoi(value)
}
