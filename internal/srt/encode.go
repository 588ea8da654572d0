package srt

import (
	"strconv"
	"strings"
)

// Separator terminates every encoded block, including the last one.
const Separator = "\n\n"

// Encode renders blocks in order, renumbering them from 1. Source indexes are
// ignored so gaps left by dropped blocks disappear. Blank text lines are
// removed because they would end the block early; a block left with no text
// at all is omitted.
func Encode(blocks []Block) string {
	var sb strings.Builder
	next := 1
	for _, block := range blocks {
		text := visibleText(block.Text)
		if text == "" {
			continue
		}
		sb.WriteString(strconv.Itoa(next))
		sb.WriteByte('\n')
		sb.WriteString(FormatTimestamp(block.Start))
		sb.WriteString(" " + arrow + " ")
		sb.WriteString(FormatTimestamp(block.End))
		sb.WriteByte('\n')
		sb.WriteString(text)
		sb.WriteString(Separator)
		next++
	}
	return sb.String()
}

func visibleText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.Join(kept, "\n")
}
