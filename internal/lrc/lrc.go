package lrc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"karaokesync/internal/srt"
)

// ErrNoTimestamps is returned when the input carries no timed line.
var ErrNoTimestamps = errors.New("lrc: no timestamped lines")

// DefaultTail is how long the final line lasts when no length tag is given.
const DefaultTail = 5 * time.Second

// Line is a single timestamped lyric line.
type Line struct {
	Time time.Duration
	Text string
}

// Lyrics is a parsed LRC file. Lines are sorted by time; lines sharing a
// timestamp keep their file order.
type Lyrics struct {
	Lines  []Line
	Title  string
	Artist string
	Album  string
	// Offset is the [offset:] tag, already applied to every line.
	Offset time.Duration
	// Length is the [length:] tag, or zero when absent.
	Length time.Duration
}

var (
	// [mm:ss], [mm:ss.xx] or [mm:ss.xxx]
	timestampRe = regexp.MustCompile(`\[(\d{1,3}):(\d{1,2})(?:[.:](\d{1,3}))?\]`)
	// [tag:value]
	metadataRe = regexp.MustCompile(`^\[([a-zA-Z]+):(.*)\]$`)
)

// Parse reads LRC content. Timestamps shifted below zero by a positive
// offset clamp to zero.
func Parse(r io.Reader) (*Lyrics, error) {
	lyrics := &Lyrics{}
	type rawLine struct {
		stamp time.Duration
		text  string
	}
	var raw []rawLine
	var length string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if line == "" {
			continue
		}

		if meta := metadataRe.FindStringSubmatch(line); meta != nil && !timestampRe.MatchString(line) {
			value := strings.TrimSpace(meta[2])
			switch strings.ToLower(meta[1]) {
			case "ar":
				lyrics.Artist = value
			case "ti":
				lyrics.Title = value
			case "al":
				lyrics.Album = value
			case "offset":
				ms, err := strconv.Atoi(strings.TrimPrefix(value, "+"))
				if err != nil {
					return nil, fmt.Errorf("lrc: invalid offset %q: %w", value, err)
				}
				lyrics.Offset = time.Duration(ms) * time.Millisecond
			case "length":
				length = value
			}
			continue
		}

		matches := timestampRe.FindAllStringSubmatchIndex(line, -1)
		if len(matches) == 0 {
			continue
		}
		text := strings.TrimSpace(line[matches[len(matches)-1][1]:])
		for _, match := range matches {
			raw = append(raw, rawLine{stamp: parseStamp(line, match), text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lrc: read: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoTimestamps
	}

	if length != "" {
		d, err := ParseLength(length)
		if err != nil {
			return nil, err
		}
		lyrics.Length = shift(d, lyrics.Offset)
	}

	lyrics.Lines = make([]Line, len(raw))
	for i, rl := range raw {
		lyrics.Lines[i] = Line{Time: shift(rl.stamp, lyrics.Offset), Text: rl.text}
	}
	sort.SliceStable(lyrics.Lines, func(i, j int) bool {
		return lyrics.Lines[i].Time < lyrics.Lines[j].Time
	})
	return lyrics, nil
}

// ParseLength parses a length tag value such as "03:25" or "3:25.50".
func ParseLength(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	match := timestampRe.FindStringSubmatchIndex("[" + value + "]")
	if match == nil || match[0] != 0 || match[1] != len(value)+2 {
		return 0, fmt.Errorf("lrc: invalid length %q", value)
	}
	return parseStamp("["+value+"]", match), nil
}

// Blocks converts the lyrics to timed blocks. A line ends where the next
// distinct timestamp begins. The last line ends at Length when it is later
// than the line's start, otherwise tail after it. Blank lines and lines with
// no duration produce no block.
func (l *Lyrics) Blocks(tail time.Duration) []srt.Block {
	if tail <= 0 {
		tail = DefaultTail
	}
	var blocks []srt.Block
	for i, line := range l.Lines {
		if line.Text == "" {
			continue
		}
		end := time.Duration(-1)
		for _, next := range l.Lines[i+1:] {
			if next.Time > line.Time {
				end = next.Time
				break
			}
		}
		if end < 0 {
			end = line.Time + tail
			if l.Length > line.Time {
				end = l.Length
			}
		}
		blocks = append(blocks, srt.Block{
			Index: len(blocks) + 1,
			Start: line.Time,
			End:   end,
			Text:  line.Text,
		})
	}
	return blocks
}

// Texts returns the text of every non-blank line in time order, the plain
// lyric file matching these lyrics.
func (l *Lyrics) Texts() []string {
	var out []string
	for _, line := range l.Lines {
		if line.Text != "" {
			out = append(out, line.Text)
		}
	}
	return out
}

func parseStamp(line string, match []int) time.Duration {
	minutes, _ := strconv.Atoi(line[match[2]:match[3]])
	seconds, _ := strconv.Atoi(line[match[4]:match[5]])
	var millis int
	if match[6] >= 0 {
		frac := line[match[6]:match[7]]
		millis, _ = strconv.Atoi(frac)
		switch len(frac) {
		case 1:
			millis *= 100
		case 2:
			millis *= 10
		}
	}
	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
}

func shift(d, offset time.Duration) time.Duration {
	d -= offset
	if d < 0 {
		return 0
	}
	return d
}
