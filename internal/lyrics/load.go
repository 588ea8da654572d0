package lyrics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a lyric file into its ordered lines. Blank lines are preserved.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lyrics: %w", err)
	}
	defer file.Close()
	lines, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("read lyrics %s: %w", path, err)
	}
	return lines, nil
}

// Read splits r into lines, dropping line terminators and a leading BOM. A
// final newline does not produce an extra empty line.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
