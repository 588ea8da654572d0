package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"karaokesync/internal/config"
	"karaokesync/internal/fileutil"
	"karaokesync/internal/karaoke"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printSummary renders a table on a terminal and a single line otherwise.
func printSummary(w io.Writer, summary karaoke.Summary) {
	if !isTerminal(w) {
		fmt.Fprintf(w, "Summary: %s\n", summary)
		return
	}
	rows := [][]string{
		{"Input blocks", strconv.Itoa(summary.Total)},
		{"Reconstructed", strconv.Itoa(summary.Reconstructed)},
		{"Ambiguous", strconv.Itoa(summary.Ambiguous)},
		{"Passthrough", strconv.Itoa(summary.Passthrough)},
		{"Dropped", strconv.Itoa(summary.Dropped)},
		{"Malformed", strconv.Itoa(summary.Malformed)},
		{"Output blocks", strconv.Itoa(summary.Emitted())},
	}
	fmt.Fprintln(w, renderTable([]string{"Blocks", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeResult writes content to path atomically, or to stdout when path is
// empty or "-". It reports whether stdout was used.
func writeResult(cmd *cobra.Command, path, content string, backup bool) (bool, error) {
	path = strings.TrimSpace(path)
	if isStdoutPath(path) {
		_, err := io.WriteString(cmd.OutOrStdout(), content)
		return true, err
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return false, fmt.Errorf("resolve output path: %w", err)
	}
	if backup {
		if _, err := fileutil.Backup(expanded); err != nil {
			return false, err
		}
	}
	if err := fileutil.WriteAtomic(expanded, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write output: %w", err)
	}
	return false, nil
}

// isStdoutPath reports whether an output path selects stdout.
func isStdoutPath(path string) bool {
	path = strings.TrimSpace(path)
	return path == "" || path == "-"
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
