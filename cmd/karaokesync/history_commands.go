package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"karaokesync/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded runs",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

type runView struct {
	ID             string    `json:"id"`
	Command        string    `json:"command"`
	Input          string    `json:"input"`
	Lyrics         string    `json:"lyrics,omitempty"`
	Output         string    `json:"output,omitempty"`
	DisplayMode    string    `json:"display_mode,omitempty"`
	HighlightStyle string    `json:"highlight_style,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	DurationMS     int64     `json:"duration_ms"`
	Total          int       `json:"total"`
	Reconstructed  int       `json:"reconstructed"`
	Ambiguous      int       `json:"ambiguous"`
	Passthrough    int       `json:"passthrough"`
	Dropped        int       `json:"dropped"`
	Malformed      int       `json:"malformed"`
	Error          string    `json:"error,omitempty"`
}

func newRunView(run history.Run) runView {
	return runView{
		ID:             run.ID,
		Command:        run.Command,
		Input:          run.InputPath,
		Lyrics:         run.LyricsPath,
		Output:         run.OutputPath,
		DisplayMode:    run.DisplayMode,
		HighlightStyle: run.HighlightStyle,
		StartedAt:      run.StartedAt,
		DurationMS:     run.Duration.Milliseconds(),
		Total:          run.Total,
		Reconstructed:  run.Reconstructed,
		Ambiguous:      run.Ambiguous,
		Passthrough:    run.Passthrough,
		Dropped:        run.Dropped,
		Malformed:      run.Malformed,
		Error:          run.ErrorMessage,
	}
}

func errHistoryDisabled() error {
	return errors.New("history is disabled (set history.enabled = true)")
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errHistoryDisabled()
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.History.ListLimit
			}

			var runs []history.Run
			if err := ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				var listErr error
				runs, listErr = store.List(cmd.Context(), limit)
				return listErr
			}); err != nil {
				return err
			}

			if jsonOutput {
				views := make([]runView, 0, len(runs))
				for _, run := range runs {
					views = append(views, newRunView(run))
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				status := "ok"
				if run.Failed() {
					status = "failed"
				}
				rows = append(rows, []string{
					shortID(run.ID),
					run.Command,
					humanize.Time(run.StartedAt),
					run.InputPath,
					strconv.Itoa(run.Total),
					strconv.Itoa(run.Ambiguous),
					strconv.Itoa(run.Passthrough),
					status,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Command", "Started", "Input", "Blocks", "Ambiguous", "Passthrough", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum runs to show, 0 for all (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run; an unambiguous ID prefix is enough",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errHistoryDisabled()
			}

			var run history.Run
			if err := ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				var getErr error
				run, getErr = store.Get(cmd.Context(), args[0])
				return getErr
			}); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, newRunView(run))
			}

			rows := [][]string{
				{"ID", run.ID},
				{"Command", run.Command},
				{"Started", fmt.Sprintf("%s (%s)", run.StartedAt.Local().Format(time.DateTime), humanize.Time(run.StartedAt))},
				{"Duration", run.Duration.String()},
				{"Input", run.InputPath},
			}
			if run.LyricsPath != "" {
				rows = append(rows, []string{"Lyrics", run.LyricsPath})
			}
			if run.OutputPath != "" {
				rows = append(rows, []string{"Output", run.OutputPath})
			}
			if run.DisplayMode != "" {
				rows = append(rows, []string{"Mode", run.DisplayMode + " / " + run.HighlightStyle})
			}
			rows = append(rows,
				[]string{"Blocks", strconv.Itoa(run.Total)},
				[]string{"Reconstructed", strconv.Itoa(run.Reconstructed)},
				[]string{"Ambiguous", strconv.Itoa(run.Ambiguous)},
				[]string{"Passthrough", strconv.Itoa(run.Passthrough)},
				[]string{"Dropped", strconv.Itoa(run.Dropped)},
				[]string{"Malformed", strconv.Itoa(run.Malformed)},
			)
			if run.Failed() {
				rows = append(rows, []string{"Error", run.ErrorMessage})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errHistoryDisabled()
			}
			var removed int64
			if err := ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				var clearErr error
				removed, clearErr = store.Clear(cmd.Context())
				return clearErr
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs\n", removed)
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
