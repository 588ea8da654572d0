package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"karaokesync/internal/history"
	"karaokesync/internal/karaoke"
	"karaokesync/internal/logging"
	"karaokesync/internal/lyrics"
)

type postprocessResult struct {
	RunID   string          `json:"run_id"`
	Output  string          `json:"output,omitempty"`
	Mode    string          `json:"display_mode"`
	Style   string          `json:"highlight_style"`
	Summary karaoke.Summary `json:"summary"`
}

func newPostprocessCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		mode       string
		style      string
		color      string
		workers    int
		backup     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "postprocess <aligned.srt> <lyrics.txt>",
		Short: "Rebuild karaoke subtitles from word-highlighted alignment output",
		Long: `Rebuild karaoke subtitles from word-highlighted alignment output.

Each input block is mapped back to the lyric line it belongs to and rendered
according to --mode (word, line, line_plus_next) and --style (preserve,
line_all, none). Blocks that cannot be located keep their original text.
Use "-" as the first argument to read the subtitles from stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			baseLogger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("mode") {
				mode = cfg.Karaoke.DisplayMode
			}
			if !cmd.Flags().Changed("style") {
				style = cfg.Karaoke.HighlightStyle
			}
			if !cmd.Flags().Changed("color") {
				color = cfg.Karaoke.HighlightColor
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Karaoke.Workers
			}
			if jsonOutput && isStdoutPath(outputPath) {
				return fmt.Errorf("--json requires --output: the subtitles already use stdout")
			}
			opts, err := karaoke.NewOptions(mode, style, color, workers)
			if err != nil {
				return err
			}

			run := &history.Run{
				ID:             history.NewRunID(),
				Command:        "postprocess",
				InputPath:      args[0],
				LyricsPath:     args[1],
				OutputPath:     strings.TrimSpace(outputPath),
				DisplayMode:    string(opts.Mode),
				HighlightStyle: string(opts.Style),
				StartedAt:      time.Now(),
			}
			runCtx := logging.WithRunID(cmd.Context(), run.ID)
			logger := logging.WithContext(runCtx, baseLogger)

			result, err := postprocess(runCtx, cmd, baseLogger, args, opts, outputPath, backup)
			run.Duration = time.Since(run.StartedAt)
			if err != nil {
				run.ErrorMessage = err.Error()
				logging.ErrorWithContext(logger, "postprocess failed", "postprocess_failed",
					logging.String("input", run.InputPath),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check that the input is SRT and the lyrics file is the aligner transcript source"),
				)
				ctx.recordRun(runCtx, logger, run)
				return err
			}

			summary := result.Summary
			run.Total = summary.Total
			run.Reconstructed = summary.Reconstructed
			run.Ambiguous = summary.Ambiguous
			run.Passthrough = summary.Passthrough
			run.Dropped = summary.Dropped
			run.Malformed = summary.Malformed
			ctx.recordRun(runCtx, logger, run)
			logger.Debug("postprocess complete",
				logging.String("output", run.OutputPath),
				logging.Bool("backup", backup),
				logging.Duration("duration", run.Duration),
			)

			if isStdoutPath(run.OutputPath) {
				printSummary(cmd.ErrOrStderr(), summary)
				return nil
			}
			if jsonOutput {
				return writeJSON(cmd, postprocessResult{
					RunID:   run.ID,
					Output:  run.OutputPath,
					Mode:    run.DisplayMode,
					Style:   run.HighlightStyle,
					Summary: summary,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d blocks to %s\n", summary.Emitted(), run.OutputPath)
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Display mode: word, line, line_plus_next (default from config)")
	cmd.Flags().StringVarP(&style, "style", "s", "", "Highlight style: preserve, line_all, none (default from config)")
	cmd.Flags().StringVar(&color, "color", "", "Highlight color for generated markup (default from config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel block workers, 0 for one per CPU (default from config)")
	cmd.Flags().BoolVar(&backup, "backup", false, "Copy an existing output file to <output>.bak before replacing it")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON (requires --output)")
	return cmd
}

func postprocess(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, args []string, opts karaoke.Options, outputPath string, backup bool) (karaoke.Output, error) {
	content, err := readInput(cmd, args[0])
	if err != nil {
		return karaoke.Output{}, err
	}
	lyricData, err := readInput(cmd, args[1])
	if err != nil {
		return karaoke.Output{}, err
	}
	lines, err := lyrics.Read(bytes.NewReader(lyricData))
	if err != nil {
		return karaoke.Output{}, fmt.Errorf("read lyrics: %w", err)
	}

	out, err := karaoke.Run(ctx, string(content), lines, opts, logger)
	if err != nil {
		return karaoke.Output{}, err
	}
	if _, err := writeResult(cmd, outputPath, out.Text, backup); err != nil {
		return karaoke.Output{}, err
	}
	return out, nil
}
