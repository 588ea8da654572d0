package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"karaokesync/internal/alignment"
	"karaokesync/internal/config"
	"karaokesync/internal/history"
	"karaokesync/internal/logging"
	"karaokesync/internal/lrc"
	"karaokesync/internal/lyrics"
	"karaokesync/internal/srt"
)

func newLRCCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		lyricsOut  string
		tail       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "lrc2srt <song.lrc>",
		Short: "Convert line-synchronized LRC lyrics to SRT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("tail") {
				tail = time.Duration(cfg.Karaoke.LRCTailSeconds) * time.Second
			}

			run := &history.Run{
				ID:         history.NewRunID(),
				Command:    "lrc2srt",
				InputPath:  args[0],
				OutputPath: strings.TrimSpace(outputPath),
				StartedAt:  time.Now(),
			}
			runCtx := logging.WithRunID(cmd.Context(), run.ID)
			logger = logging.WithContext(runCtx, logging.NewComponentLogger(logger, "lrc"))

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			parsed, err := lrc.Parse(bytes.NewReader(data))
			if err != nil {
				run.ErrorMessage = err.Error()
				run.Duration = time.Since(run.StartedAt)
				ctx.recordRun(runCtx, logger, run)
				return err
			}
			blocks := parsed.Blocks(tail)
			logger.Info("lrc converted",
				logging.Int("lines", len(parsed.Lines)),
				logging.Int("blocks", len(blocks)),
				logging.Duration("offset", parsed.Offset),
			)

			toStdout, err := writeResult(cmd, outputPath, srt.Encode(blocks), false)
			if err != nil {
				return err
			}
			if lyricsOut != "" {
				text := strings.Join(parsed.Texts(), "\n") + "\n"
				if _, err := writeResult(cmd, lyricsOut, text, false); err != nil {
					return err
				}
			}

			run.Total = len(blocks)
			run.Reconstructed = len(blocks)
			run.Duration = time.Since(run.StartedAt)
			ctx.recordRun(runCtx, logger, run)

			if !toStdout {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d blocks to %s\n", len(blocks), outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output SRT file (default stdout)")
	cmd.Flags().StringVar(&lyricsOut, "lyrics-out", "", "Also write the plain lyric lines to this file")
	cmd.Flags().DurationVar(&tail, "tail", 0, "Duration of the last line when the file has no length tag (default from config)")
	return cmd
}

func newHighlightCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		color      string
	)

	cmd := &cobra.Command{
		Use:   "highlight <alignment.json>",
		Short: "Render word-level alignment JSON as word-highlighted SRT",
		Long: `Render word-level alignment JSON as word-highlighted SRT.

The input is the JSON document produced by a forced aligner, with
segments[].words[] entries carrying word, start and end. Each word becomes one
block showing the full transcript with that word highlighted, which is the
input postprocess expects.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("color") {
				color = cfg.Karaoke.HighlightColor
			}
			color = strings.TrimSpace(color)
			if !config.ValidColor(color) {
				return fmt.Errorf("highlight color %q must be #rrggbb", color)
			}
			logger = logging.NewComponentLogger(logger, "alignment")

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			doc, err := alignment.Load(bytes.NewReader(data))
			if err != nil {
				return err
			}
			blocks := doc.HighlightBlocks(color)
			logger.Info("alignment rendered", logging.Int("blocks", len(blocks)))

			toStdout, err := writeResult(cmd, outputPath, srt.Encode(blocks), false)
			if err != nil {
				return err
			}
			if !toStdout {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d blocks to %s\n", len(blocks), outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output SRT file (default stdout)")
	cmd.Flags().StringVar(&color, "color", "", "Highlight color (default from config)")
	return cmd
}

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "transcript <lyrics.txt>",
		Short: "Print the flattened transcript to feed the aligner",
		Long: `Print the flattened transcript to feed the aligner.

Lines are whitespace-normalized and joined with single spaces, blank lines
included, so that character offsets in the aligner output line up with the
lyric file during postprocess.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			lines, err := lyrics.Read(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("read lyrics: %w", err)
			}
			index := lyrics.Build(lines)
			_, err = writeResult(cmd, outputPath, index.CleanText()+"\n", false)
			return err
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	return cmd
}
