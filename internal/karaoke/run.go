package karaoke

import (
	"context"
	"fmt"
	"log/slog"

	"karaokesync/internal/logging"
	"karaokesync/internal/lyrics"
	"karaokesync/internal/srt"
)

// Output is the encoded result of one run.
type Output struct {
	Text    string
	Blocks  []srt.Block
	Summary Summary
}

// Run parses content, renders it against lines and encodes the result.
// A content that matches no block at all aborts with a srt.FormatError and
// no output.
func Run(ctx context.Context, content string, lines []string, opts Options, logger *slog.Logger) (Output, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "karaoke"))

	parsed, err := srt.Parse(content)
	if err != nil {
		return Output{}, fmt.Errorf("parse timed text: %w", err)
	}
	for _, skipped := range parsed.Skipped {
		logging.WarnWithContext(logger, "skipping malformed block", "srt_block_skipped",
			logging.Int(logging.FieldLine, skipped.Line),
			logging.String("reason", skipped.Reason),
			logging.String(logging.FieldImpact, "block omitted from output"),
		)
	}

	index := lyrics.Build(lines)
	logger.Debug("lyrics indexed",
		logging.Int("lines", index.Len()),
		logging.Int("length", index.TotalLength()),
	)

	res, err := NewProcessor(index, opts, logger).Process(ctx, parsed.Blocks)
	if err != nil {
		return Output{}, err
	}
	res.Summary.Malformed = len(parsed.Skipped)

	logger.Info("timed text reconstructed",
		logging.String("mode", string(opts.Mode)),
		logging.String("style", string(opts.Style)),
		logging.Int("blocks", res.Summary.Total),
		logging.Int("emitted", res.Summary.Emitted()),
		logging.Int("ambiguous", res.Summary.Ambiguous),
		logging.Int("passthrough", res.Summary.Passthrough),
		logging.Int("dropped", res.Summary.Dropped),
	)

	return Output{
		Text:    srt.Encode(res.Blocks),
		Blocks:  res.Blocks,
		Summary: res.Summary,
	}, nil
}
