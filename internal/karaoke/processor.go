package karaoke

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"karaokesync/internal/logging"
	"karaokesync/internal/lyrics"
	"karaokesync/internal/srt"
	"karaokesync/internal/textutil"
)

// Processor renders timed blocks against a lyric index. It holds no mutable
// state and may be reused across calls.
type Processor struct {
	index  *lyrics.Index
	opts   Options
	logger *slog.Logger
}

// NewProcessor builds a processor over an index built once for the run.
func NewProcessor(index *lyrics.Index, opts Options, logger *slog.Logger) *Processor {
	return &Processor{
		index:  index,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "karaoke"),
	}
}

// Result is the ordered output of Process.
type Result struct {
	Blocks  []srt.Block
	Summary Summary
}

type outcome struct {
	block  srt.Block
	result Outcome
}

// Process renders every block. Output order matches input order regardless
// of worker scheduling. Per-block match failures are logged and recovered;
// the only error returned is context cancellation.
func (p *Processor) Process(ctx context.Context, blocks []srt.Block) (Result, error) {
	logger := logging.WithContext(ctx, p.logger)
	outcomes := make([]outcome, len(blocks))

	workers := p.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range blocks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			block, result := p.processBlock(logger, blocks[i])
			outcomes[i] = outcome{block: block, result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var res Result
	res.Blocks = make([]srt.Block, 0, len(blocks))
	for _, o := range outcomes {
		res.Summary.add(o.result)
		if o.result != OutcomeDropped {
			res.Blocks = append(res.Blocks, o.block)
		}
	}
	return res, nil
}

// ProcessBlock renders a single block.
func (p *Processor) ProcessBlock(block srt.Block) (srt.Block, Outcome) {
	return p.processBlock(p.logger, block)
}

func (p *Processor) processBlock(logger *slog.Logger, block srt.Block) (srt.Block, Outcome) {
	span, err := Extract(block.Text)
	if err != nil {
		if p.opts.Mode == ModeWord {
			logger.Debug("block has no highlight; dropping", logging.Int(logging.FieldBlock, block.Index))
			return srt.Block{}, OutcomeDropped
		}
		logger.Debug("block has no highlight; passing through", logging.Int(logging.FieldBlock, block.Index))
		return block, OutcomePassthrough
	}

	if p.opts.Mode == ModeWord {
		text, ok := RenderWord(p.opts, span)
		if !ok {
			return srt.Block{}, OutcomeDropped
		}
		return withText(block, text), OutcomeReconstructed
	}

	match, err := Locate(p.index, span.Offset(), span.Plain())
	switch {
	case err == nil:
		return withText(block, RenderLine(p.opts, p.index, span, match)), OutcomeReconstructed
	case errors.Is(err, ErrAmbiguous):
		logging.WarnWithContext(logger, "highlight matched by fallback search", "highlight_ambiguous",
			logging.Int(logging.FieldBlock, block.Index),
			logging.Int(logging.FieldLine, match.Line),
			logging.String("highlight", textutil.CollapseWhitespace(span.Plain())),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the aligner transcript matches the lyric file"),
			logging.String(logging.FieldImpact, "highlight placed at the nearest occurrence in the line"),
		)
		return withText(block, RenderLine(p.opts, p.index, span, match)), OutcomeAmbiguous
	default:
		attrs := []logging.Attr{
			logging.Int(logging.FieldBlock, block.Index),
			logging.String("highlight", textutil.CollapseWhitespace(span.Plain())),
			logging.Error(err),
			logging.String(logging.FieldImpact, "block emitted with its raw text"),
		}
		if line, score := textutil.Closest(span.Plain(), p.index.Normalized()); line >= 0 {
			attrs = append(attrs,
				logging.Int("closest_line", line),
				logging.Float64("closest_score", score),
			)
		}
		logging.WarnWithContext(logger, "highlight not found in lyrics", "highlight_not_found", attrs...)
		return block, OutcomePassthrough
	}
}
