package batch

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/muhammadchandra19/book-replay/internal/app/replay"
	orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/book-replay/internal/infrastructure/csvfeed"
	"github.com/muhammadchandra19/book-replay/internal/usecase/export"
	"github.com/muhammadchandra19/book-replay/pkg/errors"
	"github.com/muhammadchandra19/book-replay/pkg/logger"
	"github.com/muhammadchandra19/book-replay/pkg/util"
	"golang.org/x/sync/errgroup"
)

// Options configures a batch of replays.
type Options struct {
	Replay      *replay.Options
	Files       csvfeed.Files
	SearchDepth int
	Parallelism int
}

// Outcome is the result of replaying one instrument directory.
type Outcome struct {
	Dir        string
	Instrument string
	RunID      string
	Output     string
	Snapshots  int
	Stats      orderbookv1.Statistics
	Counters   replay.Counters
	Elapsed    time.Duration
	Err        error
}

// Runner replays instrument directories, each with its own engine and book.
type Runner struct {
	options *Options
	logger  logger.Interface
	sinks   []snapshotv1.Sink
}

// NewRunner creates a batch runner. The shared sinks receive the snapshots of
// every instrument after its CSV output is written.
func NewRunner(options *Options, logger logger.Interface, sinks ...snapshotv1.Sink) *Runner {
	return &Runner{
		options: options,
		logger:  logger,
		sinks:   sinks,
	}
}

// Instrument derives the instrument name from its directory.
func Instrument(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Base(dir)
}

// Run replays every directory with at most Parallelism running at once. A
// failing instrument does not stop the others; failures are reported in the
// outcomes and returned together.
func (r *Runner) Run(ctx context.Context, dirs []string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.options.Parallelism, 1))

	var mu sync.Mutex
	failed := errors.NewBaseError()

	for i, dir := range dirs {
		g.Go(func() error {
			outcomes[i] = r.replay(ctx, dir)
			if err := outcomes[i].Err; err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				mu.Lock()
				failed.AddErrorDetails(errors.NewErrorDetails(
					fmt.Sprintf("%s: %s", outcomes[i].Instrument, err.Error()),
					errorCode(err),
					outcomes[i].Instrument,
				))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if failed.HasDetails() {
		return outcomes, failed
	}
	return outcomes, nil
}

func (r *Runner) replay(ctx context.Context, dir string) Outcome {
	start := time.Now()
	outcome := Outcome{
		Dir:        dir,
		Instrument: Instrument(dir),
		RunID:      util.NewRunID(),
	}

	ctx = util.WithInstrument(util.WithRunID(ctx, outcome.RunID), outcome.Instrument)

	paths, err := csvfeed.Locate(dir, r.options.Files, r.options.SearchDepth)
	if err != nil {
		r.logger.ErrorContext(ctx, err, logger.NewField("dir", dir))
		outcome.Err = err
		return outcome
	}
	outcome.Output = paths.Output

	reader := csvfeed.NewReader(paths, r.logger)
	result, err := replay.NewEngineWithOptions(reader, r.logger, r.options.Replay).Run(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, err, logger.NewField("dir", dir))
		outcome.Err = err
		return outcome
	}

	outcome.Snapshots = len(result.Snapshots)
	outcome.Stats = result.Stats
	outcome.Counters = result.Counters

	sinks := append([]snapshotv1.Sink{
		csvfeed.NewWriter(paths.Output, r.options.Replay.TopDepth, r.options.Replay.BottomDepth),
	}, r.sinks...)
	outcome.Err = export.NewExporter(r.logger, sinks...).Export(ctx, outcome.Instrument, result.Snapshots)
	outcome.Elapsed = time.Since(start)

	r.logger.InfoContext(ctx, "instrument replayed",
		logger.NewField("output", paths.Output),
		logger.NewField("snapshots", outcome.Snapshots),
		logger.NewField("elapsed", outcome.Elapsed.String()),
	)
	return outcome
}

func errorCode(err error) string {
	if errors.ErrorCodeEquals(err, string(errors.InputNotFoundError)) {
		return string(errors.InputNotFoundError)
	}
	var baseErr *errors.BaseError
	if stderrors.As(err, &baseErr) && baseErr.IsAnyCodeEqual(string(errors.SinkWriteError)) {
		return string(errors.SinkWriteError)
	}
	return string(errors.GeneralInternalError)
}
