package export

import (
	"context"
	"fmt"
	"time"

	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/book-replay/pkg/errors"
	"github.com/muhammadchandra19/book-replay/pkg/logger"
)

// Exporter hands a finished snapshot sequence to every configured sink.
type Exporter struct {
	sinks  []snapshotv1.Sink
	logger logger.Interface
}

// NewExporter creates an exporter over the given sinks. Sinks are written in
// the order given.
func NewExporter(logger logger.Interface, sinks ...snapshotv1.Sink) *Exporter {
	return &Exporter{
		sinks:  sinks,
		logger: logger,
	}
}

// Sinks returns the names of the configured sinks.
func (e *Exporter) Sinks() []string {
	names := make([]string, 0, len(e.sinks))
	for _, sink := range e.sinks {
		names = append(names, sink.Name())
	}
	return names
}

// Export writes the snapshots to every sink. A failing sink does not stop the
// remaining ones; all failures are returned together as a *errors.BaseError.
func (e *Exporter) Export(ctx context.Context, instrument string, snapshots []*snapshotv1.Snapshot) error {
	failed := errors.NewBaseError()

	for _, sink := range e.sinks {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		if err := sink.Write(ctx, instrument, snapshots); err != nil {
			e.logger.ErrorContext(ctx, err,
				logger.NewField("sink", sink.Name()),
				logger.NewField("instrument", instrument),
			)
			failed.AddErrorDetails(errors.NewErrorDetails(
				fmt.Sprintf("%s sink: %s", sink.Name(), err.Error()),
				string(errors.SinkWriteError),
				sink.Name(),
			))
			continue
		}

		e.logger.InfoContext(ctx, "snapshots exported",
			logger.NewField("sink", sink.Name()),
			logger.NewField("instrument", instrument),
			logger.NewField("count", len(snapshots)),
			logger.NewField("elapsed", time.Since(start).String()),
		)
	}

	if failed.HasDetails() {
		return failed
	}
	return nil
}
