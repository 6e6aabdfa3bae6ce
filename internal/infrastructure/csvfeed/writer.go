package csvfeed

import (
	"bufio"
	"context"
	"encoding/csv"
	"os"
	"strconv"

	orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/book-replay/pkg/errors"
	"github.com/shopspring/decimal"
)

const pricePlaces = 2

// Writer writes snapshots as one CSV row each.
type Writer struct {
	path        string
	topDepth    int
	bottomDepth int
}

var _ snapshotv1.Sink = (*Writer)(nil)

// NewWriter creates a CSV sink writing to path.
func NewWriter(path string, topDepth, bottomDepth int) *Writer {
	return &Writer{
		path:        path,
		topDepth:    topDepth,
		bottomDepth: bottomDepth,
	}
}

// Name identifies the sink in logs.
func (w *Writer) Name() string {
	return "csv"
}

// Path returns the output file path.
func (w *Writer) Path() string {
	return w.path
}

// Write replaces the output file with the header and one row per snapshot.
func (w *Writer) Write(ctx context.Context, _ string, snapshots []*snapshotv1.Snapshot) error {
	f, err := os.Create(w.path)
	if err != nil {
		return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
	}

	buf := bufio.NewWriter(f)
	cw := csv.NewWriter(buf)

	if err := cw.Write(Header(w.topDepth, w.bottomDepth)); err != nil {
		f.Close()
		return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
	}

	for _, snapshot := range snapshots {
		if err := ctx.Err(); err != nil {
			f.Close()
			return err
		}
		if err := cw.Write(Row(snapshot, w.topDepth, w.bottomDepth)); err != nil {
			f.Close()
			return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
	}
	if err := f.Close(); err != nil {
		return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
	}
	return nil
}

func viewDepth(view orderbookv1.View, topDepth, bottomDepth int) int {
	if view == orderbookv1.BestBids || view == orderbookv1.BestAsks {
		return topDepth
	}
	return bottomDepth
}

// Header returns the output columns for the given depths.
func Header(topDepth, bottomDepth int) []string {
	header := []string{"clockatarrival", "transacttime"}
	for _, view := range orderbookv1.Views {
		prefix := view.Prefix()
		for i := 1; i <= viewDepth(view, topDepth, bottomDepth); i++ {
			n := strconv.Itoa(i)
			header = append(header, prefix+"_"+n+"_price", prefix+"_"+n+"_qty")
		}
	}
	return append(header, "cvl", "lpr", "cto", "nts", "opx")
}

// Row renders a snapshot. Missing levels are left blank.
func Row(snapshot *snapshotv1.Snapshot, topDepth, bottomDepth int) []string {
	row := []string{
		strconv.FormatInt(snapshot.ArrivalTime, 10),
		strconv.FormatInt(snapshot.TransactTime, 10),
	}

	for _, view := range orderbookv1.Views {
		levels := snapshot.Levels(view)
		for i := range viewDepth(view, topDepth, bottomDepth) {
			if i < len(levels) {
				row = append(row, FormatPrice(levels[i].Price), strconv.FormatInt(levels[i].Quantity, 10))
				continue
			}
			row = append(row, "", "")
		}
	}

	stats := snapshot.Stats
	return append(row,
		strconv.FormatInt(stats.CumulativeVolume, 10),
		FormatPrice(stats.LastPrice),
		strconv.FormatInt(stats.ParticipationCount, 10),
		strconv.FormatInt(stats.TradeCount, 10),
		FormatPrice(stats.OpeningPrice),
	)
}

// FormatPrice renders a price with two decimal places.
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(pricePlaces)
}
