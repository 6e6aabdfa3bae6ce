package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/book-replay/pkg/errors"
	"github.com/muhammadchandra19/book-replay/pkg/questdb"
	"github.com/muhammadchandra19/book-replay/pkg/util"
	"github.com/shopspring/decimal"
)

const table = "book_snapshots"

var columns = []string{
	"ts", "run_id", "instrument", "seq",
	"clockatarrival", "transacttime",
	"best_bids", "best_asks", "worst_bids", "worst_asks",
	"cvl", "lpr", "cto", "nts", "opx",
}

const latestQuery = `SELECT clockatarrival, transacttime, best_bids, best_asks, worst_bids, worst_asks, cvl, lpr, cto, nts, opx
			  FROM book_snapshots
			  WHERE instrument = $1
			  ORDER BY ts DESC, seq DESC
			  LIMIT 1`

// Repository stores replay snapshots in QuestDB.
type Repository struct {
	client questdb.QuestDBClient
	now    func() time.Time
}

var _ snapshotv1.Store = (*Repository)(nil)

// NewRepository creates a new snapshot repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
		now:    time.Now,
	}
}

// Name identifies the sink in logs.
func (r *Repository) Name() string {
	return "questdb"
}

// Write copies the snapshots of one run into book_snapshots. Rows share the
// write timestamp and keep their order through seq.
func (r *Repository) Write(ctx context.Context, instrument string, snapshots []*snapshotv1.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	ts := r.now().UTC()
	runID := util.GetRunID(ctx)

	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{table},
		columns,
		pgx.CopyFromSlice(len(snapshots), func(i int) ([]any, error) {
			s := snapshots[i]
			levels, err := encodeLevels(s)
			if err != nil {
				return nil, err
			}
			return []any{
				ts,
				runID,
				instrument,
				int64(i),
				s.ArrivalTime,
				s.TransactTime,
				levels[0], levels[1], levels[2], levels[3],
				s.Stats.CumulativeVolume,
				s.Stats.LastPrice.InexactFloat64(),
				s.Stats.ParticipationCount,
				s.Stats.TradeCount,
				s.Stats.OpeningPrice.InexactFloat64(),
			}, nil
		}),
	)
	if err != nil {
		return errors.NewTracer(string(errors.SnapshotStoreError)).Wrap(err)
	}

	return nil
}

// LoadLatest returns the most recently written snapshot of the instrument, or
// nil when none exists.
func (r *Repository) LoadLatest(ctx context.Context, instrument string) (*snapshotv1.Snapshot, error) {
	rows, err := r.client.Query(ctx, latestQuery, instrument)
	if err != nil {
		return nil, errors.NewTracer(string(errors.SnapshotLoadError)).Wrap(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.NewTracer(string(errors.SnapshotLoadError)).Wrap(err)
		}
		return nil, nil
	}

	var (
		s        = &snapshotv1.Snapshot{}
		levels   [4]string
		lpr, opx float64
	)
	err = rows.Scan(
		&s.ArrivalTime, &s.TransactTime,
		&levels[0], &levels[1], &levels[2], &levels[3],
		&s.Stats.CumulativeVolume, &lpr, &s.Stats.ParticipationCount, &s.Stats.TradeCount, &opx,
	)
	if err != nil {
		return nil, errors.NewTracer(string(errors.SnapshotLoadError)).Wrap(err)
	}

	targets := []*[]orderbookv1.PriceLevel{&s.BestBids, &s.BestAsks, &s.WorstBids, &s.WorstAsks}
	for i, target := range targets {
		if err := json.Unmarshal([]byte(levels[i]), target); err != nil {
			return nil, errors.NewTracer(string(errors.SnapshotUnmarshalError)).Wrap(err)
		}
	}

	s.Stats.LastPrice = decimal.NewFromFloat(lpr)
	s.Stats.OpeningPrice = decimal.NewFromFloat(opx)
	s.Stats.Opened = s.Stats.TradeCount > 0

	return s, nil
}

func encodeLevels(s *snapshotv1.Snapshot) ([4]string, error) {
	var out [4]string
	for i, view := range orderbookv1.Views {
		levels := s.Levels(view)
		if levels == nil {
			levels = []orderbookv1.PriceLevel{}
		}
		buf, err := json.Marshal(levels)
		if err != nil {
			return out, errors.NewTracer(string(errors.SnapshotMarshalError)).Wrap(err)
		}
		out[i] = string(buf)
	}
	return out, nil
}
