package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/book-replay/pkg/errors"
	"github.com/muhammadchandra19/book-replay/pkg/logger"
	"github.com/muhammadchandra19/book-replay/pkg/redis"
	"github.com/shopspring/decimal"
)

// Store keeps the latest snapshot and statistics of each instrument in Redis.
type Store struct {
	redisclient redis.Client
	logger      logger.Interface
	prefix      string
	ttl         time.Duration
	channel     string
}

var _ snapshotv1.Store = (*Store)(nil)

// NewStore creates a new Store. Snapshots are announced on the configured
// channel when it is not empty.
func NewStore(redisclient redis.Client, config *redis.Config, logger logger.Interface) *Store {
	return &Store{
		redisclient: redisclient,
		logger:      logger,
		prefix:      config.PrefixKey,
		ttl:         config.DefaultTTL,
		channel:     config.DefaultChannel,
	}
}

// Name identifies the sink in logs.
func (s *Store) Name() string {
	return "redis"
}

// BookKey is the key holding the latest snapshot of the instrument.
func (s *Store) BookKey(instrument string) string {
	return s.prefix + "book:" + instrument
}

// StatsKey is the hash holding the final statistics of the instrument.
func (s *Store) StatsKey(instrument string) string {
	return s.prefix + "stats:" + instrument
}

// Write stores the last snapshot of the run. Earlier snapshots are superseded
// and never written.
func (s *Store) Write(ctx context.Context, instrument string, snapshots []*snapshotv1.Snapshot) error {
	if len(snapshots) == 0 {
		s.logger.WarnContext(ctx, fmt.Sprintf("No snapshot to store for instrument %s", instrument),
			logger.NewField("instrument", instrument),
		)
		return nil
	}

	last := snapshots[len(snapshots)-1]
	buf, err := json.Marshal(last)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("instrument", instrument))
		return errors.NewTracer(string(errors.SnapshotMarshalError)).Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.BookKey(instrument), buf, s.ttl); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.NewField("instrument", instrument),
			logger.NewField("action", "store snapshot"),
		)
		return errors.NewTracer(string(errors.SnapshotStoreError)).Wrap(err)
	}

	if _, err := s.redisclient.HSet(ctx, s.StatsKey(instrument), statsHash(last.Stats)); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.NewField("instrument", instrument),
			logger.NewField("action", "store stats"),
		)
		return errors.NewTracer(string(errors.SnapshotStoreError)).Wrap(err)
	}

	if s.channel != "" {
		receivers, err := s.redisclient.Publish(ctx, s.channel, buf)
		if err != nil {
			s.logger.ErrorContext(ctx, err,
				logger.NewField("instrument", instrument),
				logger.NewField("action", "publish snapshot"),
			)
			return errors.NewTracer(string(errors.SnapshotPublishError)).Wrap(err)
		}
		s.logger.DebugContext(ctx, "snapshot published", logger.NewField("channel", s.channel), logger.NewField("receivers", receivers))
	}

	s.logger.InfoContext(ctx, fmt.Sprintf("Snapshot stored for instrument %s", instrument),
		logger.NewField("instrument", instrument),
		logger.NewField("action", "store snapshot"),
	)
	return nil
}

// LoadLatest loads the latest snapshot of the instrument. It returns nil when
// nothing is stored.
func (s *Store) LoadLatest(ctx context.Context, instrument string) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.BookKey(instrument))
	if err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.NewField("instrument", instrument),
			logger.NewField("action", "load snapshot"),
		)
		return nil, errors.NewTracer(string(errors.SnapshotLoadError)).Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, fmt.Sprintf("No snapshot found for instrument %s", instrument),
			logger.NewField("instrument", instrument),
			logger.NewField("action", "load snapshot"),
		)
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.NewField("instrument", instrument),
			logger.NewField("action", "unmarshal snapshot"),
		)
		return nil, errors.NewTracer(string(errors.SnapshotUnmarshalError)).Wrap(err)
	}

	return &snapshot, nil
}

// LoadStats reads the statistics hash of the instrument. It returns nil when
// nothing is stored.
func (s *Store) LoadStats(ctx context.Context, instrument string) (*orderbookv1.Statistics, error) {
	values, err := s.redisclient.HGetAll(ctx, s.StatsKey(instrument))
	if err != nil {
		return nil, errors.NewTracer(string(errors.SnapshotLoadError)).Wrap(err)
	}
	if len(values) == 0 {
		return nil, nil
	}

	stats := &orderbookv1.Statistics{}
	ints := map[string]*int64{
		"cvl": &stats.CumulativeVolume,
		"cto": &stats.ParticipationCount,
		"nts": &stats.TradeCount,
	}
	for field, target := range ints {
		if *target, err = strconv.ParseInt(values[field], 10, 64); err != nil {
			return nil, errors.NewTracer(string(errors.SnapshotUnmarshalError)).Wrap(err)
		}
	}

	prices := map[string]*decimal.Decimal{
		"lpr": &stats.LastPrice,
		"opx": &stats.OpeningPrice,
	}
	for field, target := range prices {
		if *target, err = decimal.NewFromString(values[field]); err != nil {
			return nil, errors.NewTracer(string(errors.SnapshotUnmarshalError)).Wrap(err)
		}
	}

	stats.Opened = values["opened"] == "1"
	return stats, nil
}

func statsHash(stats orderbookv1.Statistics) map[string]any {
	opened := "0"
	if stats.Opened {
		opened = "1"
	}
	return map[string]any{
		"cvl":    stats.CumulativeVolume,
		"lpr":    stats.LastPrice.String(),
		"cto":    stats.ParticipationCount,
		"nts":    stats.TradeCount,
		"opx":    stats.OpeningPrice.String(),
		"opened": opened,
	}
}
