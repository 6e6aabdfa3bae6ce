package bootstrap

import (
	"context"

	"github.com/muhammadchandra19/book-replay/internal/app/batch"
	"github.com/muhammadchandra19/book-replay/internal/app/replay"
	"github.com/muhammadchandra19/book-replay/internal/config"
	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/book-replay/internal/infrastructure/csvfeed"
	kafkasnapshot "github.com/muhammadchandra19/book-replay/internal/infrastructure/kafka/snapshot"
	questdbsnapshot "github.com/muhammadchandra19/book-replay/internal/infrastructure/questdb/snapshot"
	redissnapshot "github.com/muhammadchandra19/book-replay/internal/infrastructure/redis/snapshot"
	"github.com/muhammadchandra19/book-replay/pkg/logger"
	"github.com/muhammadchandra19/book-replay/pkg/questdb"
	"github.com/muhammadchandra19/book-replay/pkg/redis"
)

// Bootstrap wires the replay application together.
type Bootstrap struct {
	Config *config.Config
	Logger logger.Interface

	QuestDB   questdb.QuestDBClient
	Redis     redis.Client
	Publisher *kafkasnapshot.Publisher

	// Sinks are the enabled shared snapshot sinks, in export order.
	Sinks []snapshotv1.Sink
	// Stores are the enabled sinks that can read a snapshot back.
	Stores []snapshotv1.Store
}

// Init connects every enabled backend. Backends connected before a failure
// are closed again.
func Init(ctx context.Context, cfg *config.Config, log logger.Interface) (*Bootstrap, error) {
	b := &Bootstrap{
		Config: cfg,
		Logger: log,
	}

	if cfg.QuestDB.Enabled {
		client, err := questdb.NewClient(ctx, cfg.QuestDB)
		if err != nil {
			b.Close(ctx)
			return nil, err
		}
		b.QuestDB = client
		repo := questdbsnapshot.NewRepository(client)
		b.Sinks = append(b.Sinks, repo)
		b.Stores = append(b.Stores, repo)
	}

	if cfg.Redis.Enabled {
		client := redis.NewClient(log, &cfg.Redis)
		if err := client.Connect(ctx); err != nil {
			b.Close(ctx)
			return nil, err
		}
		b.Redis = client
		store := redissnapshot.NewStore(client, &cfg.Redis, log)
		b.Sinks = append(b.Sinks, store)
		b.Stores = append(b.Stores, store)
	}

	if cfg.Kafka.Enabled {
		b.Publisher = kafkasnapshot.NewPublisher(cfg.Kafka, log)
		b.Sinks = append(b.Sinks, b.Publisher)
	}

	return b, nil
}

// ReplayOptions converts the replay configuration into engine options.
func (b *Bootstrap) ReplayOptions() *replay.Options {
	return &replay.Options{
		OpeningTime:        b.Config.Replay.OpeningTime,
		LookaheadTolerance: b.Config.Replay.LookaheadTolerance,
		TopDepth:           b.Config.Replay.TopDepth,
		BottomDepth:        b.Config.Replay.BottomDepth,
	}
}

// Runner builds the batch runner over the enabled sinks.
func (b *Bootstrap) Runner() *batch.Runner {
	return batch.NewRunner(&batch.Options{
		Replay: b.ReplayOptions(),
		Files: csvfeed.Files{
			Order:  b.Config.Input.OrderFile,
			Trade:  b.Config.Input.TradeFile,
			Output: b.Config.Input.OutputFile,
		},
		SearchDepth: b.Config.Input.SearchDepth,
		Parallelism: b.Config.Input.Parallelism,
	}, b.Logger, b.Sinks...)
}

// Close releases every connected backend.
func (b *Bootstrap) Close(ctx context.Context) {
	if b.Publisher != nil {
		if err := b.Publisher.Close(); err != nil {
			b.Logger.ErrorContext(ctx, err, logger.NewField("sink", "kafka"))
		}
	}
	if b.Redis != nil {
		if err := b.Redis.Disconnect(ctx); err != nil {
			b.Logger.ErrorContext(ctx, err, logger.NewField("sink", "redis"))
		}
	}
	if b.QuestDB != nil {
		b.QuestDB.Close()
	}
}
