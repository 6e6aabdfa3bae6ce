package snapshot

import (
	"context"
	"encoding/json"
	"time"

	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/book-replay/pkg/errors"
	"github.com/muhammadchandra19/book-replay/pkg/logger"
	"github.com/muhammadchandra19/book-replay/pkg/util"
	"github.com/segmentio/kafka-go"
)

// Config holds the Kafka sink settings.
type Config struct {
	Enabled      bool          `env:"ENABLED" envDefault:"false"`
	Brokers      []string      `env:"BROKERS" envDefault:"localhost:9092" envSeparator:","`
	Topic        string        `env:"TOPIC" envDefault:"book-snapshots"`
	BatchSize    int           `env:"BATCH_SIZE" envDefault:"500"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
}

// Message is the payload of one published snapshot.
type Message struct {
	RunID      string               `json:"runId"`
	Instrument string               `json:"instrument"`
	Seq        int                  `json:"seq"`
	Snapshot   *snapshotv1.Snapshot `json:"snapshot"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher publishes replay snapshots to a Kafka topic.
type Publisher struct {
	kafkaWriter messageWriter
	logger      logger.Interface
	batchSize   int
}

var _ snapshotv1.Sink = (*Publisher)(nil)

// NewPublisher creates a new Kafka publisher for snapshot messages.
func NewPublisher(config Config, logger logger.Interface) *Publisher {
	kafkaWriter := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    config.BatchSize,
		WriteTimeout: config.WriteTimeout,
		RequiredAcks: kafka.RequireAll,
	}

	return newPublisher(kafkaWriter, config.BatchSize, logger)
}

func newPublisher(w messageWriter, batchSize int, logger logger.Interface) *Publisher {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Publisher{
		kafkaWriter: w,
		logger:      logger,
		batchSize:   batchSize,
	}
}

// Name identifies the sink in logs.
func (p *Publisher) Name() string {
	return "kafka"
}

// Write publishes every snapshot keyed by instrument so that one instrument
// stays on one partition in sequence order.
func (p *Publisher) Write(ctx context.Context, instrument string, snapshots []*snapshotv1.Snapshot) error {
	runID := util.GetRunID(ctx)
	key := []byte(instrument)

	batch := make([]kafka.Message, 0, min(p.batchSize, len(snapshots)))
	for i, snapshot := range snapshots {
		value, err := json.Marshal(Message{
			RunID:      runID,
			Instrument: instrument,
			Seq:        i,
			Snapshot:   snapshot,
		})
		if err != nil {
			return errors.NewTracer(string(errors.SnapshotMarshalError)).Wrap(err)
		}

		batch = append(batch, kafka.Message{Key: key, Value: value})
		if len(batch) == p.batchSize {
			if err := p.flush(ctx, instrument, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		return p.flush(ctx, instrument, batch)
	}
	return nil
}

func (p *Publisher) flush(ctx context.Context, instrument string, batch []kafka.Message) error {
	if err := p.kafkaWriter.WriteMessages(ctx, batch...); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.NewField("instrument", instrument),
			logger.NewField("batch", len(batch)),
		)
		return errors.NewTracer(string(errors.SnapshotPublishError)).Wrap(err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
