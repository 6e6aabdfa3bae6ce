package config

import (
	"fmt"

	kafkasnapshot "github.com/muhammadchandra19/book-replay/internal/infrastructure/kafka/snapshot"
	pkgconfig "github.com/muhammadchandra19/book-replay/pkg/config"
	"github.com/muhammadchandra19/book-replay/pkg/errors"
	"github.com/muhammadchandra19/book-replay/pkg/questdb"
	"github.com/muhammadchandra19/book-replay/pkg/redis"
)

// Config represents the application configuration.
type Config struct {
	App     AppConfig            `envPrefix:"APP_"`
	Replay  ReplayConfig         `envPrefix:"REPLAY_"`
	Input   InputConfig          `envPrefix:"INPUT_"`
	QuestDB questdb.Config       `envPrefix:"QUESTDB_"`
	Redis   redis.Config         `envPrefix:"REDIS_"`
	Kafka   kafkasnapshot.Config `envPrefix:"KAFKA_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"book-replay"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// ReplayConfig holds the replay engine settings.
type ReplayConfig struct {
	OpeningTime        int64 `env:"OPENING_TIME" envDefault:"93000000"`
	LookaheadTolerance int64 `env:"LOOKAHEAD_TOLERANCE" envDefault:"1000"`
	TopDepth           int   `env:"TOP_DEPTH" envDefault:"5"`
	BottomDepth        int   `env:"BOTTOM_DEPTH" envDefault:"5"`
}

// InputConfig describes where instrument files are found.
type InputConfig struct {
	Dirs        []string `env:"DIRS" envSeparator:"," envDefault:"."`
	OrderFile   string   `env:"ORDER_FILE" envDefault:"order_new.csv"`
	TradeFile   string   `env:"TRADE_FILE" envDefault:"trade_new.csv"`
	OutputFile  string   `env:"OUTPUT_FILE" envDefault:"book_new.csv"`
	SearchDepth int      `env:"SEARCH_DEPTH" envDefault:"4"`
	Parallelism int      `env:"PARALLELISM" envDefault:"4"`
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load loads the configuration from the environment and an optional .env file.
func Load(filenames ...string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg, filenames...); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks every field and reports all invalid ones at once.
func (c *Config) Validate() error {
	baseErr := errors.NewBaseError()
	invalid := func(field, message string) {
		baseErr.AddErrorDetails(errors.NewErrorDetails(message, string(errors.ConfigInvalidError), field))
	}

	if !logLevels[c.App.LogLevel] {
		invalid("APP_LOG_LEVEL", fmt.Sprintf("unknown log level %q", c.App.LogLevel))
	}
	if c.Replay.LookaheadTolerance < 0 {
		invalid("REPLAY_LOOKAHEAD_TOLERANCE", "must not be negative")
	}
	if c.Replay.TopDepth < 1 {
		invalid("REPLAY_TOP_DEPTH", "must be at least 1")
	}
	if c.Replay.BottomDepth < 1 {
		invalid("REPLAY_BOTTOM_DEPTH", "must be at least 1")
	}
	if len(c.Input.Dirs) == 0 {
		invalid("INPUT_DIRS", "at least one directory is required")
	}
	if c.Input.OrderFile == "" {
		invalid("INPUT_ORDER_FILE", "must not be empty")
	}
	if c.Input.OutputFile == "" {
		invalid("INPUT_OUTPUT_FILE", "must not be empty")
	}
	if c.Input.SearchDepth < 0 {
		invalid("INPUT_SEARCH_DEPTH", "must not be negative")
	}
	if c.Input.Parallelism < 1 {
		invalid("INPUT_PARALLELISM", "must be at least 1")
	}
	if c.Redis.Enabled && len(c.Redis.Addrs) == 0 {
		invalid("REDIS_ADDRS", "required when redis is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		invalid("KAFKA_BROKERS", "required when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.Topic == "" {
		invalid("KAFKA_TOPIC", "required when kafka is enabled")
	}
	if c.QuestDB.Enabled && c.QuestDB.Host == "" {
		invalid("QUESTDB_HOST", "required when questdb is enabled")
	}

	if baseErr.HasDetails() {
		return baseErr
	}
	return nil
}
