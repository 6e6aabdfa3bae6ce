package redis

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadchandra19/book-replay/pkg/errors"
	loggerMock "github.com/muhammadchandra19/book-replay/pkg/logger/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestClient_ConnectValidation(t *testing.T) {
	testCases := []struct {
		name   string
		config func() *Config
	}{
		{
			name:   "nil config",
			config: func() *Config { return nil },
		},
		{
			name: "empty addresses",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Addrs = nil
				return cfg
			},
		},
		{
			name: "unknown mode",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Mode = Mode("sentinel")
				return cfg
			},
		},
		{
			name: "zero pool size",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.PoolSize = 0
				return cfg
			},
		},
		{
			name: "negative ttl",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.DefaultTTL = -time.Second
				return cfg
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			c := NewClient(loggerMock.NewMockInterface(ctrl), testCase.config())
			err := c.Connect(context.Background())

			assert.True(t, errors.ErrorCodeEquals(err, string(errors.RedisConfigError)))
		})
	}
}

func TestClient_DisconnectWithoutConnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := NewClient(loggerMock.NewMockInterface(ctrl), DefaultConfig())
	err := c.Disconnect(context.Background())

	assert.True(t, errors.ErrorCodeEquals(err, string(errors.RedisDisconnectionError)))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, Standalone, cfg.Mode)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Addrs)
	assert.Equal(t, "book-replay:", cfg.PrefixKey)
}
