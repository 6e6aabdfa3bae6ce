package util

import (
	"context"
)

type key string

const (
	runIDKey      = key("run-id")
	instrumentKey = key("instrument")
)

// WithRunID returns a context with a replay run id.
// It will generate a new run id if the provided id is empty.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = generate()
	}

	return context.WithValue(ctx, runIDKey, id)
}

// WithInstrument returns a context with the instrument being replayed.
func WithInstrument(ctx context.Context, instrument string) context.Context {
	return context.WithValue(ctx, instrumentKey, instrument)
}

// GetRunID returns run id from context
// will return empty string if not present
func GetRunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// GetInstrument returns instrument from context
// will return empty string if not present
func GetInstrument(ctx context.Context) string {
	instrument, _ := ctx.Value(instrumentKey).(string)
	return instrument
}
