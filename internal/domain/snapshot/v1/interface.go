package snapshotv1

import "context"

// Sink receives the finished snapshot sequence of one replay run.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=snapshotv1_mock
type Sink interface {
	// Name identifies the sink in logs.
	Name() string
	// Write exports the snapshots of the instrument in sequence order.
	Write(ctx context.Context, instrument string, snapshots []*Snapshot) error
}

// Store keeps the latest snapshot of each instrument.
type Store interface {
	Sink
	LoadLatest(ctx context.Context, instrument string) (*Snapshot, error)
}
