package eventv1

import "context"

// Feed supplies the order and execution streams of one instrument.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=eventv1_mock
type Feed interface {
	// Orders returns every well-formed order record in input order.
	Orders(ctx context.Context) ([]*OrderEvent, error)
	// Executions returns every well-formed execution record in input order.
	Executions(ctx context.Context) ([]*ExecutionEvent, error)
	// Skipped returns the number of malformed records dropped so far.
	Skipped() int
}
