package replay

import (
	"context"
	"errors"

	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
	orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/book-replay/internal/usecase/lookahead"
	"github.com/muhammadchandra19/book-replay/internal/usecase/merge"
	"github.com/muhammadchandra19/book-replay/internal/usecase/orderbook"
	"github.com/muhammadchandra19/book-replay/internal/usecase/snapshot"
	"github.com/muhammadchandra19/book-replay/pkg/logger"
	"github.com/muhammadchandra19/book-replay/pkg/util"
)

// ErrNoOrders is returned when the feed holds no usable order records.
var ErrNoOrders = errors.New("no orders loaded")

// Counters summarizes what a replay run read and did.
type Counters struct {
	OrdersRead     int `json:"ordersRead"`
	ExecutionsRead int `json:"executionsRead"`
	Skipped        int `json:"skipped"`
	Rested         int `json:"rested"`
	Suppressed     int `json:"suppressed"`
	Discarded      int `json:"discarded"`
	Ignored        int `json:"ignored"`
	Fills          int `json:"fills"`
	Cancels        int `json:"cancels"`
}

// Result is the outcome of one replay run.
type Result struct {
	Snapshots []*snapshotv1.Snapshot
	Stats     orderbookv1.Statistics
	Counters  Counters
}

// Engine replays the order and execution streams of one instrument into a
// sequence of book snapshots.
type Engine struct {
	feed    eventv1.Feed
	logger  logger.Interface
	options *Options
}

// NewEngine creates a new instance of Engine with the default options.
func NewEngine(feed eventv1.Feed, logger logger.Interface) *Engine {
	return NewEngineWithOptions(feed, logger, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options
func NewEngineWithOptions(feed eventv1.Feed, logger logger.Interface, options *Options) *Engine {
	return &Engine{
		feed:    feed,
		logger:  logger,
		options: options,
	}
}

// run is the state of a single pass over the merged events.
type run struct {
	book      *orderbook.Book
	recorder  *snapshot.Recorder
	immediate lookahead.Immediate
	counters  Counters
	opened    bool
}

// Run reads the feed and replays it. The context is checked between events.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	orders, err := e.feed.Orders(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}

	executions, err := e.feed.Executions(ctx)
	if err != nil {
		return nil, err
	}

	r := &run{
		book:      orderbook.NewBook(orderbook.Options{OpeningTime: e.options.OpeningTime}),
		recorder:  snapshot.NewRecorder(e.options.TopDepth, e.options.BottomDepth),
		immediate: lookahead.Scan(orders, executions, e.options.LookaheadTolerance),
		counters: Counters{
			OrdersRead:     len(orders),
			ExecutionsRead: len(executions),
			Skipped:        e.feed.Skipped(),
		},
	}

	e.logger.InfoContext(ctx, "replay started",
		logger.NewField("orders", len(orders)),
		logger.NewField("executions", len(executions)),
		logger.NewField("immediate", len(r.immediate)),
	)

	for _, event := range merge.Merge(orders, executions) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch event.Kind {
		case eventv1.KindOrder:
			e.processOrder(ctx, r, event.Order)
		case eventv1.KindExecution:
			e.processExecution(r, event.Execution)
		}
	}

	bids, asks := r.book.Size()
	e.logger.InfoContext(ctx, "replay finished",
		logger.NewField("snapshots", r.recorder.Len()),
		logger.NewField("counters", r.counters),
		logger.NewField("resting_bids", bids),
		logger.NewField("resting_asks", asks),
	)

	return &Result{
		Snapshots: r.recorder.Snapshots(),
		Stats:     r.book.Statistics(),
		Counters:  r.counters,
	}, nil
}

// processOrder admits the order and, from the open on, records a snapshot
// unless the order was suppressed.
func (e *Engine) processOrder(ctx context.Context, r *run, order *eventv1.OrderEvent) {
	result := r.book.Admit(order, r.immediate.Contains(order.OrderID))

	switch result {
	case orderbookv1.AdmitRested:
		r.counters.Rested++
	case orderbookv1.AdmitSuppressed:
		r.counters.Suppressed++
		return
	case orderbookv1.AdmitDiscarded:
		r.counters.Discarded++
		e.logger.DebugContext(ctx, "order discarded without reference price",
			logger.NewField("order_id", order.OrderID),
			logger.NewField("side", order.Side.String()),
			logger.NewField("type", order.Type.String()),
		)
	case orderbookv1.AdmitIgnored:
		r.counters.Ignored++
	}

	if !r.book.IsOpen(order.TransactTime) {
		return
	}

	if !r.opened {
		r.opened = true
		e.logger.InfoContext(ctx, "market opened",
			logger.NewField("transacttime", util.FormatTransactTime(order.TransactTime)),
			logger.NewField("order_id", order.OrderID),
		)
	}

	r.recorder.Record(r.book, order.ArrivalTime, order.TransactTime)
}

// processExecution applies the fill or cancel and always records a snapshot.
func (e *Engine) processExecution(r *run, exec *eventv1.ExecutionEvent) {
	r.book.Execute(exec)

	switch exec.Type {
	case eventv1.ExecTypeFill:
		r.counters.Fills++
	case eventv1.ExecTypeCancel:
		r.counters.Cancels++
	}

	r.recorder.Record(r.book, exec.ArrivalTime, exec.TransactTime)
}
