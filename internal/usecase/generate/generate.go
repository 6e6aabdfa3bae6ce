// Package generate builds synthetic order and trade streams for exercising
// the replay end to end.
package generate

import (
	"cmp"
	"math/rand/v2"
	"slices"

	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
	"github.com/muhammadchandra19/book-replay/pkg/util"
	"github.com/shopspring/decimal"
)

// Options shapes the generated session.
type Options struct {
	Count int
	// Start is the transaction time of the first order.
	Start int64
	// StepMillis is the largest gap between two consecutive orders.
	StepMillis  int
	BasePrice   decimal.Decimal
	PriceSpread decimal.Decimal
	// MarketRatio is the share of orders sent as market orders.
	MarketRatio float64
	// CancelRatio is the chance of a resting order being canceled after each order.
	CancelRatio float64
	LotSize     int64
}

// DefaultOptions returns a session of 1000 orders starting at 09:15.
func DefaultOptions() Options {
	return Options{
		Count:       1000,
		Start:       91500000,
		StepMillis:  2000,
		BasePrice:   decimal.RequireFromString("39.45"),
		PriceSpread: decimal.RequireFromString("2.00"),
		MarketRatio: 0.3,
		CancelRatio: 0.05,
		LotSize:     100,
	}
}

type resting struct {
	id        int64
	side      eventv1.Side
	price     decimal.Decimal
	remaining int64
}

// Generator produces a reproducible session for a seed.
type Generator struct {
	rng     *rand.Rand
	options Options

	clock      int64
	seq        int64
	execID     int64
	book       []*resting
	orders     []*eventv1.OrderEvent
	executions []*eventv1.ExecutionEvent
}

// New creates a generator. The same seed and options give the same session.
func New(seed uint64, options Options) *Generator {
	return &Generator{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		options: options,
	}
}

// Generate returns the orders and executions of the session. Market orders
// trade against the best resting order on the other side; limit orders rest.
func (g *Generator) Generate() ([]*eventv1.OrderEvent, []*eventv1.ExecutionEvent) {
	g.clock = util.TransactTimeToMillis(g.options.Start)
	g.execID = int64(g.options.Count)

	for i := range g.options.Count {
		if i > 0 {
			g.clock += int64(1 + g.rng.IntN(max(g.options.StepMillis, 1)))
		}
		g.order(int64(i + 1))

		if len(g.book) > 0 && g.rng.Float64() < g.options.CancelRatio {
			g.cancel(g.book[g.rng.IntN(len(g.book))])
		}
	}

	return g.orders, g.executions
}

func (g *Generator) now() int64 {
	return util.MillisToTransactTime(g.clock)
}

func (g *Generator) arrival() int64 {
	g.seq++
	return g.now()*1000 + int64(g.rng.IntN(1000))
}

func (g *Generator) order(id int64) {
	side := eventv1.SideSell
	if g.rng.Float64() < 0.5 {
		side = eventv1.SideBuy
	}
	quantity := g.options.LotSize * int64(1+g.rng.IntN(10))

	arrival := g.arrival()
	order := &eventv1.OrderEvent{
		ArrivalTime:  arrival,
		SequenceNo:   g.seq,
		TransactTime: g.now(),
		OrderID:      id,
		Side:         side,
		Type:         eventv1.OrderTypeLimit,
		Price:        decimal.Zero,
		Quantity:     quantity,
	}
	g.orders = append(g.orders, order)

	if g.rng.Float64() < g.options.MarketRatio {
		order.Type = eventv1.OrderTypeMarket
		g.trade(order)
		return
	}

	order.Price = g.limitPrice(side)
	g.book = append(g.book, &resting{id: id, side: side, price: order.Price, remaining: quantity})
}

// limitPrice puts bids below and asks above the base price within 80% of the
// spread, on a 0.01 tick.
func (g *Generator) limitPrice(side eventv1.Side) decimal.Decimal {
	offset := g.options.PriceSpread.Mul(decimal.NewFromFloat(g.rng.Float64() * 0.8))
	price := g.options.BasePrice.Add(offset)
	if side == eventv1.SideBuy {
		price = g.options.BasePrice.Sub(offset)
	}
	price = price.Round(2)
	if !price.IsPositive() {
		return g.options.BasePrice
	}
	return price
}

func (g *Generator) trade(order *eventv1.OrderEvent) {
	remaining := order.Quantity
	for remaining > 0 {
		best := g.best(order.Side)
		if best == nil {
			return
		}

		qty := min(remaining, best.remaining)
		g.execID++
		arrival := g.arrival()
		exec := &eventv1.ExecutionEvent{
			ArrivalTime:  arrival,
			SequenceNo:   g.seq,
			TransactTime: order.TransactTime,
			ExecID:       g.execID,
			Type:         eventv1.ExecTypeFill,
			Price:        best.price,
			Quantity:     qty,
			Money:        best.price.Mul(decimal.NewFromInt(qty)),
		}
		if order.Side == eventv1.SideBuy {
			exec.BuyOrderID, exec.SellOrderID = order.OrderID, best.id
		} else {
			exec.BuyOrderID, exec.SellOrderID = best.id, order.OrderID
		}
		g.executions = append(g.executions, exec)

		remaining -= qty
		best.remaining -= qty
		if best.remaining == 0 {
			g.remove(best)
		}
	}
}

// best returns the resting order a taker on side trades with first.
func (g *Generator) best(side eventv1.Side) *resting {
	var candidates []*resting
	for _, r := range g.book {
		if r.side != side {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	return slices.MinFunc(candidates, func(a, b *resting) int {
		byPrice := a.price.Cmp(b.price)
		if side == eventv1.SideSell {
			byPrice = -byPrice
		}
		return cmp.Or(byPrice, cmp.Compare(a.id, b.id))
	})
}

func (g *Generator) cancel(r *resting) {
	g.clock++
	g.execID++
	arrival := g.arrival()
	exec := &eventv1.ExecutionEvent{
		ArrivalTime:  arrival,
		SequenceNo:   g.seq,
		TransactTime: g.now(),
		ExecID:       g.execID,
		Type:         eventv1.ExecTypeCancel,
		Quantity:     r.remaining,
	}
	if r.side == eventv1.SideBuy {
		exec.BuyOrderID = r.id
	} else {
		exec.SellOrderID = r.id
	}
	g.executions = append(g.executions, exec)
	g.remove(r)
}

func (g *Generator) remove(r *resting) {
	g.book = slices.DeleteFunc(g.book, func(o *resting) bool { return o == r })
}
