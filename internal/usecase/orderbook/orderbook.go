package orderbook

import (
	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
	orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// Options configures a Book.
type Options struct {
	// OpeningTime is the transact time from which immediately executing market
	// and best-price orders stop resting.
	OpeningTime int64
}

// Book is the replayed two-sided order book of one instrument. It is owned by a
// single replay loop and is not safe for concurrent use.
type Book struct {
	opts Options

	bids map[int64]*orderbookv1.RestingOrder // orderID -> order
	asks map[int64]*orderbookv1.RestingOrder // orderID -> order

	bidLevels *levelIndex
	askLevels *levelIndex

	stats orderbookv1.Statistics
}

var _ orderbookv1.Orderbook = (*Book)(nil)

// NewBook creates an empty book.
func NewBook(opts Options) *Book {
	return &Book{
		opts:      opts,
		bids:      make(map[int64]*orderbookv1.RestingOrder),
		asks:      make(map[int64]*orderbookv1.RestingOrder),
		bidLevels: newLevelIndex(),
		askLevels: newLevelIndex(),
	}
}

// IsOpen reports whether the transact time is at or after the opening time.
func (b *Book) IsOpen(transactTime int64) bool {
	return transactTime >= b.opts.OpeningTime
}

// Admit applies a new order event.
func (b *Book) Admit(order *eventv1.OrderEvent, immediate bool) orderbookv1.AdmitResult {
	if immediate && order.Type.ResolvesPrice() && b.IsOpen(order.TransactTime) {
		return orderbookv1.AdmitSuppressed
	}

	if order.Quantity <= 0 {
		return orderbookv1.AdmitIgnored
	}

	price, ok := b.resolvePrice(order)
	if !ok {
		return orderbookv1.AdmitDiscarded
	}

	b.remove(order.OrderID)
	b.rest(&orderbookv1.RestingOrder{
		OrderID:     order.OrderID,
		Side:        order.Side,
		Price:       price,
		Quantity:    order.Quantity,
		ArrivalTime: order.ArrivalTime,
		AdmitTime:   order.TransactTime,
	})

	return orderbookv1.AdmitRested
}

// resolvePrice returns the price the order rests at. Market orders take the
// best opposite price and best-price orders the best price of their own side.
// A missing or non-positive reference price means there is nothing to rest at.
func (b *Book) resolvePrice(order *eventv1.OrderEvent) (decimal.Decimal, bool) {
	var (
		price decimal.Decimal
		ok    bool
	)

	buy := order.Side == eventv1.SideBuy
	switch order.Type {
	case eventv1.OrderTypeMarket:
		if buy {
			price, ok = b.BestAsk()
		} else {
			price, ok = b.BestBid()
		}
	case eventv1.OrderTypeBestPrice:
		if buy {
			price, ok = b.BestBid()
		} else {
			price, ok = b.BestAsk()
		}
	default:
		return order.Price, true
	}

	if !ok || !price.IsPositive() {
		return decimal.Zero, false
	}
	return price, true
}

// Execute applies a fill or a cancel. Ids that do not rest on the named side are skipped.
func (b *Book) Execute(exec *eventv1.ExecutionEvent) {
	switch exec.Type {
	case eventv1.ExecTypeFill:
		b.stats.RecordFill(exec.Price, exec.Quantity, exec.BuyOrderID, exec.SellOrderID)
		b.reduce(b.bids, b.bidLevels, exec.BuyOrderID, exec.Quantity)
		b.reduce(b.asks, b.askLevels, exec.SellOrderID, exec.Quantity)
	case eventv1.ExecTypeCancel:
		b.cancel(b.bids, b.bidLevels, exec.BuyOrderID)
		b.cancel(b.asks, b.askLevels, exec.SellOrderID)
	}
}

func (b *Book) reduce(orders map[int64]*orderbookv1.RestingOrder, levels *levelIndex, orderID, quantity int64) {
	if orderID == 0 {
		return
	}
	order, ok := orders[orderID]
	if !ok {
		return
	}

	filled := min(quantity, order.Quantity)
	order.Quantity -= quantity
	levels.sub(order.Price, filled)

	if order.IsFilled() {
		delete(orders, orderID)
	}
}

func (b *Book) cancel(orders map[int64]*orderbookv1.RestingOrder, levels *levelIndex, orderID int64) {
	if orderID == 0 {
		return
	}
	order, ok := orders[orderID]
	if !ok {
		return
	}

	levels.sub(order.Price, order.Quantity)
	delete(orders, orderID)
}

func (b *Book) rest(order *orderbookv1.RestingOrder) {
	if order.IsBid() {
		b.bids[order.OrderID] = order
		b.bidLevels.add(order.Price, order.Quantity)
		return
	}
	b.asks[order.OrderID] = order
	b.askLevels.add(order.Price, order.Quantity)
}

// remove drops any resting copy of the order id from both sides.
func (b *Book) remove(orderID int64) {
	b.cancel(b.bids, b.bidLevels, orderID)
	b.cancel(b.asks, b.askLevels, orderID)
}

// Levels returns up to depth aggregated price levels of the view.
func (b *Book) Levels(view orderbookv1.View, depth int) []orderbookv1.PriceLevel {
	levels := b.askLevels
	if view.IsBid() {
		levels = b.bidLevels
	}
	return levels.walk(view.Ascending(), depth)
}

// BestBid returns the highest bid price, or false if there are no bids.
func (b *Book) BestBid() (decimal.Decimal, bool) {
	return b.bidLevels.max()
}

// BestAsk returns the lowest ask price, or false if there are no asks.
func (b *Book) BestAsk() (decimal.Decimal, bool) {
	return b.askLevels.min()
}

// Order returns a copy of the resting order with the given id.
func (b *Book) Order(orderID int64) (*orderbookv1.RestingOrder, bool) {
	if order, ok := b.bids[orderID]; ok {
		cp := *order
		return &cp, true
	}
	if order, ok := b.asks[orderID]; ok {
		cp := *order
		return &cp, true
	}
	return nil, false
}

// Size returns the number of resting bid and ask orders.
func (b *Book) Size() (bids, asks int) {
	return len(b.bids), len(b.asks)
}

// Statistics returns a copy of the running market statistics.
func (b *Book) Statistics() orderbookv1.Statistics {
	return b.stats
}
