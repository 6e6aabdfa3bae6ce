package orderbookv1

import (
	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
	"github.com/shopspring/decimal"
)

// Orderbook defines the replayed two-sided book of one instrument.
type Orderbook interface {
	// Admit applies a new order. immediate tells whether the order is known to
	// execute on arrival.
	Admit(order *eventv1.OrderEvent, immediate bool) AdmitResult
	// Execute applies a fill or a cancel.
	Execute(exec *eventv1.ExecutionEvent)
	// Levels returns up to depth aggregated levels of the given view.
	Levels(view View, depth int) []PriceLevel
	BestBid() (decimal.Decimal, bool)
	BestAsk() (decimal.Decimal, bool)
	Order(orderID int64) (*RestingOrder, bool)
	Statistics() Statistics
	IsOpen(transactTime int64) bool
}
