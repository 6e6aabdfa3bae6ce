package orderbookv1

import (
	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
	"github.com/shopspring/decimal"
)

// RestingOrder is an order currently held by one side of the book.
type RestingOrder struct {
	OrderID     int64           `json:"orderID"`
	Side        eventv1.Side    `json:"side"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	ArrivalTime int64           `json:"arrivalTime"`
	AdmitTime   int64           `json:"admitTime"`
}

// IsBid checks if the order rests on the bid side.
func (o *RestingOrder) IsBid() bool {
	return o.Side == eventv1.SideBuy
}

// IsFilled checks if nothing is left to rest.
func (o *RestingOrder) IsFilled() bool {
	return o.Quantity <= 0
}

// AdmitResult is the outcome of applying a new order to the book.
type AdmitResult uint8

const (
	// AdmitRested means the order now rests in the book.
	AdmitRested AdmitResult = iota
	// AdmitSuppressed means the order executed on arrival after the open and never rested.
	AdmitSuppressed
	// AdmitDiscarded means a market or best-price order found no price to rest at.
	AdmitDiscarded
	// AdmitIgnored means the order carried no quantity.
	AdmitIgnored
)

func (r AdmitResult) String() string {
	switch r {
	case AdmitRested:
		return "rested"
	case AdmitSuppressed:
		return "suppressed"
	case AdmitDiscarded:
		return "discarded"
	case AdmitIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}
