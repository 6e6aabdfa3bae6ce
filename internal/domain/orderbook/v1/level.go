package orderbookv1

import "github.com/shopspring/decimal"

// PriceLevel is the summed resting quantity at one exact price on one side.
type PriceLevel struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"qty"`
}

// View selects a side of the book and the direction it is walked in.
type View uint8

const (
	// BestBids walks bids from the highest price down.
	BestBids View = iota
	// BestAsks walks asks from the lowest price up.
	BestAsks
	// WorstBids walks bids from the lowest price up.
	WorstBids
	// WorstAsks walks asks from the highest price down.
	WorstAsks
)

// Views lists every view in output column order.
var Views = []View{BestBids, BestAsks, WorstBids, WorstAsks}

// IsBid reports whether the view reads the bid side.
func (v View) IsBid() bool {
	return v == BestBids || v == WorstBids
}

// Ascending reports whether the view walks prices from low to high.
func (v View) Ascending() bool {
	return v == BestAsks || v == WorstBids
}

// Prefix is the column prefix of the view, e.g. best_bid.
func (v View) Prefix() string {
	switch v {
	case BestBids:
		return "best_bid"
	case BestAsks:
		return "best_ask"
	case WorstBids:
		return "worst_bid"
	case WorstAsks:
		return "worst_ask"
	default:
		return "unknown"
	}
}
