package snapshotv1

import orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"

// Snapshot represents the aggregated depth and market statistics of the book
// right after one event was applied.
type Snapshot struct {
	ArrivalTime  int64                    `json:"clockatarrival"`
	TransactTime int64                    `json:"transacttime"`
	BestBids     []orderbookv1.PriceLevel `json:"bestBids"`
	BestAsks     []orderbookv1.PriceLevel `json:"bestAsks"`
	WorstBids    []orderbookv1.PriceLevel `json:"worstBids"`
	WorstAsks    []orderbookv1.PriceLevel `json:"worstAsks"`
	Stats        orderbookv1.Statistics   `json:"stats"`
}

// Levels returns the levels captured for the given view.
func (s *Snapshot) Levels(view orderbookv1.View) []orderbookv1.PriceLevel {
	switch view {
	case orderbookv1.BestBids:
		return s.BestBids
	case orderbookv1.BestAsks:
		return s.BestAsks
	case orderbookv1.WorstBids:
		return s.WorstBids
	case orderbookv1.WorstAsks:
		return s.WorstAsks
	default:
		return nil
	}
}
