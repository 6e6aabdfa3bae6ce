package orderbookv1

import "github.com/shopspring/decimal"

// Statistics is the running market state of one book.
type Statistics struct {
	CumulativeVolume   int64           `json:"cvl"`
	LastPrice          decimal.Decimal `json:"lpr"`
	ParticipationCount int64           `json:"cto"`
	TradeCount         int64           `json:"nts"`
	OpeningPrice       decimal.Decimal `json:"opx"`
	Opened             bool            `json:"opened"`
}

// RecordFill folds one fill into the statistics. Every non-zero side id counts
// as a participation whether or not the order is still resting.
func (s *Statistics) RecordFill(price decimal.Decimal, quantity int64, buyOrderID, sellOrderID int64) {
	s.CumulativeVolume += quantity
	s.LastPrice = price
	s.TradeCount++

	if !s.Opened {
		s.OpeningPrice = price
		s.Opened = true
	}

	if buyOrderID != 0 {
		s.ParticipationCount++
	}
	if sellOrderID != 0 {
		s.ParticipationCount++
	}
}
