package orderbook

import (
	"math/rand/v2"
	"sort"
	"testing"

	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
	orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openingTime = 93000000

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newTestBook() *Book {
	return NewBook(Options{OpeningTime: openingTime})
}

func limitOrder(id int64, side eventv1.Side, price string, qty int64, t int64) *eventv1.OrderEvent {
	return &eventv1.OrderEvent{
		OrderID:      id,
		Side:         side,
		Type:         eventv1.OrderTypeLimit,
		Price:        d(price),
		Quantity:     qty,
		TransactTime: t,
		ArrivalTime:  t,
	}
}

func typedOrder(id int64, side eventv1.Side, typ eventv1.OrderType, qty int64, t int64) *eventv1.OrderEvent {
	return &eventv1.OrderEvent{
		OrderID:      id,
		Side:         side,
		Type:         typ,
		Quantity:     qty,
		TransactTime: t,
	}
}

func fill(price string, qty, buyID, sellID int64) *eventv1.ExecutionEvent {
	return &eventv1.ExecutionEvent{
		Type:        eventv1.ExecTypeFill,
		Price:       d(price),
		Quantity:    qty,
		BuyOrderID:  buyID,
		SellOrderID: sellID,
	}
}

func cancel(buyID, sellID int64) *eventv1.ExecutionEvent {
	return &eventv1.ExecutionEvent{
		Type:        eventv1.ExecTypeCancel,
		BuyOrderID:  buyID,
		SellOrderID: sellID,
	}
}

func assertLevels(t *testing.T, expected [][2]string, actual []orderbookv1.PriceLevel) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i, lvl := range actual {
		assert.True(t, lvl.Price.Equal(d(expected[i][0])), "level %d price: expected %s, got %s", i, expected[i][0], lvl.Price)
		assert.Equal(t, d(expected[i][1]).IntPart(), lvl.Quantity, "level %d quantity", i)
	}
}

func TestNewBook(t *testing.T) {
	b := newTestBook()

	bids, asks := b.Size()
	assert.Zero(t, bids)
	assert.Zero(t, asks)

	_, ok := b.BestBid()
	assert.False(t, ok)
	_, ok = b.BestAsk()
	assert.False(t, ok)

	for _, view := range orderbookv1.Views {
		levels := b.Levels(view, 5)
		assert.NotNil(t, levels)
		assert.Empty(t, levels)
	}
	assert.Equal(t, orderbookv1.Statistics{}, b.Statistics())
}

func TestBook_AdmitLimit(t *testing.T) {
	b := newTestBook()

	assert.Equal(t, orderbookv1.AdmitRested, b.Admit(limitOrder(1, eventv1.SideBuy, "9.50", 2, 100), false))
	assert.Equal(t, orderbookv1.AdmitRested, b.Admit(limitOrder(2, eventv1.SideBuy, "9.50", 3, 101), false))
	assert.Equal(t, orderbookv1.AdmitRested, b.Admit(limitOrder(3, eventv1.SideSell, "10.00", 4, 102), false))

	assertLevels(t, [][2]string{{"9.50", "5"}}, b.Levels(orderbookv1.BestBids, 5))
	assertLevels(t, [][2]string{{"10.00", "4"}}, b.Levels(orderbookv1.BestAsks, 5))

	order, ok := b.Order(2)
	require.True(t, ok)
	assert.Equal(t, int64(3), order.Quantity)
	assert.Equal(t, int64(101), order.AdmitTime)
	assert.True(t, order.IsBid())
}

func TestBook_AdmitNonPositiveQuantity(t *testing.T) {
	b := newTestBook()

	assert.Equal(t, orderbookv1.AdmitIgnored, b.Admit(limitOrder(1, eventv1.SideBuy, "10", 0, 100), false))
	assert.Equal(t, orderbookv1.AdmitIgnored, b.Admit(limitOrder(2, eventv1.SideSell, "10", -3, 100), false))

	bids, asks := b.Size()
	assert.Zero(t, bids)
	assert.Zero(t, asks)
}

func TestBook_AdmitDecimalEqualityGroupsLevels(t *testing.T) {
	b := newTestBook()

	b.Admit(limitOrder(1, eventv1.SideSell, "10.0", 3, 100), false)
	b.Admit(limitOrder(2, eventv1.SideSell, "10.00", 4, 100), false)

	assertLevels(t, [][2]string{{"10", "7"}}, b.Levels(orderbookv1.BestAsks, 5))
}

func TestBook_AdmitResolvesPrice(t *testing.T) {
	testCases := []struct {
		name          string
		order         *eventv1.OrderEvent
		expected      orderbookv1.AdmitResult
		expectedPrice string
	}{
		{
			name:          "market buy takes best ask",
			order:         typedOrder(10, eventv1.SideBuy, eventv1.OrderTypeMarket, 1, 100),
			expected:      orderbookv1.AdmitRested,
			expectedPrice: "10.10",
		},
		{
			name:          "market sell takes best bid",
			order:         typedOrder(10, eventv1.SideSell, eventv1.OrderTypeMarket, 1, 100),
			expected:      orderbookv1.AdmitRested,
			expectedPrice: "9.90",
		},
		{
			name:          "best-price buy joins best bid",
			order:         typedOrder(10, eventv1.SideBuy, eventv1.OrderTypeBestPrice, 1, 100),
			expected:      orderbookv1.AdmitRested,
			expectedPrice: "9.90",
		},
		{
			name:          "best-price sell joins best ask",
			order:         typedOrder(10, eventv1.SideSell, eventv1.OrderTypeBestPrice, 1, 100),
			expected:      orderbookv1.AdmitRested,
			expectedPrice: "10.10",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBook()
			b.Admit(limitOrder(1, eventv1.SideBuy, "9.80", 1, 1), false)
			b.Admit(limitOrder(2, eventv1.SideBuy, "9.90", 1, 1), false)
			b.Admit(limitOrder(3, eventv1.SideSell, "10.10", 1, 1), false)
			b.Admit(limitOrder(4, eventv1.SideSell, "10.20", 1, 1), false)

			assert.Equal(t, tc.expected, b.Admit(tc.order, false))

			order, ok := b.Order(tc.order.OrderID)
			require.True(t, ok)
			assert.True(t, order.Price.Equal(d(tc.expectedPrice)))
		})
	}
}

func TestBook_AdmitDiscardsWithoutReferencePrice(t *testing.T) {
	testCases := []struct {
		name  string
		setup []*eventv1.OrderEvent
		order *eventv1.OrderEvent
	}{
		{
			name:  "market buy with no asks",
			setup: []*eventv1.OrderEvent{limitOrder(1, eventv1.SideBuy, "9.90", 1, 1)},
			order: typedOrder(10, eventv1.SideBuy, eventv1.OrderTypeMarket, 1, 100),
		},
		{
			name:  "market sell with no bids",
			setup: []*eventv1.OrderEvent{limitOrder(1, eventv1.SideSell, "10.10", 1, 1)},
			order: typedOrder(10, eventv1.SideSell, eventv1.OrderTypeMarket, 1, 100),
		},
		{
			name:  "best-price buy with no bids",
			setup: []*eventv1.OrderEvent{limitOrder(1, eventv1.SideSell, "10.10", 1, 1)},
			order: typedOrder(10, eventv1.SideBuy, eventv1.OrderTypeBestPrice, 1, 100),
		},
		{
			name:  "best-price sell with no asks",
			setup: []*eventv1.OrderEvent{limitOrder(1, eventv1.SideBuy, "9.90", 1, 1)},
			order: typedOrder(10, eventv1.SideSell, eventv1.OrderTypeBestPrice, 1, 100),
		},
		{
			name:  "market buy against zero-priced ask",
			setup: []*eventv1.OrderEvent{limitOrder(1, eventv1.SideSell, "0", 1, 1)},
			order: typedOrder(10, eventv1.SideBuy, eventv1.OrderTypeMarket, 1, 100),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBook()
			for _, o := range tc.setup {
				b.Admit(o, false)
			}

			assert.Equal(t, orderbookv1.AdmitDiscarded, b.Admit(tc.order, false))
			_, ok := b.Order(tc.order.OrderID)
			assert.False(t, ok)
		})
	}
}

func TestBook_AdmitOpeningSuppression(t *testing.T) {
	testCases := []struct {
		name      string
		order     *eventv1.OrderEvent
		immediate bool
		expected  orderbookv1.AdmitResult
	}{
		{
			name:      "immediate market order after open is suppressed",
			order:     typedOrder(10, eventv1.SideBuy, eventv1.OrderTypeMarket, 1, openingTime),
			immediate: true,
			expected:  orderbookv1.AdmitSuppressed,
		},
		{
			name:      "immediate best-price order after open is suppressed",
			order:     typedOrder(10, eventv1.SideBuy, eventv1.OrderTypeBestPrice, 1, openingTime+1),
			immediate: true,
			expected:  orderbookv1.AdmitSuppressed,
		},
		{
			name:      "immediate market order before open rests",
			order:     typedOrder(10, eventv1.SideBuy, eventv1.OrderTypeMarket, 1, openingTime-1),
			immediate: true,
			expected:  orderbookv1.AdmitRested,
		},
		{
			name:      "immediate limit order after open rests",
			order:     limitOrder(10, eventv1.SideBuy, "9.95", 1, openingTime),
			immediate: true,
			expected:  orderbookv1.AdmitRested,
		},
		{
			name:      "non-immediate market order after open rests",
			order:     typedOrder(10, eventv1.SideBuy, eventv1.OrderTypeMarket, 1, openingTime),
			immediate: false,
			expected:  orderbookv1.AdmitRested,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBook()
			b.Admit(limitOrder(1, eventv1.SideBuy, "9.90", 1, 1), false)
			b.Admit(limitOrder(2, eventv1.SideSell, "10.10", 1, 1), false)

			assert.Equal(t, tc.expected, b.Admit(tc.order, tc.immediate))
			_, rests := b.Order(tc.order.OrderID)
			assert.Equal(t, tc.expected == orderbookv1.AdmitRested, rests)
		})
	}
}

func TestBook_ReadmitMovesOrder(t *testing.T) {
	b := newTestBook()

	b.Admit(limitOrder(1, eventv1.SideBuy, "9.90", 5, 100), false)
	b.Admit(limitOrder(1, eventv1.SideSell, "10.10", 2, 200), false)

	bids, asks := b.Size()
	assert.Equal(t, 0, bids)
	assert.Equal(t, 1, asks)
	assert.Empty(t, b.Levels(orderbookv1.BestBids, 5))
	assertLevels(t, [][2]string{{"10.10", "2"}}, b.Levels(orderbookv1.BestAsks, 5))

	b.Admit(limitOrder(1, eventv1.SideSell, "10.20", 3, 300), false)
	assertLevels(t, [][2]string{{"10.20", "3"}}, b.Levels(orderbookv1.BestAsks, 5))
}

func TestBook_ExecuteFill(t *testing.T) {
	b := newTestBook()
	b.Admit(limitOrder(1, eventv1.SideBuy, "10.00", 5, 100), false)
	b.Admit(limitOrder(2, eventv1.SideSell, "10.00", 3, 100), false)

	b.Execute(fill("10.00", 2, 1, 2))

	buy, ok := b.Order(1)
	require.True(t, ok)
	assert.Equal(t, int64(3), buy.Quantity)
	sell, ok := b.Order(2)
	require.True(t, ok)
	assert.Equal(t, int64(1), sell.Quantity)
	assertLevels(t, [][2]string{{"10", "3"}}, b.Levels(orderbookv1.BestBids, 5))
	assertLevels(t, [][2]string{{"10", "1"}}, b.Levels(orderbookv1.BestAsks, 5))

	// overfill removes the order and its level
	b.Execute(fill("10.00", 4, 0, 2))
	_, ok = b.Order(2)
	assert.False(t, ok)
	assert.Empty(t, b.Levels(orderbookv1.BestAsks, 5))

	stats := b.Statistics()
	assert.Equal(t, int64(6), stats.CumulativeVolume)
	assert.Equal(t, int64(2), stats.TradeCount)
	assert.Equal(t, int64(3), stats.ParticipationCount)
	assert.True(t, stats.OpeningPrice.Equal(d("10")))
	assert.True(t, stats.Opened)
}

func TestBook_ExecuteFillUnknownOrders(t *testing.T) {
	b := newTestBook()
	b.Admit(limitOrder(1, eventv1.SideBuy, "10.00", 5, 100), false)

	// id 1 named on the sell side does not touch the resting bid
	b.Execute(fill("10.00", 2, 99, 1))

	order, ok := b.Order(1)
	require.True(t, ok)
	assert.Equal(t, int64(5), order.Quantity)

	stats := b.Statistics()
	assert.Equal(t, int64(2), stats.ParticipationCount)
	assert.Equal(t, int64(2), stats.CumulativeVolume)
}

func TestBook_OpeningPriceSetOnce(t *testing.T) {
	b := newTestBook()

	prices := []string{"10.00", "10.50", "9.75", "11.00"}
	for _, p := range prices {
		b.Execute(fill(p, 1, 0, 0))
	}

	stats := b.Statistics()
	assert.True(t, stats.OpeningPrice.Equal(d("10.00")))
	assert.True(t, stats.LastPrice.Equal(d("11.00")))
	assert.Equal(t, int64(len(prices)), stats.TradeCount)
	assert.Zero(t, stats.ParticipationCount)
}

func TestBook_ExecuteCancel(t *testing.T) {
	b := newTestBook()
	b.Admit(limitOrder(1, eventv1.SideBuy, "9.90", 5, 100), false)
	b.Admit(limitOrder(2, eventv1.SideSell, "10.10", 5, 100), false)
	b.Execute(fill("10.00", 1, 1, 0))
	before := b.Statistics()

	b.Execute(cancel(1, 0))
	_, ok := b.Order(1)
	assert.False(t, ok)
	assert.Empty(t, b.Levels(orderbookv1.BestBids, 5))

	// canceling again or canceling unknown ids is a no-op
	b.Execute(cancel(1, 0))
	b.Execute(cancel(0, 42))
	b.Execute(cancel(0, 0))

	_, ok = b.Order(2)
	assert.True(t, ok)
	assert.Equal(t, before, b.Statistics())
}

func TestBook_Levels(t *testing.T) {
	b := newTestBook()
	for i, p := range []string{"9.1", "9.2", "9.3", "9.4", "9.5", "9.6", "9.7"} {
		b.Admit(limitOrder(int64(i+1), eventv1.SideBuy, p, int64(i+1), 1), false)
	}
	for i, p := range []string{"10.1", "10.2", "10.3"} {
		b.Admit(limitOrder(int64(i+100), eventv1.SideSell, p, 10, 1), false)
	}

	assertLevels(t, [][2]string{{"9.7", "7"}, {"9.6", "6"}, {"9.5", "5"}, {"9.4", "4"}, {"9.3", "3"}}, b.Levels(orderbookv1.BestBids, 5))
	assertLevels(t, [][2]string{{"9.1", "1"}, {"9.2", "2"}, {"9.3", "3"}, {"9.4", "4"}, {"9.5", "5"}}, b.Levels(orderbookv1.WorstBids, 5))
	assertLevels(t, [][2]string{{"10.1", "10"}, {"10.2", "10"}, {"10.3", "10"}}, b.Levels(orderbookv1.BestAsks, 5))
	assertLevels(t, [][2]string{{"10.3", "10"}, {"10.2", "10"}}, b.Levels(orderbookv1.WorstAsks, 2))
	assert.Empty(t, b.Levels(orderbookv1.BestBids, 0))

	bid, ok := b.BestBid()
	require.True(t, ok)
	assert.True(t, bid.Equal(d("9.7")))
	ask, ok := b.BestAsk()
	require.True(t, ok)
	assert.True(t, ask.Equal(d("10.1")))
}

func TestBook_CrossedBookTolerated(t *testing.T) {
	b := newTestBook()
	b.Admit(limitOrder(1, eventv1.SideBuy, "10.50", 1, 1), false)
	b.Admit(limitOrder(2, eventv1.SideSell, "10.00", 1, 1), false)

	bid, _ := b.BestBid()
	ask, _ := b.BestAsk()
	assert.True(t, bid.GreaterThan(ask))
}

func TestBook_OrderAndFillAtSameTime(t *testing.T) {
	b := newTestBook()
	b.Admit(limitOrder(1, eventv1.SideBuy, "10.00", 5, 100), false)
	b.Execute(fill("10.00", 5, 1, 0))

	assert.Empty(t, b.Levels(orderbookv1.BestBids, 5))
	stats := b.Statistics()
	assert.Equal(t, int64(5), stats.CumulativeVolume)
	assert.True(t, stats.LastPrice.Equal(d("10.00")))
}

// naiveLevels groups the resting orders by exact price and sorts the result.
func naiveLevels(orders map[int64]*orderbookv1.RestingOrder, ascending bool, depth int) []orderbookv1.PriceLevel {
	var levels []orderbookv1.PriceLevel
	for _, order := range orders {
		found := false
		for i := range levels {
			if levels[i].Price.Equal(order.Price) {
				levels[i].Quantity += order.Quantity
				found = true
				break
			}
		}
		if !found {
			levels = append(levels, orderbookv1.PriceLevel{Price: order.Price, Quantity: order.Quantity})
		}
	}

	sort.Slice(levels, func(i, j int) bool {
		if ascending {
			return levels[i].Price.LessThan(levels[j].Price)
		}
		return levels[i].Price.GreaterThan(levels[j].Price)
	})

	if len(levels) > depth {
		levels = levels[:depth]
	}
	return levels
}

func TestBook_LevelIndexMatchesNaiveAggregation(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1024))
	b := newTestBook()

	prices := []string{"9.50", "9.5", "9.60", "9.70", "9.80", "10.00", "10.0", "10.10", "10.20", "10.30"}
	sides := []eventv1.Side{eventv1.SideBuy, eventv1.SideSell}
	types := []eventv1.OrderType{eventv1.OrderTypeLimit, eventv1.OrderTypeLimit, eventv1.OrderTypeMarket, eventv1.OrderTypeBestPrice}

	for step := range 5000 {
		t64 := int64(openingTime - 2500 + step)
		id := rng.Int64N(200) + 1

		switch rng.IntN(4) {
		case 0, 1:
			b.Admit(&eventv1.OrderEvent{
				OrderID:      id,
				Side:         sides[rng.IntN(2)],
				Type:         types[rng.IntN(len(types))],
				Price:        d(prices[rng.IntN(len(prices))]),
				Quantity:     rng.Int64N(12) - 1,
				TransactTime: t64,
			}, rng.IntN(3) == 0)
		case 2:
			b.Execute(fill(prices[rng.IntN(len(prices))], rng.Int64N(8)+1, rng.Int64N(200), rng.Int64N(200)))
		case 3:
			b.Execute(cancel(rng.Int64N(200), rng.Int64N(200)))
		}

		for _, order := range b.bids {
			require.Positive(t, order.Quantity)
			_, onAsk := b.asks[order.OrderID]
			require.False(t, onAsk, "order %d rests on both sides", order.OrderID)
		}
		for _, order := range b.asks {
			require.Positive(t, order.Quantity)
		}

		depth := rng.IntN(12)
		for _, view := range orderbookv1.Views {
			orders := b.asks
			if view.IsBid() {
				orders = b.bids
			}
			expected := naiveLevels(orders, view.Ascending(), depth)
			actual := b.Levels(view, depth)

			require.Len(t, actual, len(expected), "step %d view %s", step, view.Prefix())
			for i := range expected {
				require.True(t, expected[i].Price.Equal(actual[i].Price), "step %d view %s level %d", step, view.Prefix(), i)
				require.Equal(t, expected[i].Quantity, actual[i].Quantity, "step %d view %s level %d", step, view.Prefix(), i)
			}
		}

		require.Equal(t, len(naiveLevels(b.bids, true, len(b.bids)+1)), b.bidLevels.len())
		require.Equal(t, len(naiveLevels(b.asks, true, len(b.asks)+1)), b.askLevels.len())
	}
}
