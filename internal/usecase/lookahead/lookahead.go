package lookahead

import eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"

// Immediate is the set of order ids known to trade right when they arrive.
type Immediate map[int64]struct{}

// Contains reports whether the order id traded on arrival.
func (s Immediate) Contains(orderID int64) bool {
	_, ok := s[orderID]
	return ok
}

// Scan pairs fills against orders. An order is marked when some fill names it
// on either side and the two transact times are at most tolerance apart.
// Cancels never mark an order.
func Scan(orders []*eventv1.OrderEvent, executions []*eventv1.ExecutionEvent, tolerance int64) Immediate {
	times := make(map[int64][]int64, len(orders))
	for _, order := range orders {
		if order.OrderID == 0 {
			continue
		}
		times[order.OrderID] = append(times[order.OrderID], order.TransactTime)
	}

	immediate := make(Immediate)
	for _, exec := range executions {
		if exec.Type != eventv1.ExecTypeFill {
			continue
		}
		for _, id := range [2]int64{exec.BuyOrderID, exec.SellOrderID} {
			if id == 0 || immediate.Contains(id) {
				continue
			}
			for _, t := range times[id] {
				if abs(t-exec.TransactTime) <= tolerance {
					immediate[id] = struct{}{}
					break
				}
			}
		}
	}

	return immediate
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
