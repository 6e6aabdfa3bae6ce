package merge

import (
	"cmp"
	"slices"

	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
)

// Merge combines the order and execution streams into one sequence ordered by
// transact time, with orders ahead of executions sharing a transact time.
// Records that tie on both keep their input order.
func Merge(orders []*eventv1.OrderEvent, executions []*eventv1.ExecutionEvent) []eventv1.Event {
	events := make([]eventv1.Event, 0, len(orders)+len(executions))
	for _, order := range orders {
		events = append(events, eventv1.Event{Kind: eventv1.KindOrder, Order: order})
	}
	for _, exec := range executions {
		events = append(events, eventv1.Event{Kind: eventv1.KindExecution, Execution: exec})
	}

	slices.SortStableFunc(events, func(a, b eventv1.Event) int {
		if c := cmp.Compare(a.TransactTime(), b.TransactTime()); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})

	return events
}
