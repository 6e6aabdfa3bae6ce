package merge

import (
	"testing"

	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id, t int64) *eventv1.OrderEvent {
	return &eventv1.OrderEvent{OrderID: id, TransactTime: t}
}

func exec(id, t int64) *eventv1.ExecutionEvent {
	return &eventv1.ExecutionEvent{ExecID: id, TransactTime: t}
}

type key struct {
	kind eventv1.Kind
	id   int64
}

func keys(events []eventv1.Event) []key {
	out := make([]key, 0, len(events))
	for _, e := range events {
		if e.Kind == eventv1.KindOrder {
			out = append(out, key{e.Kind, e.Order.OrderID})
			continue
		}
		out = append(out, key{e.Kind, e.Execution.ExecID})
	}
	return out
}

func TestMerge(t *testing.T) {
	testCases := []struct {
		name       string
		orders     []*eventv1.OrderEvent
		executions []*eventv1.ExecutionEvent
		expected   []key
	}{
		{
			name:     "empty streams",
			expected: []key{},
		},
		{
			name:       "orders before executions at equal time",
			orders:     []*eventv1.OrderEvent{order(1, 100)},
			executions: []*eventv1.ExecutionEvent{exec(10, 100)},
			expected:   []key{{eventv1.KindOrder, 1}, {eventv1.KindExecution, 10}},
		},
		{
			name:       "interleaves by transact time",
			orders:     []*eventv1.OrderEvent{order(1, 100), order(2, 300)},
			executions: []*eventv1.ExecutionEvent{exec(10, 50), exec(11, 200), exec(12, 300)},
			expected: []key{
				{eventv1.KindExecution, 10},
				{eventv1.KindOrder, 1},
				{eventv1.KindExecution, 11},
				{eventv1.KindOrder, 2},
				{eventv1.KindExecution, 12},
			},
		},
		{
			name:       "ties keep input order",
			orders:     []*eventv1.OrderEvent{order(3, 100), order(1, 100), order(2, 100)},
			executions: []*eventv1.ExecutionEvent{exec(12, 100), exec(11, 100)},
			expected: []key{
				{eventv1.KindOrder, 3},
				{eventv1.KindOrder, 1},
				{eventv1.KindOrder, 2},
				{eventv1.KindExecution, 12},
				{eventv1.KindExecution, 11},
			},
		},
		{
			name:       "unsorted input is ordered",
			orders:     []*eventv1.OrderEvent{order(2, 500), order(1, 100)},
			executions: []*eventv1.ExecutionEvent{exec(10, 400)},
			expected: []key{
				{eventv1.KindOrder, 1},
				{eventv1.KindExecution, 10},
				{eventv1.KindOrder, 2},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			events := Merge(tc.orders, tc.executions)
			require.Len(t, events, len(tc.orders)+len(tc.executions))
			assert.Equal(t, tc.expected, keys(events))
		})
	}
}
