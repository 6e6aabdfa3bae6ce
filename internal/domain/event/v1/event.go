package eventv1

import "github.com/shopspring/decimal"

// Side is the side of the book an order belongs to.
type Side int8

const (
	// SideBuy is a bid order.
	SideBuy Side = 1
	// SideSell is an ask order.
	SideSell Side = 2
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unknown"
	}
}

// OrderType is the pricing instruction of an order.
type OrderType byte

const (
	// OrderTypeMarket takes the best opposite price.
	OrderTypeMarket OrderType = '1'
	// OrderTypeLimit rests at its own price.
	OrderTypeLimit OrderType = '2'
	// OrderTypeBestPrice joins the best price on its own side.
	OrderTypeBestPrice OrderType = 'u'
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeMarket:
		return "market"
	case OrderTypeLimit:
		return "limit"
	case OrderTypeBestPrice:
		return "best"
	default:
		return "unknown"
	}
}

// ResolvesPrice reports whether the order price is taken from the book instead of the record.
func (t OrderType) ResolvesPrice() bool {
	return t == OrderTypeMarket || t == OrderTypeBestPrice
}

// ExecType is the kind of an execution record.
type ExecType byte

const (
	// ExecTypeFill is a trade.
	ExecTypeFill ExecType = 'f'
	// ExecTypeCancel is a cancellation.
	ExecTypeCancel ExecType = '4'
)

func (t ExecType) String() string {
	switch t {
	case ExecTypeFill:
		return "fill"
	case ExecTypeCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// OrderEvent is a new order record.
type OrderEvent struct {
	ArrivalTime  int64           `json:"clockatarrival"`
	SequenceNo   int64           `json:"sequenceno"`
	TransactTime int64           `json:"transacttime"`
	OrderID      int64           `json:"applseqnum"`
	Side         Side            `json:"side"`
	Type         OrderType       `json:"ordertype"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"orderqty"`
}

// ExecutionEvent is a fill or cancel record. A zero order id means the side is not involved.
type ExecutionEvent struct {
	ArrivalTime  int64           `json:"clockatarrival"`
	SequenceNo   int64           `json:"sequenceno"`
	TransactTime int64           `json:"transacttime"`
	ExecID       int64           `json:"applseqnum"`
	Type         ExecType        `json:"exectype"`
	Price        decimal.Decimal `json:"tradeprice"`
	Quantity     int64           `json:"tradeqty"`
	Money        decimal.Decimal `json:"trademoney"`
	BuyOrderID   int64           `json:"bidapplseqnum"`
	SellOrderID  int64           `json:"offerapplseqnum"`
}

// References reports whether the execution names the given order on either side.
func (e *ExecutionEvent) References(orderID int64) bool {
	return orderID != 0 && (e.BuyOrderID == orderID || e.SellOrderID == orderID)
}

// Kind tells which payload an Event carries. Its value is the tie-break rank at equal transact time.
type Kind uint8

const (
	// KindOrder sorts before executions sharing its transact time.
	KindOrder Kind = 0
	// KindExecution sorts after orders sharing its transact time.
	KindExecution Kind = 1
)

// Event is one entry of the merged replay sequence.
type Event struct {
	Kind      Kind
	Order     *OrderEvent
	Execution *ExecutionEvent
}

// TransactTime returns the transact time of the carried record.
func (e Event) TransactTime() int64 {
	if e.Kind == KindOrder {
		return e.Order.TransactTime
	}
	return e.Execution.TransactTime
}

// ArrivalTime returns the arrival clock of the carried record.
func (e Event) ArrivalTime() int64 {
	if e.Kind == KindOrder {
		return e.Order.ArrivalTime
	}
	return e.Execution.ArrivalTime
}
