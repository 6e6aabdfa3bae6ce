package csvfeed

import (
	"encoding/csv"
	"os"
	"strconv"

	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
	"github.com/muhammadchandra19/book-replay/pkg/errors"
)

// OrderHeader is the column layout of the order file.
var OrderHeader = []string{"clockatarrival", "sequenceno", "transacttime", "applseqnum", "side", "ordertype", "price", "orderqty"}

// ExecutionHeader is the column layout of the trade file.
var ExecutionHeader = []string{"clockatarrival", "sequenceno", "transacttime", "applseqnum", "exectype", "tradeprice", "tradeqty", "trademoney", "bidapplseqnum", "offerapplseqnum"}

// WriteOrders writes orders in the layout Reader.Orders reads.
func WriteOrders(path string, orders []*eventv1.OrderEvent) error {
	return writeRecords(path, OrderHeader, len(orders), func(i int) []string {
		o := orders[i]
		return []string{
			strconv.FormatInt(o.ArrivalTime, 10),
			strconv.FormatInt(o.SequenceNo, 10),
			strconv.FormatInt(o.TransactTime, 10),
			strconv.FormatInt(o.OrderID, 10),
			strconv.Itoa(int(o.Side)),
			string(rune(o.Type)),
			o.Price.String(),
			strconv.FormatInt(o.Quantity, 10),
		}
	})
}

// WriteExecutions writes executions in the layout Reader.Executions reads.
func WriteExecutions(path string, executions []*eventv1.ExecutionEvent) error {
	return writeRecords(path, ExecutionHeader, len(executions), func(i int) []string {
		e := executions[i]
		return []string{
			strconv.FormatInt(e.ArrivalTime, 10),
			strconv.FormatInt(e.SequenceNo, 10),
			strconv.FormatInt(e.TransactTime, 10),
			strconv.FormatInt(e.ExecID, 10),
			string(rune(e.Type)),
			e.Price.String(),
			strconv.FormatInt(e.Quantity, 10),
			e.Money.String(),
			strconv.FormatInt(e.BuyOrderID, 10),
			strconv.FormatInt(e.SellOrderID, 10),
		}
	})
}

func writeRecords(path string, header []string, n int, record func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
	}
	for i := range n {
		if err := cw.Write(record(i)); err != nil {
			f.Close()
			return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
	}
	if err := f.Close(); err != nil {
		return errors.NewTracer(string(errors.OutputWriteError)).Wrap(err)
	}
	return nil
}
