package csvfeed

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
	"github.com/muhammadchandra19/book-replay/pkg/errors"
	"github.com/muhammadchandra19/book-replay/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	orderFields     = 8
	executionFields = 10
)

// Reader reads the order and trade files of one instrument.
type Reader struct {
	paths   Paths
	logger  logger.Interface
	skipped int
}

var _ eventv1.Feed = (*Reader)(nil)

// NewReader creates a reader over the located files.
func NewReader(paths Paths, logger logger.Interface) *Reader {
	return &Reader{
		paths:  paths,
		logger: logger,
	}
}

// Skipped returns the number of malformed records dropped so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Orders reads the order file.
func (r *Reader) Orders(ctx context.Context) ([]*eventv1.OrderEvent, error) {
	var orders []*eventv1.OrderEvent
	err := r.readFile(ctx, r.paths.Order, orderFields, func(record []string) error {
		order, err := parseOrder(record)
		if err != nil {
			return err
		}
		orders = append(orders, order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "read orders", logger.NewField("file", r.paths.Order), logger.NewField("count", len(orders)))
	return orders, nil
}

// Executions reads the trade file. A missing trade file yields no executions.
func (r *Reader) Executions(ctx context.Context) ([]*eventv1.ExecutionEvent, error) {
	if !r.paths.TradeFound {
		r.logger.WarnContext(ctx, "trade file not found, replaying orders only", logger.NewField("file", r.paths.Trade))
		return []*eventv1.ExecutionEvent{}, nil
	}

	var executions []*eventv1.ExecutionEvent
	err := r.readFile(ctx, r.paths.Trade, executionFields, func(record []string) error {
		exec, err := parseExecution(record)
		if err != nil {
			return err
		}
		executions = append(executions, exec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "read executions", logger.NewField("file", r.paths.Trade), logger.NewField("count", len(executions)))
	return executions, nil
}

// readFile walks the records after the header. Records rejected by parse are
// logged and counted, never returned as errors.
func (r *Reader) readFile(ctx context.Context, path string, minFields int, parse func(record []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewTracer(string(errors.InputNotFoundError)).Wrap(err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return errors.NewTracer(string(errors.MalformedRecordError)).Wrap(err)
	}
	r.logger.DebugContext(ctx, "header", logger.NewField("file", path), logger.NewField("columns", strings.Join(header, ",")))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			var parseErr *csv.ParseError
			if !stderrors.As(err, &parseErr) {
				return errors.NewTracer(string(errors.MalformedRecordError)).Wrap(err)
			}
			r.skip(ctx, path, parseErr.Line, nil, err)
			continue
		}

		line, _ := cr.FieldPos(0)

		if len(record) < minFields {
			r.skip(ctx, path, line, record, fmt.Errorf("expected %d fields, got %d", minFields, len(record)))
			continue
		}

		if err := parse(record); err != nil {
			r.skip(ctx, path, line, record, err)
		}
	}
}

func (r *Reader) skip(ctx context.Context, path string, line int, record []string, reason error) {
	r.skipped++
	r.logger.WarnContext(ctx, "skipping malformed record",
		logger.NewField("file", path),
		logger.NewField("line", line),
		logger.NewField("content", strings.Join(record, ",")),
		logger.NewField("reason", reason.Error()),
	)
}

func parseOrder(record []string) (*eventv1.OrderEvent, error) {
	var (
		order = &eventv1.OrderEvent{Type: eventv1.OrderTypeLimit}
		err   error
	)

	if order.ArrivalTime, err = parseInt(record[0], "clockatarrival"); err != nil {
		return nil, err
	}
	if order.SequenceNo, err = parseInt(record[1], "sequenceno"); err != nil {
		return nil, err
	}
	if order.TransactTime, err = parseInt(record[2], "transacttime"); err != nil {
		return nil, err
	}
	if order.OrderID, err = parseInt(record[3], "applseqnum"); err != nil {
		return nil, err
	}

	switch strings.TrimSpace(record[4]) {
	case "1":
		order.Side = eventv1.SideBuy
	case "2":
		order.Side = eventv1.SideSell
	default:
		return nil, malformed("side", record[4])
	}

	if typ := strings.TrimSpace(record[5]); typ != "" {
		switch t := eventv1.OrderType(typ[0]); t {
		case eventv1.OrderTypeMarket, eventv1.OrderTypeLimit, eventv1.OrderTypeBestPrice:
			order.Type = t
		default:
			return nil, malformed("ordertype", record[5])
		}
	}

	if order.Price, err = parseDecimal(record[6], "price"); err != nil {
		return nil, err
	}
	if order.Quantity, err = parseInt(record[7], "orderqty"); err != nil {
		return nil, err
	}

	return order, nil
}

func parseExecution(record []string) (*eventv1.ExecutionEvent, error) {
	var (
		exec = &eventv1.ExecutionEvent{Type: eventv1.ExecTypeFill}
		err  error
	)

	if exec.ArrivalTime, err = parseInt(record[0], "clockatarrival"); err != nil {
		return nil, err
	}
	if exec.SequenceNo, err = parseInt(record[1], "sequenceno"); err != nil {
		return nil, err
	}
	if exec.TransactTime, err = parseInt(record[2], "transacttime"); err != nil {
		return nil, err
	}
	if exec.ExecID, err = parseInt(record[3], "applseqnum"); err != nil {
		return nil, err
	}

	if typ := strings.TrimSpace(record[4]); typ != "" {
		switch t := eventv1.ExecType(typ[0]); t {
		case eventv1.ExecTypeFill, eventv1.ExecTypeCancel:
			exec.Type = t
		default:
			return nil, malformed("exectype", record[4])
		}
	}

	if exec.Price, err = parseDecimal(record[5], "tradeprice"); err != nil {
		return nil, err
	}
	if exec.Quantity, err = parseInt(record[6], "tradeqty"); err != nil {
		return nil, err
	}
	if exec.Money, err = parseDecimal(record[7], "trademoney"); err != nil {
		return nil, err
	}
	if exec.BuyOrderID, err = parseInt(record[8], "bidapplseqnum"); err != nil {
		return nil, err
	}
	if exec.SellOrderID, err = parseInt(record[9], "offerapplseqnum"); err != nil {
		return nil, err
	}

	return exec, nil
}

// parseInt parses an integer column. An empty column is zero.
func parseInt(value, field string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, malformed(field, value)
	}
	return v, nil
}

// parseDecimal parses a price column. An empty column is zero.
func parseDecimal(value, field string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, malformed(field, value)
	}
	return v, nil
}

func malformed(field, value string) error {
	return errors.NewErrorDetails(fmt.Sprintf("invalid %s %q", field, value), string(errors.MalformedRecordError), field)
}
