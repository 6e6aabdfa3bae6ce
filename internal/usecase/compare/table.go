package compare

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/muhammadchandra19/book-replay/pkg/errors"
)

// ErrEmptyTable is returned when a table to compare has no data rows.
var ErrEmptyTable = errors.NewErrorDetails("table has no data rows", string(errors.InputNotFoundError), "rows")

// Table is a CSV file split into its header and data rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ReadTable parses CSV from r. Rows may have any number of fields.
func ReadTable(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.NewTracer(string(errors.MalformedRecordError)).Wrap(err)
	}

	table := &Table{Name: name}
	if len(records) == 0 {
		return table, nil
	}
	table.Header = records[0]
	table.Rows = records[1:]
	return table, nil
}

// ReadFile reads a table from a CSV file.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewTracer(string(errors.InputNotFoundError)).Wrap(err)
	}
	defer f.Close()

	return ReadTable(path, f)
}

func (t *Table) column(i int) string {
	if i < len(t.Header) {
		return t.Header[i]
	}
	return "Column"
}
