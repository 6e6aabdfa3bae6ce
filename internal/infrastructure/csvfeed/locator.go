package csvfeed

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/muhammadchandra19/book-replay/pkg/errors"
)

// ErrInputNotFound is returned when the order file exists in none of the searched directories.
var ErrInputNotFound = errors.NewErrorDetails("order file not found", string(errors.InputNotFoundError), "order_file")

// Paths are the resolved files of one instrument.
type Paths struct {
	Order  string
	Trade  string
	Output string
	// TradeFound is false when no trade file sits next to the order file.
	TradeFound bool
}

// Files names the input and output files inside an instrument directory.
type Files struct {
	Order  string
	Trade  string
	Output string
}

// DefaultFiles returns the conventional file names.
func DefaultFiles() Files {
	return Files{
		Order:  "order_new.csv",
		Trade:  "trade_new.csv",
		Output: "book_new.csv",
	}
}

// Locate looks for the order file in dir and then in up to depth parent
// directories. The trade and output files are taken from the same directory.
func Locate(dir string, files Files, depth int) (Paths, error) {
	candidate := dir
	tried := make([]string, 0, depth+1)

	for range depth + 1 {
		orderPath := filepath.Join(candidate, files.Order)
		tried = append(tried, orderPath)

		if isFile(orderPath) {
			tradePath := filepath.Join(candidate, files.Trade)
			return Paths{
				Order:      orderPath,
				Trade:      tradePath,
				Output:     filepath.Join(candidate, files.Output),
				TradeFound: isFile(tradePath),
			}, nil
		}

		candidate = filepath.Join(candidate, "..")
	}

	return Paths{}, fmt.Errorf("%w: tried %v", ErrInputNotFound, tried)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
