package compare

import (
	"fmt"
	"io"
	"strings"
)

// KeyResult is the lookup outcome of one source row.
type KeyResult struct {
	Key   string
	Found bool
}

// SourceResult collects the lookups of every row of one source table.
type SourceResult struct {
	Table    *Table
	Keys     []KeyResult
	Found    int
	NotFound int
}

// ContainsReport is the result of checking source rows against a reference.
type ContainsReport struct {
	Columns   []int
	Reference *Table
	Unique    int
	Sources   []SourceResult
}

// Contains builds a key from the given column indices of every row and reports
// whether the key of each source row appears in the reference table. Columns
// beyond the end of a row are left out of its key.
func Contains(columns []int, reference *Table, sources ...*Table) (*ContainsReport, error) {
	if len(reference.Rows) == 0 {
		return nil, ErrEmptyTable
	}
	for _, source := range sources {
		if len(source.Rows) == 0 {
			return nil, ErrEmptyTable
		}
	}

	keys := make(map[string]struct{}, len(reference.Rows))
	for _, row := range reference.Rows {
		if key := rowKey(row, columns); key != "" {
			keys[key] = struct{}{}
		}
	}

	report := &ContainsReport{
		Columns:   columns,
		Reference: reference,
		Unique:    len(keys),
		Sources:   make([]SourceResult, 0, len(sources)),
	}

	for _, source := range sources {
		result := SourceResult{Table: source, Keys: make([]KeyResult, 0, len(source.Rows))}
		for _, row := range source.Rows {
			key := rowKey(row, columns)
			_, found := keys[key]
			result.Keys = append(result.Keys, KeyResult{Key: key, Found: found})
			if found {
				result.Found++
			} else {
				result.NotFound++
			}
		}
		report.Sources = append(report.Sources, result)
	}

	return report, nil
}

func rowKey(row []string, columns []int) string {
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		if col >= 0 && col < len(row) {
			parts = append(parts, row[col])
		}
	}
	return strings.Join(parts, "|")
}

// Write prints the report in a human readable form.
func (r *ContainsReport) Write(w io.Writer) {
	fmt.Fprintf(w, "Compare column indices: %v\n", r.Columns)
	fmt.Fprintf(w, "Unique combinations in %s: %d\n", r.Reference.Name, r.Unique)

	for i, source := range r.Sources {
		fmt.Fprintf(w, "\n--- Checking records from File %d (%s) ---\n", i+1, source.Table.Name)
		for _, k := range source.Keys {
			if k.Found {
				fmt.Fprintf(w, "  [FOUND] Found in %s: %s\n", r.Reference.Name, k.Key)
			} else {
				fmt.Fprintf(w, "  [NOT FOUND] Not found in %s: %s\n", r.Reference.Name, k.Key)
			}
		}
	}

	fmt.Fprintln(w, "\n--- Comparison Summary ---")
	for i, source := range r.Sources {
		fmt.Fprintf(w, "File %d: Found %d, Not found %d\n", i+1, source.Found, source.NotFound)
	}
}
