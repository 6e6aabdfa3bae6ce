package compare

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

const missing = "(missing)"

// Row is a data row identified by its first field.
type Row struct {
	Key    string
	Fields []string
}

// ColumnDiff is one column whose value differs between two rows.
type ColumnDiff struct {
	Column string
	A      string
	B      string
}

// RowDiff is a key present in both tables with different content.
type RowDiff struct {
	Key     string
	A       []string
	B       []string
	Columns []ColumnDiff
}

// DiffReport is the result of comparing two tables by key.
type DiffReport struct {
	A, B         *Table
	HeadersEqual bool
	OnlyInA      []Row
	OnlyInB      []Row
	Different    []RowDiff
	Matching     int
}

// Diff compares two tables keyed by their first column. When a key repeats,
// the last row with that key is used. Results are ordered by key.
func Diff(a, b *Table) (*DiffReport, error) {
	if len(a.Rows) == 0 || len(b.Rows) == 0 {
		return nil, ErrEmptyTable
	}

	rowsA, rowsB := index(a), index(b)
	report := &DiffReport{
		A:            a,
		B:            b,
		HeadersEqual: slices.Equal(a.Header, b.Header),
	}

	for _, key := range sortedKeys(rowsA) {
		rowA := rowsA[key]
		rowB, ok := rowsB[key]
		if !ok {
			report.OnlyInA = append(report.OnlyInA, Row{Key: key, Fields: rowA})
			continue
		}
		if slices.Equal(rowA, rowB) {
			report.Matching++
			continue
		}
		report.Different = append(report.Different, RowDiff{
			Key:     key,
			A:       rowA,
			B:       rowB,
			Columns: diffColumns(a, rowA, rowB),
		})
	}

	for _, key := range sortedKeys(rowsB) {
		if _, ok := rowsA[key]; !ok {
			report.OnlyInB = append(report.OnlyInB, Row{Key: key, Fields: rowsB[key]})
		}
	}

	return report, nil
}

func index(t *Table) map[string][]string {
	rows := make(map[string][]string, len(t.Rows))
	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		rows[row[0]] = row
	}
	return rows
}

func sortedKeys(rows map[string][]string) []string {
	keys := make([]string, 0, len(rows))
	for key := range rows {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func diffColumns(header *Table, a, b []string) []ColumnDiff {
	var diffs []ColumnDiff
	for i := range max(len(a), len(b)) {
		va, vb := missing, missing
		if i < len(a) {
			va = a[i]
		}
		if i < len(b) {
			vb = b[i]
		}
		if va != vb {
			diffs = append(diffs, ColumnDiff{Column: header.column(i), A: va, B: vb})
		}
	}
	return diffs
}

// Write prints the report in a human readable form.
func (r *DiffReport) Write(w io.Writer) {
	fmt.Fprintf(w, "File 1 (%s) rows: %d\n", r.A.Name, len(r.A.Rows))
	fmt.Fprintf(w, "File 2 (%s) rows: %d\n", r.B.Name, len(r.B.Rows))

	fmt.Fprintln(w, "\n--- Header Comparison ---")
	if r.HeadersEqual {
		fmt.Fprintln(w, "Headers are the same")
	} else {
		fmt.Fprintln(w, "Headers are different!")
		fmt.Fprintf(w, "File 1 headers: %s\n", strings.Join(r.A.Header, " "))
		fmt.Fprintf(w, "File 2 headers: %s\n", strings.Join(r.B.Header, " "))
	}

	writeRows(w, "\n--- Records in File 1 but not in File 2 ---", r.OnlyInA)
	writeRows(w, "\n--- Records in File 2 but not in File 1 ---", r.OnlyInB)

	fmt.Fprintln(w, "\n--- Records in both files but with different content ---")
	for _, d := range r.Different {
		fmt.Fprintf(w, "ID: %s\n", d.Key)
		fmt.Fprintf(w, "  File 1: %s\n", strings.Join(d.A, " "))
		fmt.Fprintf(w, "  File 2: %s\n", strings.Join(d.B, " "))
		for _, c := range d.Columns {
			fmt.Fprintf(w, "    Different column [%s]: %q vs %q\n", c.Column, c.A, c.B)
		}
	}
	if len(r.Different) == 0 {
		fmt.Fprintln(w, "None")
	}

	fmt.Fprintln(w, "\n--- Comparison Summary ---")
	fmt.Fprintf(w, "Records unique to File 1: %d\n", len(r.OnlyInA))
	fmt.Fprintf(w, "Records unique to File 2: %d\n", len(r.OnlyInB))
	fmt.Fprintf(w, "Records with different content: %d\n", len(r.Different))
	fmt.Fprintf(w, "Perfectly matching records: %d\n", r.Matching)
}

// Identical reports whether both tables hold the same rows under the same header.
func (r *DiffReport) Identical() bool {
	return r.HeadersEqual && len(r.OnlyInA) == 0 && len(r.OnlyInB) == 0 && len(r.Different) == 0
}

func writeRows(w io.Writer, title string, rows []Row) {
	fmt.Fprintln(w, title)
	for _, row := range rows {
		fmt.Fprintf(w, "ID: %s -> %s\n", row.Key, strings.Join(row.Fields, " "))
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "None")
	}
}
