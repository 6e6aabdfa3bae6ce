package compare

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(t *testing.T, name, content string) *Table {
	t.Helper()
	tbl, err := ReadTable(name, strings.NewReader(content))
	require.NoError(t, err)
	return tbl
}

func TestReadTable(t *testing.T) {
	tbl := table(t, "a.csv", "id,price\r\n1,10.00\r\n\r\n2,11.00,extra\r\n")
	assert.Equal(t, []string{"id", "price"}, tbl.Header)
	assert.Equal(t, [][]string{{"1", "10.00"}, {"2", "11.00", "extra"}}, tbl.Rows)

	empty := table(t, "empty.csv", "")
	assert.Nil(t, empty.Header)
	assert.Empty(t, empty.Rows)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("id\n1\n"), 0o600))

	tbl, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, tbl.Name)
	assert.Len(t, tbl.Rows, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     string
		assertFn func(t *testing.T, r *DiffReport, err error)
	}{
		{
			name: "identical",
			a:    "id,v\n1,a\n2,b\n",
			b:    "id,v\n2,b\n1,a\n",
			assertFn: func(t *testing.T, r *DiffReport, err error) {
				require.NoError(t, err)
				assert.True(t, r.Identical())
				assert.Equal(t, 2, r.Matching)
			},
		},
		{
			name: "unique and different rows",
			a:    "id,v,w\n1,a,x\n2,b,y\n3,c,z\n",
			b:    "id,v\n1,a,x\n2,B\n4,d\n",
			assertFn: func(t *testing.T, r *DiffReport, err error) {
				require.NoError(t, err)
				assert.False(t, r.Identical())
				assert.False(t, r.HeadersEqual)
				assert.Equal(t, []Row{{Key: "3", Fields: []string{"3", "c", "z"}}}, r.OnlyInA)
				assert.Equal(t, []Row{{Key: "4", Fields: []string{"4", "d"}}}, r.OnlyInB)
				require.Len(t, r.Different, 1)
				assert.Equal(t, "2", r.Different[0].Key)
				assert.Equal(t, []ColumnDiff{
					{Column: "v", A: "b", B: "B"},
					{Column: "w", A: "y", B: "(missing)"},
				}, r.Different[0].Columns)
				assert.Equal(t, 1, r.Matching)
			},
		},
		{
			name: "last duplicate key wins",
			a:    "id,v\n1,a\n1,b\n",
			b:    "id,v\n1,b\n",
			assertFn: func(t *testing.T, r *DiffReport, err error) {
				require.NoError(t, err)
				assert.True(t, r.Identical())
			},
		},
		{
			name: "columns beyond the header are unnamed",
			a:    "id\n1,a\n",
			b:    "id\n1,b\n",
			assertFn: func(t *testing.T, r *DiffReport, err error) {
				require.NoError(t, err)
				require.Len(t, r.Different, 1)
				assert.Equal(t, "Column", r.Different[0].Columns[0].Column)
			},
		},
		{
			name: "empty table",
			a:    "id,v\n",
			b:    "id,v\n1,a\n",
			assertFn: func(t *testing.T, r *DiffReport, err error) {
				assert.ErrorIs(t, err, ErrEmptyTable)
				assert.Nil(t, r)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Diff(table(t, "a.csv", tc.a), table(t, "b.csv", tc.b))
			tc.assertFn(t, r, err)
		})
	}
}

func TestDiffReport_Write(t *testing.T) {
	r, err := Diff(
		table(t, "a.csv", "id,v\n1,a\n2,b\n"),
		table(t, "b.csv", "id,v\n1,a\n2,c\n3,d\n"),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	r.Write(&buf)
	out := buf.String()

	assert.Contains(t, out, "Headers are the same")
	assert.Contains(t, out, "ID: 3 -> 3 d")
	assert.Contains(t, out, `Different column [v]: "b" vs "c"`)
	assert.Contains(t, out, "Records unique to File 1: 0")
	assert.Contains(t, out, "Records unique to File 2: 1")
	assert.Contains(t, out, "Perfectly matching records: 1")
}

func TestContains(t *testing.T) {
	reference := table(t, "c.csv", "t,tt,x\n1,100,a\n2,200,b\n2,200,c\n")
	a := table(t, "a.csv", "t,tt\n1,100\n3,300\n")
	b := table(t, "b.csv", "t,tt\n2,200\n2\n")

	r, err := Contains([]int{0, 1}, reference, a, b)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Unique)
	require.Len(t, r.Sources, 2)
	assert.Equal(t, []KeyResult{{Key: "1|100", Found: true}, {Key: "3|300", Found: false}}, r.Sources[0].Keys)
	assert.Equal(t, 1, r.Sources[0].Found)
	assert.Equal(t, 1, r.Sources[0].NotFound)
	assert.Equal(t, []KeyResult{{Key: "2|200", Found: true}, {Key: "2", Found: false}}, r.Sources[1].Keys)

	var buf bytes.Buffer
	r.Write(&buf)
	assert.Contains(t, buf.String(), "[NOT FOUND] Not found in c.csv: 3|300")
	assert.Contains(t, buf.String(), "File 2: Found 1, Not found 1")

	_, err = Contains([]int{0}, reference, table(t, "empty.csv", "t\n"))
	assert.ErrorIs(t, err, ErrEmptyTable)
}
