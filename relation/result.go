package relation

import "sort"

// Result is the output of one join call: an ordered column list and the
// emitted rows. Rows only carry columns from the list; a missing column
// on a row reads as Absent.
//
// Results are freshly allocated per call and never shared with the
// inputs. They are not safe for concurrent mutation.
type Result struct {
	Columns []string
	Rows    []Record
}

// Size returns the number of rows.
func (r *Result) Size() int {
	return len(r.Rows)
}

// IsEmpty returns true if the result has no rows.
func (r *Result) IsEmpty() bool {
	return len(r.Rows) == 0
}

// SortBy sorts rows in place by the given column, absent values first.
// The sort is stable so repeated calls layer sort keys.
func (r *Result) SortBy(column string) {
	sort.SliceStable(r.Rows, func(i, j int) bool {
		return CompareValues(r.Rows[i].Get(column), r.Rows[j].Get(column)) < 0
	})
}

// Get returns a specific row by index.
func (r *Result) Get(i int) Record {
	return r.Rows[i]
}

// Table returns a formatted markdown table representation.
func (r *Result) Table() string {
	return NewTableFormatter().FormatResult(r)
}
