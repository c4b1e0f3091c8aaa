package arrowops

import (
	"slices"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

// RecordsEqual compares the named columns of two records. Without
// fields every column is compared.
func RecordsEqual(rec1, rec2 arrow.Record, fields ...string) bool {
	if rec1.NumCols() != rec2.NumCols() || rec1.NumRows() != rec2.NumRows() {
		return false
	}
	for i := 0; i < int(rec1.NumCols()); i++ {
		columnName := rec1.ColumnName(i)
		if len(fields) > 0 && !slices.Contains(fields, columnName) {
			continue
		}
		if !array.Equal(rec1.Column(i), rec2.Column(i)) {
			return false
		}
	}
	return true
}

// ArraysEqual reports whether two arrays have the same kind, shape and
// values. NaN equals NaN and null equals null.
func ArraysEqual(a, b *elements.Array) bool {
	if a.Kind() != b.Kind() || !slices.Equal(a.Shape(), b.Shape()) {
		return false
	}
	if a.Values() != nil && b.Values() != nil && !a.Kind().IsFloat() && !a.Kind().IsComplex() {
		return array.Equal(a.Values(), b.Values())
	}
	for i := 0; i < a.Len(); i++ {
		x, y := a.ScalarAt(i), b.ScalarAt(i)
		switch {
		case x.IsNull() || y.IsNull():
			if x.IsNull() != y.IsNull() {
				return false
			}
		case x.IsNaN() || y.IsNaN():
			if x.IsNaN() != y.IsNaN() {
				return false
			}
		case !elements.EqualValues(x, y):
			return false
		}
	}
	return true
}
