package sortops

import (
	"fmt"
	"slices"

	"github.com/alekLukanen/ndarrow/elements"
)

// By selects the key columns of a sort. The zero value sorts by every
// column left to right.
type By struct {
	columns []int
}

// ByAllColumns sorts lexicographically on every column.
func ByAllColumns() By {
	return By{}
}

// ByColumns names the key columns in priority order. An empty list is
// the same as ByAllColumns.
func ByColumns(columns ...int) By {
	return By{columns: slices.Clone(columns)}
}

func (obj By) Columns() []int {
	return slices.Clone(obj.columns)
}

func (obj By) String() string {
	if len(obj.columns) == 0 {
		return "all"
	}
	return fmt.Sprintf("%v", obj.columns)
}

// Ascending holds the sort direction. The zero value sorts ascending.
type Ascending struct {
	descending bool
	perKey     []bool
	keyed      bool
}

// Uniform applies one direction to the whole array: a descending sort
// reverses the order of every column, named or not.
func Uniform(ascending bool) Ascending {
	return Ascending{descending: !ascending}
}

// PerKey gives one direction per named key. A single flag applies to
// every named key. Columns that are not named always ascend.
func PerKey(ascending ...bool) Ascending {
	return Ascending{perKey: slices.Clone(ascending), keyed: true}
}

func (obj Ascending) String() string {
	if obj.keyed {
		return fmt.Sprintf("%v", obj.perKey)
	}
	return fmt.Sprintf("%v", !obj.descending)
}

// sortKey is one column of the composite key with its direction as a
// sign applied to the column comparison.
type sortKey struct {
	column int
	sign   int
}

/*
* resolveKeys builds the composite key: the named columns in priority
* order followed by every remaining column in index order.
 */
func resolveKeys(numColumns int, by By, ascending Ascending) ([]sortKey, error) {
	named := by.columns
	if len(named) == 0 {
		named = make([]int, numColumns)
		for i := range named {
			named[i] = i
		}
	}

	seen := make([]bool, numColumns)
	for _, col := range named {
		if col < 0 || col >= numColumns {
			return nil, elements.NewStackError(
				fmt.Errorf("%w| sort column %d of %d columns", elements.ErrInvalidArgument, col, numColumns),
			)
		}
		if seen[col] {
			return nil, elements.NewStackError(
				fmt.Errorf("%w| sort column %d named twice", elements.ErrInvalidArgument, col),
			)
		}
		seen[col] = true
	}

	if ascending.keyed && len(ascending.perKey) != 1 && len(ascending.perKey) != len(named) {
		return nil, elements.NewStackError(
			fmt.Errorf("%w| %d directions for %d sort keys", elements.ErrLengthMismatch, len(ascending.perKey), len(named)),
		)
	}

	keys := make([]sortKey, 0, numColumns)
	for idx, col := range named {
		keys = append(keys, sortKey{column: col, sign: ascending.signOf(idx)})
	}
	for col := 0; col < numColumns; col++ {
		if seen[col] {
			continue
		}
		sign := 1
		if !ascending.keyed && ascending.descending {
			sign = -1
		}
		keys = append(keys, sortKey{column: col, sign: sign})
	}
	return keys, nil
}

func (obj Ascending) signOf(keyIdx int) int {
	asc := !obj.descending
	if obj.keyed {
		if len(obj.perKey) == 1 {
			asc = obj.perKey[0]
		} else {
			asc = obj.perKey[keyIdx]
		}
	}
	if asc {
		return 1
	}
	return -1
}
