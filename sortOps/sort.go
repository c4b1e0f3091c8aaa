package sortops

import (
	"fmt"
	"slices"

	"github.com/alekLukanen/errs"
	"github.com/alekLukanen/ndarrow/arrowOps"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// layout views an array as blocks of rows by columns. 1-D arrays are a
// single block of one column.
type layout struct {
	blocks  int
	rows    int
	columns int
}

func layoutOf(arr *elements.Array) layout {
	shape := arr.Shape()
	if len(shape) == 1 {
		return layout{blocks: 1, rows: shape[0], columns: 1}
	}
	l := layout{rows: shape[len(shape)-2], columns: shape[len(shape)-1], blocks: 1}
	for _, dim := range shape[:len(shape)-2] {
		l.blocks *= dim
	}
	return l
}

func (obj layout) flat(block, row, column int) int {
	return (block*obj.rows+row)*obj.columns + column
}

// order compares two flat positions of one array. Missing values sort
// after everything else whatever the direction.
type order struct {
	missing func(i int) bool
	compare func(i, j int) int
	// first pair of object values that had no order
	err error
}

/*
* Sort returns a new array whose rows are stably ordered by the composite
* key: the columns named in by, each in its own direction, then every
* other column ascending (or descending under Uniform(false)). 1-D
* arrays sort by value and ignore by; N-D arrays sort the rows of each
* leading block on their own; 0-D arrays are returned unchanged. The
* input array is never modified.
 */
func Sort(mem memory.Allocator, arr *elements.Array, by By, ascending Ascending) (*elements.Array, error) {
	if arr.NDim() == 0 {
		return arr.Reshape(arr.Shape())
	}

	l := layoutOf(arr)
	if arr.NDim() == 1 {
		by = ByAllColumns()
	}
	keys, err := resolveKeys(l.columns, by, ascending)
	if err != nil {
		return nil, err
	}

	ord, err := orderOf(arr)
	if err != nil {
		return nil, err
	}

	// incomparable object values surface once the sort has run
	perm := permutation(l, keys, ord)
	if ord.err != nil {
		return nil, ord.err
	}

	return gather(mem, arr, l, perm)
}

func orderOf(arr *elements.Array) (*order, error) {
	if arr.Kind() != elements.KindObject {
		valueOrder, err := arrowops.NewValueOrder(arr.Values())
		if err != nil {
			return nil, elements.NewStackError(fmt.Errorf("%w| sorting %s: %s", elements.ErrUnsupportedType, arr.Kind(), err))
		}
		return &order{missing: valueOrder.Missing, compare: valueOrder.Compare}, nil
	}

	scalars := make([]elements.Scalar, arr.Len())
	for i, obj := range arr.Objects() {
		scalars[i] = elements.Object(obj)
	}
	ord := &order{missing: func(i int) bool { return scalars[i].IsMissing() }}
	ord.compare = func(i, j int) int {
		c, ok := elements.CompareValues(scalars[i], scalars[j])
		if !ok && ord.err == nil {
			ord.err = elements.NewStackError(fmt.Errorf(
				"%w| cannot order %s (%s) against %s (%s)",
				elements.ErrUnsupportedType, scalars[i], scalars[i].Kind(), scalars[j], scalars[j].Kind(),
			))
		}
		return c
	}
	return ord, nil
}

// permutation sorts row numbers per block. The result lists, block by
// block, the source row of every output row.
func permutation(l layout, keys []sortKey, ord *order) []int {
	perm := make([]int, l.blocks*l.rows)
	for block := 0; block < l.blocks; block++ {
		rows := perm[block*l.rows : (block+1)*l.rows]
		for r := range rows {
			rows[r] = r
		}
		slices.SortStableFunc(rows, func(a, b int) int {
			for _, key := range keys {
				i, j := l.flat(block, a, key.column), l.flat(block, b, key.column)
				mi, mj := ord.missing(i), ord.missing(j)
				switch {
				case mi && mj:
					continue
				case mi:
					return 1
				case mj:
					return -1
				}
				if c := ord.compare(i, j); c != 0 {
					return c * key.sign
				}
			}
			return 0
		})
	}
	return perm
}

func gather(mem memory.Allocator, arr *elements.Array, l layout, perm []int) (*elements.Array, error) {
	indices := make([]int, 0, arr.Len())
	for block := 0; block < l.blocks; block++ {
		for _, row := range perm[block*l.rows : (block+1)*l.rows] {
			for col := 0; col < l.columns; col++ {
				indices = append(indices, l.flat(block, row, col))
			}
		}
	}

	if arr.Kind() == elements.KindObject {
		objs := arr.Objects()
		sorted := make([]any, len(indices))
		for i, idx := range indices {
			sorted[i] = objs[idx]
		}
		return elements.NewObjectArrayWithShape(sorted, arr.Shape())
	}

	values, err := arrowops.TakeArray(mem, arr.Values(), indices)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	defer values.Release()
	return elements.NewArrayWithShape(values, arr.Shape())
}
