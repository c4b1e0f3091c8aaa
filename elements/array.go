package elements

import (
	"fmt"
	"slices"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

// Array is an immutable N-dimensional array stored flat in row-major
// order. Arrow backed arrays hold a reference to their values; object
// arrays hold a plain slice.
type Array struct {
	kind    Kind
	shape   []int
	values  arrow.Array
	objects []any
}

// NewArray wraps values as a 1-D array. The array retains values.
func NewArray(values arrow.Array) (*Array, error) {
	return NewArrayWithShape(values, []int{values.Len()})
}

// NewArrayWithShape wraps values with an explicit shape. An empty shape
// makes a 0-D array holding exactly one value.
func NewArrayWithShape(values arrow.Array, shape []int) (*Array, error) {
	kind, err := KindOf(values.DataType())
	if err != nil {
		return nil, err
	}
	if err := checkShape(shape, values.Len()); err != nil {
		return nil, err
	}
	values.Retain()
	return &Array{
		kind:   kind,
		shape:  slices.Clone(shape),
		values: values,
	}, nil
}

func NewObjectArray(objects []any) *Array {
	return &Array{
		kind:    KindObject,
		shape:   []int{len(objects)},
		objects: objects,
	}
}

func NewObjectArrayWithShape(objects []any, shape []int) (*Array, error) {
	if err := checkShape(shape, len(objects)); err != nil {
		return nil, err
	}
	return &Array{
		kind:    KindObject,
		shape:   slices.Clone(shape),
		objects: objects,
	}, nil
}

func checkShape(shape []int, length int) error {
	size := 1
	for _, dim := range shape {
		if dim < 0 {
			return NewStackError(fmt.Errorf("%w| negative dimension in %v", ErrInvalidShape, shape))
		}
		size *= dim
	}
	if size != length {
		return NewStackError(
			fmt.Errorf("%w| shape %v holds %d values, storage has %d", ErrInvalidShape, shape, size, length),
		)
	}
	return nil
}

func (obj *Array) Kind() Kind {
	return obj.kind
}

func (obj *Array) Shape() []int {
	return slices.Clone(obj.shape)
}

func (obj *Array) NDim() int {
	return len(obj.shape)
}

// Len is the number of values across all dimensions.
func (obj *Array) Len() int {
	if obj.values != nil {
		return obj.values.Len()
	}
	return len(obj.objects)
}

// Values is the flat arrow storage; nil for object arrays.
func (obj *Array) Values() arrow.Array {
	return obj.values
}

// Objects is the flat object storage; nil for arrow backed arrays.
func (obj *Array) Objects() []any {
	return obj.objects
}

func (obj *Array) Retain() {
	if obj.values != nil {
		obj.values.Retain()
	}
}

func (obj *Array) Release() {
	if obj.values != nil {
		obj.values.Release()
	}
}

// Reshape returns a view of the same storage with a new shape.
func (obj *Array) Reshape(shape []int) (*Array, error) {
	if obj.values == nil {
		return NewObjectArrayWithShape(obj.objects, shape)
	}
	return NewArrayWithShape(obj.values, shape)
}

// Unravel converts a flat row-major index into per-axis coordinates.
func (obj *Array) Unravel(flat int) []int {
	coords := make([]int, len(obj.shape))
	for axis := len(obj.shape) - 1; axis >= 0; axis-- {
		dim := obj.shape[axis]
		if dim == 0 {
			continue
		}
		coords[axis] = flat % dim
		flat /= dim
	}
	return coords
}

// Ravel converts per-axis coordinates into a flat row-major index.
func (obj *Array) Ravel(coords []int) (int, error) {
	if len(coords) != len(obj.shape) {
		return 0, NewStackError(
			fmt.Errorf("%w| %d coordinates for a %d-D array", ErrInvalidDimension, len(coords), len(obj.shape)),
		)
	}
	flat := 0
	for axis, c := range coords {
		if c < 0 || c >= obj.shape[axis] {
			return 0, NewStackError(fmt.Errorf("%w| axis %d coordinate %d", ErrIndexOutOfBounds, axis, c))
		}
		flat = flat*obj.shape[axis] + c
	}
	return flat, nil
}

// IsNull reports an arrow null slot or a nil object.
func (obj *Array) IsNull(i int) bool {
	if obj.values != nil {
		return obj.values.IsNull(i)
	}
	return obj.objects[i] == nil
}

// ScalarAt returns the value at flat index i.
func (obj *Array) ScalarAt(i int) Scalar {
	if obj.values == nil {
		return Object(obj.objects[i])
	}
	if obj.values.IsNull(i) {
		s := Scalar{kind: obj.kind, null: true}
		if ts, ok := obj.values.DataType().(*arrow.TimestampType); ok {
			s.unit = ts.Unit
		}
		return s
	}
	switch arr := obj.values.(type) {
	case *array.Boolean:
		return Bool(arr.Value(i))
	case *array.Int8:
		return Int8(arr.Value(i))
	case *array.Int16:
		return Int16(arr.Value(i))
	case *array.Int32:
		return Int32(arr.Value(i))
	case *array.Int64:
		return Int64(arr.Value(i))
	case *array.Uint8:
		return Uint8(arr.Value(i))
	case *array.Uint16:
		return Uint16(arr.Value(i))
	case *array.Uint32:
		return Uint32(arr.Value(i))
	case *array.Uint64:
		return Uint64(arr.Value(i))
	case *array.Float16:
		return Float16(arr.Value(i))
	case *array.Float32:
		return Float32(arr.Value(i))
	case *array.Float64:
		return Float64(arr.Value(i))
	case *array.Decimal128:
		return Decimal(arr.Value(i), arr.DataType().(*arrow.Decimal128Type).Scale)
	case *array.Timestamp:
		return Timestamp(arr.Value(i), arr.DataType().(*arrow.TimestampType).Unit)
	case *array.String:
		return String(arr.Value(i))
	case *array.Binary:
		return Binary(arr.Value(i))
	case *array.FixedSizeList:
		if obj.kind == KindComplex64 {
			return Complex64(complex64(ComplexValue(arr, i)))
		}
		return Complex128(ComplexValue(arr, i))
	}
	return Scalar{}
}

// ComplexValue reads element i of a complex array stored as a fixed
// size list of (real, imag) pairs.
func ComplexValue(arr *array.FixedSizeList, i int) complex128 {
	start, _ := arr.ValueOffsets(i)
	switch parts := arr.ListValues().(type) {
	case *array.Float32:
		return complex(float64(parts.Value(int(start))), float64(parts.Value(int(start)+1)))
	case *array.Float64:
		return complex(parts.Value(int(start)), parts.Value(int(start)+1))
	}
	return 0
}

func (obj *Array) String() string {
	return fmt.Sprintf("Array(kind=%s, shape=%v)", obj.kind, obj.shape)
}
