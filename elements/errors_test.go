package elements

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStackErrorKeepsSentinels(t *testing.T) {
	other := errors.New("other")

	err := NewStackError(fmt.Errorf("%w| all values are zero", ErrNotFound))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidDimension))
	assert.Contains(t, errs.ErrorWithStack(err), "all values are zero")

	wrapped := errs.Wrap(err, fmt.Errorf("locating in column a"))
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	both := NewStackError(fmt.Errorf("%w| %w", ErrInvalidArgument, other))
	assert.True(t, errors.Is(both, ErrInvalidArgument))
	assert.True(t, errors.Is(both, other))

	plain := NewStackError(other)
	assert.False(t, errors.Is(plain, ErrNotFound))
}

func TestElementsErrors(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	t.Cleanup(func() { mem.AssertSize(t, 0) })

	arr, err := FromSlice(mem, []int64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	defer arr.Release()

	_, err = arr.Reshape([]int{4, 2})
	assert.True(t, errors.Is(err, ErrInvalidShape))

	_, err = arr.Reshape([]int{-2, -3})
	assert.True(t, errors.Is(err, ErrInvalidShape))

	_, err = arr.Ravel([]int{1})
	assert.True(t, errors.Is(err, ErrInvalidDimension))

	_, err = arr.Ravel([]int{1, 3})
	assert.True(t, errors.Is(err, ErrIndexOutOfBounds))

	flat, err := arr.Ravel([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 5, flat)

	_, err = KindOf(arrow.ListOf(arrow.PrimitiveTypes.Int64))
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	_, err = DecimalFromString("twelve", 10, 2)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
