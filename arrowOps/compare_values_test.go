package arrowops

import (
	"math"
	"testing"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOrder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	floats, err := elements.FromSlice(mem, []float64{2, math.NaN(), -1, math.Inf(1)})
	require.NoError(t, err)
	defer floats.Release()

	order, err := NewValueOrder(floats.Values())
	require.NoError(t, err)
	assert.True(t, order.Missing(1))
	assert.False(t, order.Missing(3))
	assert.Equal(t, 1, order.Compare(0, 2))
	assert.Equal(t, -1, order.Compare(0, 3))

	uints, err := elements.FromSlice(mem, []uint64{math.MaxUint64, 0})
	require.NoError(t, err)
	defer uints.Release()

	order, err = NewValueOrder(uints.Values())
	require.NoError(t, err)
	assert.Equal(t, 1, order.Compare(0, 1))

	bools, err := elements.FromSlice(mem, []bool{true, false})
	require.NoError(t, err)
	defer bools.Release()

	order, err = NewValueOrder(bools.Values())
	require.NoError(t, err)
	assert.Equal(t, 1, order.Compare(0, 1))
	assert.Equal(t, 0, order.Compare(1, 1))
}
