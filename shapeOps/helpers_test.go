package shapeops

import (
	"testing"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/require"
)

func checkedAllocator(t *testing.T) *memory.CheckedAllocator {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	t.Cleanup(func() { mem.AssertSize(t, 0) })
	return mem
}

func fromSlice[T elements.Native](t *testing.T, mem memory.Allocator, values []T, shape ...int) *elements.Array {
	t.Helper()
	arr, err := elements.FromSlice(mem, values, shape...)
	require.NoError(t, err)
	return arr
}
