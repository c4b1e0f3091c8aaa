package kernels

import "math"

const lanes = 8

// Kernels is an immutable set of scan functions for one backend. Every
// function returns the first matching index or -1.
type Kernels struct {
	backend Backend

	indexEqualInt64     func([]int64, int64) int
	indexEqualUint64    func([]uint64, uint64) int
	indexCloseFloat64   func([]float64, float64, float64) int
	indexGreaterInt64   func([]int64, int64) int
	indexGreaterFloat64 func([]float64, float64) int
	indexNonzeroInt64   func([]int64) int
	indexNonzeroFloat64 func([]float64) int
}

// For returns the kernel set of a backend.
func For(b Backend) Kernels {
	if b == Unrolled {
		return Kernels{
			backend:             Unrolled,
			indexEqualInt64:     indexEqualUnrolled[int64],
			indexEqualUint64:    indexEqualUnrolled[uint64],
			indexCloseFloat64:   indexCloseUnrolled,
			indexGreaterInt64:   indexGreaterUnrolled[int64],
			indexGreaterFloat64: indexGreaterUnrolled[float64],
			indexNonzeroInt64:   indexNonzeroUnrolled[int64],
			indexNonzeroFloat64: indexNonzeroUnrolled[float64],
		}
	}
	return Kernels{
		backend:             Generic,
		indexEqualInt64:     indexEqualGeneric[int64],
		indexEqualUint64:    indexEqualGeneric[uint64],
		indexCloseFloat64:   indexCloseGeneric,
		indexGreaterInt64:   indexGreaterGeneric[int64],
		indexGreaterFloat64: indexGreaterGeneric[float64],
		indexNonzeroInt64:   indexNonzeroGeneric[int64],
		indexNonzeroFloat64: indexNonzeroGeneric[float64],
	}
}

func (k Kernels) Backend() Backend { return k.backend }

func (k Kernels) IndexEqualInt64(vals []int64, v int64) int {
	return k.indexEqualInt64(vals, v)
}

func (k Kernels) IndexEqualUint64(vals []uint64, v uint64) int {
	return k.indexEqualUint64(vals, v)
}

// IndexCloseFloat64 finds the first value within delta of v. NaN values
// never match.
func (k Kernels) IndexCloseFloat64(vals []float64, v, delta float64) int {
	return k.indexCloseFloat64(vals, v, delta)
}

func (k Kernels) IndexGreaterInt64(vals []int64, v int64) int {
	return k.indexGreaterInt64(vals, v)
}

func (k Kernels) IndexGreaterFloat64(vals []float64, v float64) int {
	return k.indexGreaterFloat64(vals, v)
}

func (k Kernels) IndexNonzeroInt64(vals []int64) int {
	return k.indexNonzeroInt64(vals)
}

// IndexNonzeroFloat64 treats NaN as nonzero.
func (k Kernels) IndexNonzeroFloat64(vals []float64) int {
	return k.indexNonzeroFloat64(vals)
}

type integer interface {
	~int64 | ~uint64
}

type number interface {
	~int64 | ~float64
}

func indexEqualGeneric[T integer](vals []T, v T) int {
	for i, x := range vals {
		if x == v {
			return i
		}
	}
	return -1
}

func indexEqualUnrolled[T integer](vals []T, v T) int {
	i := 0
	for ; i+lanes <= len(vals); i += lanes {
		b := vals[i : i+lanes : i+lanes]
		if b[0] == v || b[1] == v || b[2] == v || b[3] == v ||
			b[4] == v || b[5] == v || b[6] == v || b[7] == v {
			return i + indexEqualGeneric(b, v)
		}
	}
	if j := indexEqualGeneric(vals[i:], v); j >= 0 {
		return i + j
	}
	return -1
}

func indexCloseGeneric(vals []float64, v, delta float64) int {
	for i, x := range vals {
		if math.Abs(x-v) <= delta {
			return i
		}
	}
	return -1
}

func indexCloseUnrolled(vals []float64, v, delta float64) int {
	i := 0
	for ; i+lanes <= len(vals); i += lanes {
		b := vals[i : i+lanes : i+lanes]
		if math.Abs(b[0]-v) <= delta || math.Abs(b[1]-v) <= delta ||
			math.Abs(b[2]-v) <= delta || math.Abs(b[3]-v) <= delta ||
			math.Abs(b[4]-v) <= delta || math.Abs(b[5]-v) <= delta ||
			math.Abs(b[6]-v) <= delta || math.Abs(b[7]-v) <= delta {
			return i + indexCloseGeneric(b, v, delta)
		}
	}
	if j := indexCloseGeneric(vals[i:], v, delta); j >= 0 {
		return i + j
	}
	return -1
}

func indexGreaterGeneric[T number](vals []T, v T) int {
	for i, x := range vals {
		if x > v {
			return i
		}
	}
	return -1
}

func indexGreaterUnrolled[T number](vals []T, v T) int {
	i := 0
	for ; i+lanes <= len(vals); i += lanes {
		b := vals[i : i+lanes : i+lanes]
		if b[0] > v || b[1] > v || b[2] > v || b[3] > v ||
			b[4] > v || b[5] > v || b[6] > v || b[7] > v {
			return i + indexGreaterGeneric(b, v)
		}
	}
	if j := indexGreaterGeneric(vals[i:], v); j >= 0 {
		return i + j
	}
	return -1
}

func indexNonzeroGeneric[T number](vals []T) int {
	for i, x := range vals {
		if x != 0 {
			return i
		}
	}
	return -1
}

func indexNonzeroUnrolled[T number](vals []T) int {
	i := 0
	for ; i+lanes <= len(vals); i += lanes {
		b := vals[i : i+lanes : i+lanes]
		if b[0] != 0 || b[1] != 0 || b[2] != 0 || b[3] != 0 ||
			b[4] != 0 || b[5] != 0 || b[6] != 0 || b[7] != 0 {
			return i + indexNonzeroGeneric(b)
		}
	}
	if j := indexNonzeroGeneric(vals[i:]); j >= 0 {
		return i + j
	}
	return -1
}
