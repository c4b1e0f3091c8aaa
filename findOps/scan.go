package findops

import "sort"

type predicate func(i int) bool

func never(int) bool  { return false }
func always(int) bool { return true }

// scanPlan is a search resolved against one array's storage and query.
type scanPlan struct {
	// match is the comparator predicate.
	match predicate
	// atLeast is monotone over input sorted ascending with missing values
	// last: false before the first candidate position, true from it on.
	// Nil when the plan cannot be probed.
	atLeast predicate
	// kernel scans null free storage with the selected backend.
	kernel func() int
}

// linearScan returns the first flat index in row-major order that
// matches, or -1.
func (obj scanPlan) linearScan(n int) int {
	if obj.kernel != nil {
		return obj.kernel()
	}
	for i := 0; i < n; i++ {
		if obj.match(i) {
			return i
		}
	}
	return -1
}

// sortedProbe bisects for the first candidate and confirms it with the
// comparator. Unsorted input gives an unspecified result.
func (obj scanPlan) sortedProbe(n int) int {
	i := sort.Search(n, obj.atLeast)
	if i < n && obj.match(i) {
		return i
	}
	return -1
}
