package elements

import "fmt"

// Location is the position of a value inside an array. For 1-D arrays
// Coords is nil and Index is the flat index; for N-D arrays Coords holds
// one coordinate per axis. When Found is false Index holds the caller's
// missing sentinel.
type Location struct {
	Index  int
	Coords []int
	Found  bool
}

// Locate builds the Location of flat index i in arr.
func Locate(arr *Array, i int) Location {
	loc := Location{Index: i, Found: true}
	if arr.NDim() > 1 {
		loc.Coords = arr.Unravel(i)
	}
	return loc
}

// Missing builds an absent Location carrying the sentinel.
func Missing(sentinel int) Location {
	return Location{Index: sentinel}
}

func (obj Location) String() string {
	switch {
	case !obj.Found:
		return fmt.Sprintf("missing(%d)", obj.Index)
	case obj.Coords != nil:
		return fmt.Sprintf("%v", obj.Coords)
	}
	return fmt.Sprintf("%d", obj.Index)
}
