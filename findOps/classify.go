package findops

import (
	"fmt"

	"github.com/alekLukanen/ndarrow/elements"
)

// Mode is the comparison strategy selected for one locate call.
type Mode uint8

const (
	ModeInvalid Mode = iota
	ModeExact
	ModeSignedUnsignedExact
	ModeTolerant
	ModeSpecialFloat
	ModeTimestamp
	ModeObjectNaNScan
)

var modeNames = [...]string{
	ModeInvalid:             "invalid",
	ModeExact:               "exact",
	ModeSignedUnsignedExact: "signed_unsigned_exact",
	ModeTolerant:            "tolerant",
	ModeSpecialFloat:        "special_float",
	ModeTimestamp:           "timestamp",
	ModeObjectNaNScan:       "object_nan_scan",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

/*
* Classify picks the comparison mode for searching an array of the
* given kind for v. Rules are checked in order and the first match
* wins:
*
*  1. timestamp arrays take timestamp queries, NaT, or NaN (read as NaT)
*  2. object arrays scan for NaN/NaT queries, otherwise compare by value
*  3. a timestamp query matches nothing else
*  4. strings and binaries only compare with their own kind
*  5. NaN or infinite queries use structural detection
*  6. floats, complex and decimals on either side use the tolerance window
*  7. integers and booleans compare exactly, by value across signedness
 */
func Classify(kind elements.Kind, v elements.Scalar) (Mode, error) {
	vk := v.Kind()
	if kind == elements.KindInvalid || vk == elements.KindInvalid {
		return ModeInvalid, elements.NewStackError(
			fmt.Errorf("%w| array kind %s with query kind %s", elements.ErrUnsupportedType, kind, vk),
		)
	}

	switch {
	case kind == elements.KindTimestamp:
		if vk == elements.KindTimestamp || v.IsNaN() {
			return ModeTimestamp, nil
		}
		return ModeInvalid, incompatible(kind, v)
	case kind == elements.KindObject:
		if v.IsNaN() || v.IsNaT() {
			return ModeObjectNaNScan, nil
		}
		return ModeExact, nil
	case vk == elements.KindTimestamp:
		return ModeInvalid, incompatible(kind, v)
	case isText(kind) || isText(vk):
		if kind == vk {
			return ModeExact, nil
		}
		return ModeInvalid, incompatible(kind, v)
	case vk == elements.KindObject:
		return ModeInvalid, incompatible(kind, v)
	case v.IsSpecial():
		return ModeSpecialFloat, nil
	case kind.IsInexact() || vk.IsInexact():
		return ModeTolerant, nil
	case kind.IsUnsigned() != vk.IsUnsigned():
		return ModeSignedUnsignedExact, nil
	}
	return ModeExact, nil
}

func isText(k elements.Kind) bool {
	return k == elements.KindString || k == elements.KindBinary
}

func incompatible(kind elements.Kind, v elements.Scalar) error {
	return elements.NewStackError(
		fmt.Errorf("%w| array of %s with query %s (%s)", elements.ErrIncompatibleTypes, kind, v, v.Kind()),
	)
}
