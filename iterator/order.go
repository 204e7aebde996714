package iterator

import "github.com/vynegra/tensorcore/layout"

// Order names a traversal order chosen by Select.
type Order int

const (
	RowMajorOrder Order = iota
	ColMajorOrder
	MemNonStridedOrder
)

func (o Order) String() string {
	switch o {
	case RowMajorOrder:
		return "RowMajor"
	case ColMajorOrder:
		return "ColMajor"
	case MemNonStridedOrder:
		return "MemNonStrided"
	default:
		return "Unknown"
	}
}

// Select implements the "whichever is fastest" choice from the component
// design: MemNonStrided when every layout is packed in the SAME sense (all
// C-contiguous, or all F-contiguous), else RowMajor when every layout is
// C-preferred, else ColMajor when every layout is F-preferred, else
// RowMajor (the engine then falls back to per-element offset lookup for
// inputs that don't actually support cheap row-major walking — Select
// itself only names the order, callers build iterators per-layout).
//
// A layout being individually memory-non-strided is not enough: two
// differently-permuted memory-non-strided layouts (e.g. a C-contiguous
// array and its transpose) agree on which raw positions are reachable but
// not on the logical order those positions are visited in, so pairing them
// up by raw offset rather than by per-axis index silently computes the
// wrong thing. Restricting to "all C-contiguous" or "all F-contiguous"
// keeps MemNonStrided to cases where raw offset order and logical order
// coincide for every operand.
func Select(layouts ...layout.Layout) Order {
	allCContiguous := true
	allFContiguous := true
	allCPreferred := true
	allFPreferred := true
	for _, l := range layouts {
		if !l.IsCContiguous() {
			allCContiguous = false
		}
		if !l.IsFContiguous() {
			allFContiguous = false
		}
		if !l.IsCPreferred() {
			allCPreferred = false
		}
		if !l.IsFPreferred() {
			allFPreferred = false
		}
	}
	switch {
	case allCContiguous, allFContiguous:
		return MemNonStridedOrder
	case allCPreferred:
		return RowMajorOrder
	case allFPreferred:
		return ColMajorOrder
	default:
		return RowMajorOrder
	}
}

// New builds the concrete iterator for l in the given order. Callers that
// picked MemNonStridedOrder via Select but hold a layout which turns out
// not to actually be memory-non-strided (Select only requires ALL layouts
// to agree, which individual callers must still verify for their own
// layout) should fall back to NewRowMajor; New surfaces that case as an
// error so it can't be silently mishandled.
func New(l layout.Layout, order Order) (PosIterator, error) {
	switch order {
	case MemNonStridedOrder:
		return NewMemNonStrided(l)
	case ColMajorOrder:
		return NewColMajor(l), nil
	default:
		return NewRowMajor(l), nil
	}
}
