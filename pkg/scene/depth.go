package scene

import (
	"cmp"
	"slices"
)

// Depther is anything with a representative depth.
type Depther interface {
	CentroidZ() float64
}

// DepthOrder orders a before b when the result is negative. Farther
// primitives (larger z) come first so nearer ones are painted over them.
func DepthOrder(a, b Depther) float64 {
	return b.CentroidZ() - a.CentroidZ()
}

// CompareDepth is DepthOrder as a total order for slices.SortFunc. NaN depths
// compare as nearest and are drawn last.
func CompareDepth(a, b Depther) int {
	return cmp.Compare(b.CentroidZ(), a.CentroidZ())
}

// SortByDepth sorts prims farthest first. Equal depths keep their order.
func SortByDepth(prims []Primitive) {
	slices.SortStableFunc(prims, func(a, b Primitive) int {
		return CompareDepth(a, b)
	})
}
