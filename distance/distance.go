// Package distance provides the squared Euclidean kernel for 3-D points.
package distance

import (
	"math"

	"github.com/hupe1980/minloc/point"
)

// SquaredL2 returns the squared Euclidean distance between a and b.
// No square root is taken: squared distances preserve ordering and keep
// the hot path free of transcendental ops.
func SquaredL2(a, b point.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx + dy*dy + dz*dz
}

// Finite reports whether d is a usable distance. A NaN distance would
// corrupt the min ordering, an infinite one signals a non-finite or
// overflowing coordinate.
func Finite(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0)
}
