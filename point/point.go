package point

import "math"

// Point is a single 3-D coordinate. Value type, immutable once stored.
type Point struct {
	X, Y, Z float64
}

// Finite reports whether all three coordinates are finite real numbers.
func (p Point) Finite() bool {
	return finite(p.X) && finite(p.Y) && finite(p.Z)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
