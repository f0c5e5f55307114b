package reduce

import (
	"fmt"
	"math"

	"github.com/hupe1980/minloc/distance"
	"github.com/hupe1980/minloc/point"
)

// NoIndex marks a Candidate that has not absorbed any element yet.
const NoIndex = -1

// Candidate is the working value of the reduction: a squared distance and
// the index that produced it. Candidates compare by Dist only; Index is
// carried payload and never enters the comparison.
type Candidate struct {
	Dist  float64
	Index int
}

// Identity returns the identity element of Combine: +Inf distance, no index.
func Identity() Candidate {
	return Candidate{Dist: math.Inf(1), Index: NoIndex}
}

// Combine selects the smaller-distance candidate. It only replaces a on a
// strict improvement, so an exact tie keeps a. Which side arrives as a
// depends on partitioning and merge order, making tie winners
// schedule-dependent. The minimum distance itself is independent of any
// grouping of the operands.
func Combine(a, b Candidate) Candidate {
	if b.Dist < a.Dist {
		return b
	}
	return a
}

// ErrInvalidCoordinate indicates that the distance kernel produced a
// non-finite value for the point at Index, either because a coordinate is
// NaN or infinite, or because the squared distance overflows float64 even
// though every coordinate is finite.
type ErrInvalidCoordinate struct {
	Index int
	Point point.Point
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("non-finite distance for point at index %d: (%g, %g, %g)", e.Index, e.Point.X, e.Point.Y, e.Point.Z)
}

// FoldRange folds the indices [lo, hi) of s into acc via Combine, computing
// the squared distance of each point to query. It aborts on the first
// non-finite distance rather than feeding an incomparable value into the
// ordering.
func FoldRange(s *point.Store, query point.Point, lo, hi int, acc Candidate) (Candidate, error) {
	coords := s.Coords()
	for i := lo; i < hi; i++ {
		base := i * 3
		p := point.Point{X: coords[base], Y: coords[base+1], Z: coords[base+2]}
		d := distance.SquaredL2(query, p)
		if !distance.Finite(d) {
			return acc, &ErrInvalidCoordinate{Index: i, Point: p}
		}
		acc = Combine(acc, Candidate{Dist: d, Index: i})
	}
	return acc, nil
}
