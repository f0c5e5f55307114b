package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/minloc/distance"
	"github.com/hupe1980/minloc/point"
)

// GridExtent is the default side length of the coordinate cube: points are
// generated in a 2^20 x 2^20 x 2^20 grid.
const GridExtent = 1 << 20

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// GridPoint generates a single point with whole-number coordinates drawn
// uniformly from [0, GridExtent).
func (r *RNG) GridPoint() point.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gridPointLocked()
}

func (r *RNG) gridPointLocked() point.Point {
	return point.Point{
		X: float64(r.rand.Intn(GridExtent)),
		Y: float64(r.rand.Intn(GridExtent)),
		Z: float64(r.rand.Intn(GridExtent)),
	}
}

// GridPoints generates num points with whole-number coordinates drawn
// uniformly from [0, GridExtent). Locks only once per call.
func (r *RNG) GridPoints(num int) []point.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]point.Point, num)
	for i := range points {
		points[i] = r.gridPointLocked()
	}
	return points
}

// NearestBruteForce performs a sequential scan for ground truth. It returns
// the index of the nearest point and its squared distance, or (-1, 0) for
// an empty slice.
func NearestBruteForce(points []point.Point, query point.Point) (int, float64) {
	bestIdx := -1
	bestDist := 0.0
	for i, p := range points {
		d := distance.SquaredL2(query, p)
		if bestIdx < 0 || d < bestDist {
			bestIdx = i
			bestDist = d
		}
	}
	return bestIdx, bestDist
}

// TiedIndices returns every index of points whose squared distance to query
// equals the exact minimum. Useful for asserting tie-break freedom.
func TiedIndices(points []point.Point, query point.Point) []int {
	best := -1
	bestDist := 0.0
	var tied []int
	for i, p := range points {
		d := distance.SquaredL2(query, p)
		switch {
		case best < 0 || d < bestDist:
			best = i
			bestDist = d
			tied = tied[:0]
			tied = append(tied, i)
		case d == bestDist:
			tied = append(tied, i)
		}
	}
	return tied
}
