package point

import "fmt"

// ErrIndexOutOfRange is a named error type for an index outside [0, Size).
type ErrIndexOutOfRange struct {
	Index int
	Size  int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Size)
}

// Store holds an ordered sequence of points in a single contiguous backing
// array (x, y, z interleaved). The index of a point is its permanent
// identity. A Store never changes after construction.
type Store struct {
	coords []float64
}

// NewStore creates a Store from the given points. The points are copied;
// later changes to the input slice do not affect the Store.
func NewStore(points []Point) *Store {
	coords := make([]float64, 0, len(points)*3)
	for _, p := range points {
		coords = append(coords, p.X, p.Y, p.Z)
	}
	return &Store{coords: coords}
}

// FromCoords creates a Store that adopts an interleaved coordinate slice
// (x0, y0, z0, x1, ...). The slice length must be a multiple of 3. The
// Store takes ownership; the caller must not modify the slice afterwards.
func FromCoords(coords []float64) (*Store, error) {
	if len(coords)%3 != 0 {
		return nil, fmt.Errorf("coordinate slice length %d is not a multiple of 3", len(coords))
	}
	return &Store{coords: coords}, nil
}

// Size returns the number of points in the store.
func (s *Store) Size() int {
	return len(s.coords) / 3
}

// At returns the point at index i.
func (s *Store) At(i int) (Point, error) {
	if i < 0 || i >= s.Size() {
		return Point{}, &ErrIndexOutOfRange{Index: i, Size: s.Size()}
	}
	base := i * 3
	return Point{X: s.coords[base], Y: s.coords[base+1], Z: s.coords[base+2]}, nil
}

// Coords returns the interleaved backing array for zero-copy scans.
// Callers must treat the slice as read-only.
func (s *Store) Coords() []float64 {
	return s.coords
}
