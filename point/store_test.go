package point

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		s := NewStore(nil)
		assert.Equal(t, 0, s.Size())
		assert.Empty(t, s.Coords())
	})

	t.Run("CopiesInput", func(t *testing.T) {
		points := []Point{{X: 1, Y: 2, Z: 3}}
		s := NewStore(points)

		points[0].X = 99

		p, err := s.At(0)
		require.NoError(t, err)
		assert.Equal(t, Point{X: 1, Y: 2, Z: 3}, p)
	})

	t.Run("Interleaved", func(t *testing.T) {
		s := NewStore([]Point{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}})
		assert.Equal(t, 2, s.Size())
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, s.Coords())
	})
}

func TestFromCoords(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s, err := FromCoords([]float64{1, 2, 3, 4, 5, 6})
		require.NoError(t, err)
		assert.Equal(t, 2, s.Size())

		p, err := s.At(1)
		require.NoError(t, err)
		assert.Equal(t, Point{X: 4, Y: 5, Z: 6}, p)
	})

	t.Run("Empty", func(t *testing.T) {
		s, err := FromCoords(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Size())
	})

	t.Run("NotMultipleOfThree", func(t *testing.T) {
		_, err := FromCoords([]float64{1, 2, 3, 4})
		assert.Error(t, err)
	})
}

func TestStoreAt(t *testing.T) {
	s := NewStore([]Point{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}, {X: 7, Y: 8, Z: 9}})

	tests := []struct {
		name    string
		index   int
		wantErr bool
	}{
		{"First", 0, false},
		{"Last", 2, false},
		{"Negative", -1, true},
		{"PastEnd", 3, true},
		{"FarPastEnd", 1 << 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := s.At(tt.index)
			if tt.wantErr {
				var oor *ErrIndexOutOfRange
				require.ErrorAs(t, err, &oor)
				assert.Equal(t, tt.index, oor.Index)
				assert.Equal(t, 3, oor.Size)
				assert.Equal(t, Point{}, p)
			} else {
				require.NoError(t, err)
				assert.Equal(t, float64(tt.index*3+1), p.X)
			}
		})
	}
}

func TestStoreAtEmpty(t *testing.T) {
	s := NewStore(nil)

	_, err := s.At(0)
	var oor *ErrIndexOutOfRange
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, 0, oor.Size)
}

func TestPointFinite(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"Origin", Point{}, true},
		{"Regular", Point{X: 1.5, Y: -2, Z: 1e300}, true},
		{"NaNX", Point{X: math.NaN()}, false},
		{"NaNY", Point{Y: math.NaN()}, false},
		{"NaNZ", Point{Z: math.NaN()}, false},
		{"PosInf", Point{X: math.Inf(1)}, false},
		{"NegInf", Point{Z: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.p.Finite())
		})
	}
}
