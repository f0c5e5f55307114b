package minloc

import (
	"errors"
	"fmt"

	"github.com/hupe1980/minloc/point"
	"github.com/hupe1980/minloc/reduce"
)

var (
	// ErrIndexOutOfRange is returned when a point index outside [0, N)
	// reaches the store. This is a programming error, not retried.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidCoordinate is returned when the distance computation
	// yields a non-finite value, from a NaN or infinite coordinate or
	// from float64 overflow. The reduction is aborted rather than
	// producing a corrupted minimum.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var oor *point.ErrIndexOutOfRange
	if errors.As(err, &oor) {
		return fmt.Errorf("%w: %w", ErrIndexOutOfRange, err)
	}

	var ic *reduce.ErrInvalidCoordinate
	if errors.As(err, &ic) {
		return fmt.Errorf("%w: %w", ErrInvalidCoordinate, err)
	}

	return err
}
