package sortedbucket

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sortedbucket/engine"
)

var (
	// ErrNilLess is returned when a container is built without an ordering
	// function.
	ErrNilLess = errors.New("ordering function must not be nil")

	// ErrInvalidDensity is returned when a bucket density below 1 is
	// configured.
	ErrInvalidDensity = errors.New("density must be at least 1")

	// ErrInvalidCapacity is returned when a negative capacity hint is
	// configured.
	ErrInvalidCapacity = errors.New("capacity must not be negative")
)

// translateError maps engine errors onto the root sentinels so callers can
// errors.Is against this package alone. Engine invariant errors and unknown
// errors pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, engine.ErrNilLess):
		return fmt.Errorf("%w: %w", ErrNilLess, err)
	case errors.Is(err, engine.ErrInvalidDensity):
		return fmt.Errorf("%w: %w", ErrInvalidDensity, err)
	case errors.Is(err, engine.ErrInvalidCapacity):
		return fmt.Errorf("%w: %w", ErrInvalidCapacity, err)
	}

	return err
}
