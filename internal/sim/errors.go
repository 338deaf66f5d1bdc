package sim

import "errors"

var (
	// ErrInvalidConfig is returned by Run for non-positive dt or a negative
	// duration.
	ErrInvalidConfig = errors.New("sim: invalid run config")

	// ErrInvalidState marks frames that produced NaN or Inf particle state.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")
)
