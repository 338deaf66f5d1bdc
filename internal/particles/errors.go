package particles

import "errors"

var (
	// ErrUnknownIntegrator indicates an integrator name that is not registered.
	ErrUnknownIntegrator = errors.New("particles: unknown integrator")

	// ErrUnknownCollision indicates an unsupported collision mode.
	ErrUnknownCollision = errors.New("particles: unknown collision mode")
)
