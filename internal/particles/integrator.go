package particles

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Integrator advances a single particle by dt under a constant force.
type Integrator interface {
	Integrate(p *Particle, force mgl64.Vec3, dt float64)
}

// SemiImplicitEuler updates velocity first and moves the particle with the
// new velocity.
type SemiImplicitEuler struct{}

func (SemiImplicitEuler) Integrate(p *Particle, force mgl64.Vec3, dt float64) {
	p.Velocity = p.Velocity.Add(force.Mul(dt / p.Mass))
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
}

// Euler is the forward Euler step: position moves with the velocity the
// particle had at the start of the step.
type Euler struct{}

func (Euler) Integrate(p *Particle, force mgl64.Vec3, dt float64) {
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
	p.Velocity = p.Velocity.Add(force.Mul(dt / p.Mass))
}

const (
	IntegratorSemiImplicit = "semi-implicit"
	IntegratorEuler        = "euler"
)

var integrators = map[string]func() Integrator{
	IntegratorSemiImplicit: func() Integrator { return SemiImplicitEuler{} },
	"symplectic":           func() Integrator { return SemiImplicitEuler{} },
	IntegratorEuler:        func() Integrator { return Euler{} },
}

// GetIntegrator resolves an integrator by name. The empty name selects
// semi-implicit Euler.
func GetIntegrator(name string) (Integrator, error) {
	if name == "" {
		name = IntegratorSemiImplicit
	}
	fn, ok := integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func ListIntegrators() []string {
	names := make([]string, 0, len(integrators))
	for name := range integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
