package particles

import "github.com/go-gl/mathgl/mgl64"

type ForceKind int

const (
	// ForceConstant applies the same vector to every particle, e.g. gravity.
	ForceConstant ForceKind = iota
	// ForceDrag opposes velocity: F = -k * v.
	ForceDrag
)

func (k ForceKind) String() string {
	switch k {
	case ForceConstant:
		return "constant"
	case ForceDrag:
		return "drag"
	}
	return "unknown"
}

// Force is one term of the per-particle force sum.
type Force struct {
	Kind        ForceKind
	Vector      mgl64.Vec3
	Coefficient float64
}

func Constant(f mgl64.Vec3) Force { return Force{Kind: ForceConstant, Vector: f} }
func Drag(k float64) Force        { return Force{Kind: ForceDrag, Coefficient: k} }

// Eval returns the force acting on p.
func (f Force) Eval(p Particle) mgl64.Vec3 {
	switch f.Kind {
	case ForceConstant:
		return f.Vector
	case ForceDrag:
		return p.Velocity.Mul(-f.Coefficient)
	}
	return mgl64.Vec3{}
}

// NetForce sums forces in order.
func NetForce(forces []Force, p Particle) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, f := range forces {
		sum = sum.Add(f.Eval(p))
	}
	return sum
}
