package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the slop added to contact distances so particles resting on a
// surface do not jitter in and out of contact.
const Epsilon = 0.1

type Shape int

const (
	ShapeSphere Shape = iota + 1
	ShapePlane
)

func (s Shape) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	case ShapePlane:
		return "plane"
	}
	return "unknown"
}

// Collider is a static shape particles bounce off. Shapes are defined in
// their own local space; [ColliderRef] places them in the world.
type Collider interface {
	Shape() Shape
	// Restitution is the fraction of the normal velocity kept after a
	// bounce: 0 is fully inelastic, 1 fully elastic.
	Restitution() float64
}

// Sphere is centred on the local origin.
type Sphere struct {
	Radius     float64
	Elasticity float64
}

func (Sphere) Shape() Shape           { return ShapeSphere }
func (s Sphere) Restitution() float64 { return s.Elasticity }

// Plane is a Width x Height rectangle in the local XY plane, facing +Z.
type Plane struct {
	Width      float64
	Height     float64
	Elasticity float64
}

func (Plane) Shape() Shape           { return ShapePlane }
func (p Plane) Restitution() float64 { return p.Elasticity }

// ColliderRef pairs a collider with its model matrix for one update.
type ColliderRef struct {
	Collider Collider
	Model    mgl64.Mat4
}

// contact tests a local-space particle against a collider and returns the
// local contact normal.
func contact(c Collider, pos, vel mgl64.Vec3, radius float64) (mgl64.Vec3, bool) {
	switch s := c.(type) {
	case Sphere:
		return sphereContact(s, pos, vel, radius)
	case *Sphere:
		return sphereContact(*s, pos, vel, radius)
	case Plane:
		return planeContact(s, pos, vel, radius)
	case *Plane:
		return planeContact(*s, pos, vel, radius)
	}
	return mgl64.Vec3{}, false
}

func sphereContact(s Sphere, pos, vel mgl64.Vec3, radius float64) (mgl64.Vec3, bool) {
	dist := pos.Len()
	if dist > radius+s.Radius+Epsilon {
		return mgl64.Vec3{}, false
	}
	var n mgl64.Vec3
	if dist > 1e-12 {
		n = pos.Mul(1 / dist)
	} else if speed := vel.Len(); speed > 1e-12 {
		n = vel.Mul(-1 / speed)
	} else {
		return mgl64.Vec3{}, false
	}
	// Already separating.
	if vel.Dot(n) >= 0 {
		return mgl64.Vec3{}, false
	}
	return n, true
}

func planeContact(p Plane, pos, vel mgl64.Vec3, radius float64) (mgl64.Vec3, bool) {
	if pos.Z() > radius+Epsilon {
		return mgl64.Vec3{}, false
	}
	if math.Abs(pos.X()) > p.Width/2 || math.Abs(pos.Y()) > p.Height/2 {
		return mgl64.Vec3{}, false
	}
	if vel.Z() >= 0 {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{0, 0, 1}, true
}

// reflect splits v into normal and tangential parts and scales the
// reflected normal part by e.
func reflect(v, n mgl64.Vec3, e float64) mgl64.Vec3 {
	vn := n.Mul(v.Dot(n))
	vt := v.Sub(vn)
	return vt.Sub(vn.Mul(e))
}

// Collide resolves p against c in place and reports whether it bounced.
// The particle is advanced from origin along its new velocity for dt so it
// does not start the next step inside the collider. Colliders with a
// singular model matrix are ignored.
func Collide(p *Particle, c ColliderRef, radius, dt float64, origin mgl64.Vec3) bool {
	if c.Collider == nil {
		return false
	}
	if math.Abs(c.Model.Det()) < 1e-12 {
		return false
	}
	inv := c.Model.Inv()

	pos := inv.Mul4x1(p.Position.Vec4(1)).Vec3()
	vel := inv.Mul4x1(p.Velocity.Vec4(0)).Vec3()

	n, hit := contact(c.Collider, pos, vel, radius)
	if !hit {
		return false
	}

	bounced := reflect(vel, n, c.Collider.Restitution())
	world := c.Model.Mul4x1(bounced.Vec4(0)).Vec3()

	p.Velocity = world
	p.Position = origin.Add(world.Mul(dt))
	return true
}
