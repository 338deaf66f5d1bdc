package particles_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/animsim/internal/particles"
)

type capsule struct{}

func (capsule) Shape() particles.Shape { return particles.Shape(99) }
func (capsule) Restitution() float64   { return 1 }

// dropOnto emits one particle at height 2 heading down the Z axis at 5 units
// per second and steps half a second against colliders.
func dropOnto(cfg particles.Config, colliders ...particles.ColliderRef) (*particles.System, particles.Particle) {
	GinkgoHelper()
	cfg.InitialVelocity = mgl64.Vec3{0, 0, -5}
	ps := newSystem(cfg)
	ps.SetModelTransform(mgl64.Translate3D(0, 0, 2))
	ps.Start()
	ps.Update(0.5, colliders)
	Expect(ps.Len()).To(Equal(1))
	return ps, ps.Particles()[0]
}

func floor(restitution float64) particles.ColliderRef {
	return particles.ColliderRef{
		Collider: particles.Plane{Width: 10, Height: 10, Elasticity: restitution},
		Model:    mgl64.Ident4(),
	}
}

var _ = Describe("Collisions", func() {
	Describe("plane", func() {
		It("reverses the normal velocity with restitution 1", func() {
			ps, p := dropOnto(still(), floor(1))
			expectVec(p.Velocity, mgl64.Vec3{0, 0, 5})
			Expect(p.Speed()).To(BeNumerically("~", 5, 1e-12))
			Expect(ps.Stats().Collisions).To(Equal(1))
		})

		It("removes the normal velocity with restitution 0", func() {
			_, p := dropOnto(still(), floor(0))
			Expect(p.Velocity.Z()).To(Equal(0.0))
		})

		It("nudges the particle along the bounced velocity", func() {
			_, p := dropOnto(still(), floor(1))
			// integrated to z=-0.5, then advanced by 5 * 0.5
			expectVec(p.Position, mgl64.Vec3{0, 0, 2})
		})

		It("re-advances from the pre-step position in predictive mode", func() {
			cfg := still()
			cfg.Collision = particles.CollisionPredictive
			_, p := dropOnto(cfg, floor(1))
			expectVec(p.Velocity, mgl64.Vec3{0, 0, 5})
			expectVec(p.Position, mgl64.Vec3{0, 0, 4.5})
		})

		It("keeps the tangential velocity", func() {
			p := particles.Particle{
				Mass:     1,
				Position: mgl64.Vec3{1, 1, 0.2},
				Velocity: mgl64.Vec3{3, 0, -4},
			}
			hit := particles.Collide(&p, floor(1), 0.5, 0.01, p.Position)
			Expect(hit).To(BeTrue())
			expectVec(p.Velocity, mgl64.Vec3{3, 0, 4})

			p.Velocity = mgl64.Vec3{3, 0, -4}
			particles.Collide(&p, floor(0), 0.5, 0.01, p.Position)
			expectVec(p.Velocity, mgl64.Vec3{3, 0, 0})
		})

		It("ignores particles outside the rectangle", func() {
			p := particles.Particle{Mass: 1, Position: mgl64.Vec3{6, 0, 0}, Velocity: mgl64.Vec3{0, 0, -1}}
			Expect(particles.Collide(&p, floor(1), 0.5, 0.1, p.Position)).To(BeFalse())
		})

		It("ignores particles moving away from the plane", func() {
			p := particles.Particle{Mass: 1, Position: mgl64.Vec3{0, 0, 0.1}, Velocity: mgl64.Vec3{0, 0, 1}}
			Expect(particles.Collide(&p, floor(1), 0.5, 0.1, p.Position)).To(BeFalse())
		})

		It("works in the collider's local frame", func() {
			// local +Z maps to world +Y; the floor sits at y = -1
			model := mgl64.Translate3D(0, -1, 0).Mul4(mgl64.HomogRotate3DX(-math.Pi / 2))
			plane := particles.ColliderRef{
				Collider: particles.Plane{Width: 4, Height: 4, Elasticity: 0.5},
				Model:    model,
			}

			cfg := still()
			cfg.InitialVelocity = mgl64.Vec3{0, -3, 0}
			ps := newSystem(cfg)
			ps.Start()
			ps.Update(0.5, []particles.ColliderRef{plane})

			expectVec(ps.Particles()[0].Velocity, mgl64.Vec3{0, 1.5, 0})
		})

		It("resolves colliders in list order", func() {
			ps, p := dropOnto(still(), floor(0.5), floor(1))
			Expect(p.Velocity.Z()).To(BeNumerically("~", 2.5, 1e-12))
			Expect(ps.Stats().Collisions).To(Equal(1))
		})
	})

	Describe("sphere", func() {
		ball := particles.ColliderRef{
			Collider: particles.Sphere{Radius: 1, Elasticity: 1},
			Model:    mgl64.Translate3D(0, 0, -1),
		}

		It("bounces particles off the surface", func() {
			_, p := dropOnto(still(), ball)
			expectVec(p.Velocity, mgl64.Vec3{0, 0, 5})
		})

		It("scales the normal velocity by the restitution", func() {
			soft := ball
			soft.Collider = particles.Sphere{Radius: 1, Elasticity: 0.2}
			_, p := dropOnto(still(), soft)
			expectVec(p.Velocity, mgl64.Vec3{0, 0, 1})
		})

		It("misses particles that stay clear", func() {
			far := particles.ColliderRef{
				Collider: particles.Sphere{Radius: 1, Elasticity: 1},
				Model:    mgl64.Translate3D(10, 0, 0),
			}
			_, p := dropOnto(still(), far)
			expectVec(p.Velocity, mgl64.Vec3{0, 0, -5})
		})

		It("accepts pointer colliders", func() {
			ref := particles.ColliderRef{Collider: &particles.Sphere{Radius: 1, Elasticity: 1}, Model: ball.Model}
			_, p := dropOnto(still(), ref)
			expectVec(p.Velocity, mgl64.Vec3{0, 0, 5})
		})
	})

	It("ignores unknown collider shapes", func() {
		ref := particles.ColliderRef{Collider: capsule{}, Model: mgl64.Ident4()}
		_, p := dropOnto(still(), ref)
		expectVec(p.Velocity, mgl64.Vec3{0, 0, -5})
	})

	It("skips colliders with a singular transform", func() {
		ref := floor(1)
		ref.Model = mgl64.Scale3D(1, 1, 0)
		_, p := dropOnto(still(), ref)
		expectVec(p.Velocity, mgl64.Vec3{0, 0, -5})
	})
})
