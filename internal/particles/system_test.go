package particles_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/animsim/internal/particles"
)

func expectVec(got, want mgl64.Vec3) {
	GinkgoHelper()
	Expect(got.Sub(want).Len()).To(BeNumerically("<", 1e-9), "got %v, want %v", got, want)
}

// still is a config with no forces that emits on every update.
func still() particles.Config {
	cfg := particles.DefaultConfig()
	cfg.Period = 0
	cfg.ConstantForce = mgl64.Vec3{}
	cfg.Drag = 0
	cfg.InitialVelocity = mgl64.Vec3{}
	cfg.Mass = 1
	return cfg
}

func newSystem(cfg particles.Config) *particles.System {
	GinkgoHelper()
	ps, err := particles.New(cfg)
	Expect(err).NotTo(HaveOccurred())
	return ps
}

var _ = Describe("System", func() {
	Describe("run state", func() {
		It("starts stopped and toggles with Start and Stop", func() {
			ps := newSystem(particles.DefaultConfig())
			Expect(ps.IsRunning()).To(BeFalse())

			ps.Start()
			Expect(ps.IsRunning()).To(BeTrue())

			ps.Stop()
			Expect(ps.IsRunning()).To(BeFalse())
		})

		It("does nothing while stopped", func() {
			ps := newSystem(still())
			ps.Update(1, nil)
			Expect(ps.Len()).To(Equal(0))
		})

		It("keeps the run state across Reset", func() {
			ps := newSystem(still())
			ps.Start()
			ps.Update(0.1, nil)
			ps.Update(0.1, nil)
			Expect(ps.Len()).To(Equal(2))

			ps.Reset()
			Expect(ps.Len()).To(Equal(0))
			Expect(ps.IsRunning()).To(BeTrue())
			Expect(ps.Stats()).To(Equal(particles.Stats{}))
		})

		It("freezes particles after Stop", func() {
			cfg := still()
			cfg.InitialVelocity = mgl64.Vec3{1, 0, 0}
			ps := newSystem(cfg)
			ps.Start()
			ps.Update(0.5, nil)
			before := ps.Particles()

			ps.Stop()
			ps.Update(0.5, nil)
			Expect(ps.Particles()).To(Equal(before))
		})
	})

	Describe("emission", func() {
		It("emits once per expired period", func() {
			cfg := still()
			cfg.Period = 0.5
			ps := newSystem(cfg)
			ps.Start()

			ps.Update(0.25, nil)
			Expect(ps.Len()).To(Equal(0))
			ps.Update(0.25, nil)
			Expect(ps.Len()).To(Equal(1))
			ps.Update(0.25, nil)
			Expect(ps.Len()).To(Equal(1))
			ps.Update(0.25, nil)
			Expect(ps.Len()).To(Equal(2))
		})

		It("places particles at the model origin and rotates the initial velocity without translating it", func() {
			cfg := still()
			cfg.InitialVelocity = mgl64.Vec3{1, 0, 0}
			ps := newSystem(cfg)
			ps.SetModelTransform(mgl64.Translate3D(1, 2, 3).Mul4(mgl64.HomogRotate3DZ(math.Pi / 2)))
			ps.Start()
			ps.Update(0, nil)

			p := ps.Particles()[0]
			expectVec(p.Position, mgl64.Vec3{1, 2, 3})
			expectVec(p.Velocity, mgl64.Vec3{0, 1, 0})
			Expect(p.Mass).To(Equal(1.0))
		})

		It("clamps a zero mass so velocities stay finite", func() {
			cfg := particles.DefaultConfig()
			cfg.Mass = 0
			cfg.Period = 0
			ps := newSystem(cfg)
			ps.Start()
			ps.Update(0.1, nil)

			p := ps.Particles()[0]
			Expect(p.Mass).To(Equal(particles.MinMass))
			Expect(p.IsValid()).To(BeTrue())
		})

		It("evicts the oldest particle when the pool is full", func() {
			cfg := still()
			cfg.MaxParticles = 5
			ps := newSystem(cfg)
			ps.Start()

			for i := 0; i < 6; i++ {
				ps.SetModelTransform(mgl64.Translate3D(float64(i), 0, 0))
				ps.Update(0, nil)
				Expect(ps.Len()).To(BeNumerically("<=", 5))
			}

			ps6 := ps.Particles()
			Expect(ps6).To(HaveLen(5))
			for i, p := range ps6 {
				Expect(p.Position.X()).To(Equal(float64(i + 1)))
			}
			Expect(ps.Stats().Evicted).To(Equal(1))
			Expect(ps.Stats().Emitted).To(Equal(6))
		})

		It("keeps the newest particles when the capacity shrinks", func() {
			ps := newSystem(still())
			ps.Start()
			for i := 0; i < 4; i++ {
				ps.SetModelTransform(mgl64.Translate3D(float64(i), 0, 0))
				ps.Update(0, nil)
			}

			cfg := ps.Config()
			cfg.MaxParticles = 2
			Expect(ps.Configure(cfg)).To(Succeed())

			got := ps.Particles()
			Expect(got).To(HaveLen(2))
			Expect(got[0].Position.X()).To(Equal(2.0))
			Expect(got[1].Position.X()).To(Equal(3.0))
		})

		It("hands out copies of the pool", func() {
			ps := newSystem(still())
			ps.Start()
			ps.Update(0, nil)

			view := ps.Particles()
			view[0].Mass = 42
			Expect(ps.Particles()[0].Mass).To(Equal(1.0))
		})
	})

	Describe("integration", func() {
		It("moves particles in a straight line without forces", func() {
			cfg := still()
			cfg.InitialVelocity = mgl64.Vec3{1, -2, 3}
			ps := newSystem(cfg)
			ps.Start()
			ps.Update(0.5, nil)

			p := ps.Particles()[0]
			expectVec(p.Velocity, mgl64.Vec3{1, -2, 3})
			expectVec(p.Position, mgl64.Vec3{0.5, -1, 1.5})
		})

		It("uses the post-step velocity with the semi-implicit integrator", func() {
			cfg := particles.DefaultConfig()
			cfg.Mass = 1
			cfg.InitialVelocity = mgl64.Vec3{0, 5, 0}
			ps := newSystem(cfg)
			ps.Start()
			ps.Update(1, nil)

			p := ps.Particles()[0]
			expectVec(p.Velocity, mgl64.Vec3{0, -4.8, 0})
			expectVec(p.Position, mgl64.Vec3{0, -4.8, 0})
		})

		It("uses the pre-step velocity with the forward Euler integrator", func() {
			cfg := particles.DefaultConfig()
			cfg.Mass = 1
			cfg.InitialVelocity = mgl64.Vec3{0, 5, 0}
			cfg.Integrator = particles.IntegratorEuler
			ps := newSystem(cfg)
			ps.Start()
			ps.Update(1, nil)

			p := ps.Particles()[0]
			expectVec(p.Velocity, mgl64.Vec3{0, -4.8, 0})
			expectVec(p.Position, mgl64.Vec3{0, 5, 0})
		})

		It("applies drag against the velocity", func() {
			cfg := still()
			cfg.Drag = 0.5
			cfg.InitialVelocity = mgl64.Vec3{2, 0, 0}
			ps := newSystem(cfg)
			ps.Start()
			ps.Update(0.1, nil)

			expectVec(ps.Particles()[0].Velocity, mgl64.Vec3{1.9, 0, 0})
		})

		It("picks up edited forces on the next Start", func() {
			ps := newSystem(still())
			cfg := ps.Config()
			cfg.ConstantForce = mgl64.Vec3{0, 0, 1}
			Expect(ps.Configure(cfg)).To(Succeed())
			Expect(ps.Forces()[0].Vector).To(Equal(mgl64.Vec3{}))

			ps.Start()
			Expect(ps.Forces()[0].Vector).To(Equal(mgl64.Vec3{0, 0, 1}))
		})
	})

	Describe("configuration", func() {
		It("rejects unknown integrators", func() {
			cfg := particles.DefaultConfig()
			cfg.Integrator = "rk4"
			_, err := particles.New(cfg)
			Expect(err).To(MatchError(particles.ErrUnknownIntegrator))
		})

		It("rejects unknown collision modes", func() {
			cfg := particles.DefaultConfig()
			cfg.Collision = "swept"
			_, err := particles.New(cfg)
			Expect(err).To(MatchError(particles.ErrUnknownCollision))
		})

		It("fills in defaults for empty fields", func() {
			ps := newSystem(particles.Config{})
			Expect(ps.Config().MaxParticles).To(Equal(particles.DefaultMaxParticles))
			Expect(ps.Config().Collision).To(Equal(particles.CollisionImpulse))
		})
	})
})
