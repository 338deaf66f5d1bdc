// Package particles implements a frame-stepped particle emitter.
//
// A [System] owns a bounded pool of particles. Each call to [System.Update]
//
//   - emits at most one particle when the emission timer expires
//   - sums the configured forces ([Force]: constant and drag)
//   - advances every particle with the configured [Integrator]
//   - resolves collisions against the supplied [ColliderRef] list
//
// When the pool is full the oldest particle is evicted before a new one is
// inserted.
//
// # Example
//
//	ps, _ := particles.New(particles.DefaultConfig())
//	ps.SetModelTransform(mgl64.Translate3D(0, 2, 0))
//	ps.Start()
//	for frame := 0; frame < 600; frame++ {
//	    ps.Update(1.0/60, colliders)
//	}
//
// # Thread Safety
//
// System instances are NOT thread-safe. The collider list is only read
// during Update.
package particles
