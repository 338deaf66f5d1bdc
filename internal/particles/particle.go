package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MinMass is the smallest mass a particle is emitted with.
const MinMass = 1e-6

// Particle is a point mass in world space. Orientation is carried for the
// renderer and does not take part in the physics.
type Particle struct {
	Mass        float64
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Orientation mgl64.Vec3
}

func (p Particle) Speed() float64 { return p.Velocity.Len() }

func (p Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * p.Velocity.Dot(p.Velocity)
}

// IsValid reports whether position and velocity are finite.
func (p Particle) IsValid() bool {
	for i := 0; i < 3; i++ {
		for _, v := range [2]float64{p.Position[i], p.Velocity[i]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// ring is a fixed-capacity FIFO of values. Pushing onto a full ring
// overwrites the oldest element.
type ring[T any] struct {
	buf  []T
	head int
	size int
}

func newRing[T any](capacity int) *ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &ring[T]{buf: make([]T, capacity)}
}

func (r *ring[T]) Len() int { return r.size }
func (r *ring[T]) Cap() int { return len(r.buf) }

// Push appends v and reports whether the oldest element was evicted.
func (r *ring[T]) Push(v T) bool {
	if r.size == len(r.buf) {
		r.buf[r.head] = v
		r.head = (r.head + 1) % len(r.buf)
		return true
	}
	r.buf[(r.head+r.size)%len(r.buf)] = v
	r.size++
	return false
}

// At returns the i-th oldest element.
func (r *ring[T]) At(i int) *T {
	return &r.buf[(r.head+i)%len(r.buf)]
}

func (r *ring[T]) Clear() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.head, r.size = 0, 0
}

// Slice copies the contents, oldest first.
func (r *ring[T]) Slice() []T {
	out := make([]T, r.size)
	for i := range out {
		out[i] = *r.At(i)
	}
	return out
}

// resize keeps the newest min(Len, capacity) elements.
func (r *ring[T]) resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(r.buf) {
		return
	}
	items := r.Slice()
	if len(items) > capacity {
		items = items[len(items)-capacity:]
	}
	r.buf = make([]T, capacity)
	copy(r.buf, items)
	r.head, r.size = 0, len(items)
}
