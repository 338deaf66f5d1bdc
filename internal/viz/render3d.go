package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/animsim/internal/particles"
)

const (
	near     = 0.1
	maxPitch = 1.5
)

// Camera orbits Target at Distance. Yaw turns about world Y, pitch tilts
// toward it.
type Camera struct {
	Target   mgl64.Vec3
	Yaw      float64
	Pitch    float64
	Distance float64
	Zoom     float64
}

func NewCamera() *Camera {
	return &Camera{Pitch: 0.35, Distance: 30, Zoom: 1.0}
}

func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = mgl64.Clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) Eye() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	dir := mgl64.Vec3{cp * math.Sin(c.Yaw), math.Sin(c.Pitch), cp * math.Cos(c.Yaw)}
	return c.Target.Add(dir.Mul(c.Distance))
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
}

// Project maps a world point to pixel coordinates on a sw x sh canvas and
// returns its depth. ok is false for points behind the camera or off
// screen.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (x, y int, depth float64, ok bool) {
	return project(c.View(), c.Zoom, p, sw, sh)
}

func project(view mgl64.Mat4, zoom float64, p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	v := view.Mul4x1(p.Vec4(1))
	depth := -v.Z()
	if depth < near {
		return 0, 0, depth, false
	}
	scale := zoom * float64(min(sw, sh)) / depth
	x := int(math.Round(v.X()*scale)) + sw/2
	y := int(math.Round(-v.Y()*scale)) + sh/2
	return x, y, depth, x >= 0 && x < sw && y >= 0 && y < sh
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Clear()                  { w.Edges = w.Edges[:0] }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far to near.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.PixelWidth(), c.PixelHeight()
	view := cam.View()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := project(view, cam.Zoom, e.Start, cw, ch)
		x2, y2, d2, v2 := project(view, cam.Zoom, e.End, cw, ch)
		if d1 < near || d2 < near {
			continue
		}
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// RenderParticles plots each particle as a single pixel.
func RenderParticles(c *Canvas, ps []particles.Particle, cam *Camera) {
	cw, ch := c.PixelWidth(), c.PixelHeight()
	view := cam.View()
	for _, p := range ps {
		if x, y, _, ok := project(view, cam.Zoom, p.Position, cw, ch); ok {
			c.Set(x, y)
		}
	}
}

const ringSegments = 24

// ColliderWireframe outlines colliders in world space: planes as their
// rectangle, spheres as three great circles.
func ColliderWireframe(refs []particles.ColliderRef) *Wireframe {
	w := NewWireframe()
	for _, ref := range refs {
		world := func(p mgl64.Vec3) mgl64.Vec3 { return ref.Model.Mul4x1(p.Vec4(1)).Vec3() }
		switch s := ref.Collider.(type) {
		case particles.Plane:
			addRect(w, s.Width/2, s.Height/2, world)
		case *particles.Plane:
			addRect(w, s.Width/2, s.Height/2, world)
		case particles.Sphere:
			addSphere(w, s.Radius, world)
		case *particles.Sphere:
			addSphere(w, s.Radius, world)
		}
	}
	return w
}

func addRect(w *Wireframe, hw, hh float64, world func(mgl64.Vec3) mgl64.Vec3) {
	corners := []mgl64.Vec3{{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0}}
	for i := range corners {
		w.AddEdge(world(corners[i]), world(corners[(i+1)%len(corners)]))
	}
}

func addSphere(w *Wireframe, r float64, world func(mgl64.Vec3) mgl64.Vec3) {
	for axis := 0; axis < 3; axis++ {
		prev := world(ringPoint(axis, r, 0))
		for i := 1; i <= ringSegments; i++ {
			next := world(ringPoint(axis, r, 2*math.Pi*float64(i)/ringSegments))
			w.AddEdge(prev, next)
			prev = next
		}
	}
}

func ringPoint(axis int, r, a float64) mgl64.Vec3 {
	u, v := r*math.Cos(a), r*math.Sin(a)
	switch axis {
	case 0:
		return mgl64.Vec3{0, u, v}
	case 1:
		return mgl64.Vec3{u, 0, v}
	}
	return mgl64.Vec3{u, v, 0}
}

func AxesWireframe(l float64) *Wireframe {
	w, o := NewWireframe(), mgl64.Vec3{}
	w.AddEdge(o, mgl64.Vec3{l, 0, 0})
	w.AddEdge(o, mgl64.Vec3{0, l, 0})
	w.AddEdge(o, mgl64.Vec3{0, 0, l})
	return w
}
