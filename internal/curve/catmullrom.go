package curve

import "github.com/go-gl/mathgl/mgl64"

var _ Evaluator = CatmullRom{}

// CatmullRom interpolates every control point. The Bézier handles around
// p[i] sit at ±(p[i+1]-p[i-1])/6; the end points are doubled.
type CatmullRom struct {
	Options
}

func NewCatmullRom(opts Options) CatmullRom {
	return CatmullRom{Options: opts}
}

// Evaluate implements [Evaluator].
func (c CatmullRom) Evaluate(ctrl []mgl64.Vec2, density int) []mgl64.Vec2 {
	density = normDensity(density)
	out := make([]mgl64.Vec2, 0, capacity(Segments(KindCatmullRom, len(ctrl)), density))

	if len(ctrl) < 3 {
		out = sampleLinear(out, ctrl, density)
		return c.finish(out, ctrl)
	}

	n := len(ctrl)
	for i := 0; i < n-1; i++ {
		p0 := ctrl[max(i-1, 0)]
		p1 := ctrl[i]
		p2 := ctrl[i+1]
		p3 := ctrl[min(i+2, n-1)]

		v1 := p1.Add(p2.Sub(p0).Mul(1.0 / 6.0))
		v2 := p2.Sub(p3.Sub(p1).Mul(1.0 / 6.0))
		out = addBezier(out, density, p1, v1, v2, p2)
	}
	return c.finish(out, ctrl)
}
