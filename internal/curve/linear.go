package curve

import "github.com/go-gl/mathgl/mgl64"

var _ Evaluator = Linear{}

// Linear joins neighbouring control points with straight segments.
type Linear struct {
	Options
}

func NewLinear(opts Options) Linear {
	return Linear{Options: opts}
}

// Evaluate implements [Evaluator].
func (l Linear) Evaluate(ctrl []mgl64.Vec2, density int) []mgl64.Vec2 {
	density = normDensity(density)
	out := make([]mgl64.Vec2, 0, capacity(len(ctrl)-1, density))
	out = sampleLinear(out, ctrl, density)
	return l.finish(out, ctrl)
}
