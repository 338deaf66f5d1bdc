package curve

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownKind is returned for evaluator names that are not registered.
var ErrUnknownKind = errors.New("curve: unknown evaluator kind")

type Kind string

const (
	KindLinear     Kind = "linear"
	KindBezier     Kind = "bezier"
	KindBSpline    Kind = "bspline"
	KindCatmullRom Kind = "catmullrom"
)

var kinds = map[Kind]func(Options) Evaluator{
	KindLinear:     func(o Options) Evaluator { return NewLinear(o) },
	KindBezier:     func(o Options) Evaluator { return NewBezier(o) },
	KindBSpline:    func(o Options) Evaluator { return NewBSpline(o) },
	KindCatmullRom: func(o Options) Evaluator { return NewCatmullRom(o) },
}

// ParseKind accepts the canonical names plus a few common spellings
// ("catmull-rom", "b-spline").
func ParseKind(name string) (Kind, error) {
	k := strings.ToLower(strings.TrimSpace(name))
	k = strings.NewReplacer("-", "", "_", "", " ", "").Replace(k)
	if _, ok := kinds[Kind(k)]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return Kind(k), nil
}

// New returns the evaluator registered for kind.
func New(kind Kind, opts Options) (Evaluator, error) {
	fn, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return fn(opts), nil
}

func Kinds() []Kind {
	names := make([]Kind, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Segments reports how many sampled segments kind produces for n control
// points. Each segment contributes exactly density samples; the final
// control point is appended on top of that.
func Segments(kind Kind, n int) int {
	if n < 2 {
		return 0
	}
	switch kind {
	case KindBezier:
		if n < 4 {
			return n - 1
		}
		segs := 0
		for i := 0; i < n-1; i += 3 {
			if i+3 >= n {
				return segs + (n - 1 - i)
			}
			segs++
		}
		return segs
	case KindBSpline:
		if n < 3 {
			return n - 1
		}
		return n + 1
	default:
		return n - 1
	}
}
