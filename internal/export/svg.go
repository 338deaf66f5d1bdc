package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/animsim/internal/particles"
)

const background = "#0a0a0a"

// bounds is a padded 2D bounding box.
type bounds struct {
	minX, minY, rangeX, rangeY float64
}

func fit(pts []mgl64.Vec2) bounds {
	minX, maxX := pts[0].X(), pts[0].X()
	minY, maxY := pts[0].Y(), pts[0].Y()
	for _, p := range pts {
		minX = math.Min(minX, p.X())
		maxX = math.Max(maxX, p.X())
		minY = math.Min(minY, p.Y())
		maxY = math.Max(maxY, p.Y())
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	return bounds{minX: minX, minY: minY, rangeX: maxX - minX, rangeY: maxY - minY}
}

func (b bounds) project(p mgl64.Vec2, width, height int) (float64, float64) {
	x := (p.X() - b.minX) / b.rangeX * float64(width)
	y := float64(height) - (p.Y()-b.minY)/b.rangeY*float64(height)
	return x, y
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// CurveToSVG draws the sampled curve as one path and marks each control
// point with a circle. It returns "" for fewer than two samples.
func CurveToSVG(samples, ctrl []mgl64.Vec2, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}
	b := fit(append(append([]mgl64.Vec2{}, samples...), ctrl...))

	var sb strings.Builder
	header(&sb, width, height)

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i, p := range samples {
		x, y := b.project(p, width, height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	if len(ctrl) > 0 {
		sb.WriteString(`<g fill="none" stroke="#888899">` + "\n")
		for _, p := range ctrl {
			x, y := b.project(p, width, height)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3"/>`+"\n", x, y))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Plane picks the two world axes a particle snapshot is drawn on.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneZY
)

func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(s) {
	case "", "xy":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "zy":
		return PlaneZY, nil
	}
	return 0, fmt.Errorf("export: unknown plane %q", s)
}

func (pl Plane) flatten(v mgl64.Vec3) mgl64.Vec2 {
	switch pl {
	case PlaneXZ:
		return mgl64.Vec2{v.X(), v.Z()}
	case PlaneZY:
		return mgl64.Vec2{v.Z(), v.Y()}
	}
	return mgl64.Vec2{v.X(), v.Y()}
}

// ParticlesToSVG draws a particle snapshot as dots projected onto plane,
// each with a short tick along its velocity. Older particles are drawn
// fainter.
func ParticlesToSVG(ps []particles.Particle, plane Plane, width, height int, color string) string {
	if len(ps) == 0 {
		return ""
	}

	pts := make([]mgl64.Vec2, len(ps))
	for i, p := range ps {
		pts[i] = plane.flatten(p.Position)
	}
	b := fit(pts)

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<g fill="%s" stroke="%s" stroke-width="0.75">`+"\n", color, color))

	for i, p := range ps {
		opacity := 0.3 + 0.7*float64(i+1)/float64(len(ps))
		x, y := b.project(pts[i], width, height)
		tip := plane.flatten(p.Position.Add(p.Velocity.Mul(0.05)))
		tx, ty := b.project(tip, width, height)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" opacity="%.2f"/>`+"\n", x, y, opacity))
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" opacity="%.2f"/>`+"\n", x, y, tx, ty, opacity))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
