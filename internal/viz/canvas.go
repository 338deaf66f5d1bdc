package viz

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const brailleBlank = 0x2800

// Dot bits of a braille cell, indexed [row][col]:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Pixel coordinates address the 2x4
// dots inside each cell, so a Width x Height canvas has Width*2 x Height*4
// pixels with (0, 0) at the top left.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, pixelMap[y%4][x%2], true
}

// Set turns on the pixel at (x, y). Out-of-range pixels are dropped.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

// IsSet reports whether the pixel at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps a world-space rectangle onto the canvas pixels, y up.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// FitViewport returns the bounding box of pts padded by pad on each side
// as a fraction of its extent. Flat extents are widened to 1.
func FitViewport(pts []mgl64.Vec2, pad float64) Viewport {
	if len(pts) == 0 {
		return Viewport{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	}
	vp := Viewport{MinX: pts[0].X(), MaxX: pts[0].X(), MinY: pts[0].Y(), MaxY: pts[0].Y()}
	for _, p := range pts[1:] {
		vp.MinX = math.Min(vp.MinX, p.X())
		vp.MaxX = math.Max(vp.MaxX, p.X())
		vp.MinY = math.Min(vp.MinY, p.Y())
		vp.MaxY = math.Max(vp.MaxY, p.Y())
	}
	rx, ry := vp.MaxX-vp.MinX, vp.MaxY-vp.MinY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	vp.MinX -= rx * pad
	vp.MaxX += rx * pad
	vp.MinY -= ry * pad
	vp.MaxY += ry * pad
	return vp
}

// ToPixel maps a world point into canvas pixels.
func (vp Viewport) ToPixel(c *Canvas, p mgl64.Vec2) (int, int) {
	w := float64(c.PixelWidth() - 1)
	h := float64(c.PixelHeight() - 1)
	x := (p.X() - vp.MinX) / (vp.MaxX - vp.MinX) * w
	y := h - (p.Y()-vp.MinY)/(vp.MaxY-vp.MinY)*h
	return int(math.Round(x)), int(math.Round(y))
}

// DrawPolyline joins consecutive world points with lines.
func (c *Canvas) DrawPolyline(pts []mgl64.Vec2, vp Viewport) {
	if len(pts) == 1 {
		c.Set(vp.ToPixel(c, pts[0]))
		return
	}
	for i := 1; i < len(pts); i++ {
		x0, y0 := vp.ToPixel(c, pts[i-1])
		x1, y1 := vp.ToPixel(c, pts[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawMarker draws a small cross at a world point.
func (c *Canvas) DrawMarker(p mgl64.Vec2, vp Viewport) {
	x, y := vp.ToPixel(c, p)
	c.Set(x, y)
	c.Set(x-1, y)
	c.Set(x+1, y)
	c.Set(x, y-1)
	c.Set(x, y+1)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
