package viz

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// starting at U+2800.
const brailleBase = 0x2800

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells. Its pixel size is (2*Width) x (4*Height)
// with the origin at the top left.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) PixelWidth() int  { return 2 * c.Width }
func (c *Canvas) PixelHeight() int { return 4 * c.Height }

// Set lights the pixel at (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.PixelWidth() || y >= c.PixelHeight() {
		return
	}
	c.Grid[y/4][x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.PixelWidth() || y >= c.PixelHeight() {
		return false
	}
	return c.Grid[y/4][x/2]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
}

// DrawLine uses Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Plot draws data coordinates onto a canvas, y pointing up.
type Plot struct {
	*Canvas
	XMin, XMax float64
	YMin, YMax float64
}

func NewPlot(w, h int, xmin, xmax, ymin, ymax float64) *Plot {
	if xmax <= xmin {
		xmax = xmin + 1
	}
	if ymax <= ymin {
		ymax = ymin + 1
	}
	return &Plot{Canvas: NewCanvas(w, h), XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
}

func (p *Plot) pixel(x, y float64) (int, int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0, false
	}
	px := (x - p.XMin) / (p.XMax - p.XMin) * float64(p.PixelWidth()-1)
	py := (p.YMax - y) / (p.YMax - p.YMin) * float64(p.PixelHeight()-1)
	return int(math.Round(px)), int(math.Round(py)), true
}

func (p *Plot) Point(x, y float64) {
	if px, py, ok := p.pixel(x, y); ok {
		p.Set(px, py)
	}
}

func (p *Plot) Line(x0, y0, x1, y1 float64) {
	ax, ay, ok0 := p.pixel(x0, y0)
	bx, by, ok1 := p.pixel(x1, y1)
	if ok0 && ok1 {
		p.DrawLine(ax, ay, bx, by)
	}
}
