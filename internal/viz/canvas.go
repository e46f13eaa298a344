package viz

import (
	"math"
	"strings"

	"github.com/san-kum/rigidsim/internal/linalg"
)

const brailleBlank rune = 0x2800

// Each terminal cell holds a 2x4 braille dot grid:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel buffer. Pixel coordinates run from (0, 0) at the
// top left to (PixelWidth-1, PixelHeight-1).
type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 || x >= c.PixelWidth() || y >= c.PixelHeight() {
		return 0, 0, 0, false
	}
	return y / 4, x / 2, dotBits[y%4][x%2], true
}

func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.cells[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.cells[row][col] &^= bit
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.cells[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBlank
		}
	}
}

// DrawLine rasterizes a segment with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle draws an outline with the midpoint algorithm. A radius below one
// pixel draws a single dot.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps the x/y plane of the world onto a canvas, y up.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// FitViewport returns the smallest viewport holding every point, grown by pad
// on each side. Degenerate extents are widened to one unit.
func FitViewport(points []linalg.Vec3, pad float64) Viewport {
	if len(points) == 0 {
		return Viewport{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
	}
	v := Viewport{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
	for _, p := range points {
		v.MinX, v.MaxX = math.Min(v.MinX, p[0]), math.Max(v.MaxX, p[0])
		v.MinY, v.MaxY = math.Min(v.MinY, p[1]), math.Max(v.MaxY, p[1])
	}
	if v.MaxX-v.MinX < 1 {
		mid := (v.MinX + v.MaxX) / 2
		v.MinX, v.MaxX = mid-0.5, mid+0.5
	}
	if v.MaxY-v.MinY < 1 {
		mid := (v.MinY + v.MaxY) / 2
		v.MinY, v.MaxY = mid-0.5, mid+0.5
	}
	v.MinX -= pad
	v.MaxX += pad
	v.MinY -= pad
	v.MaxY += pad
	return v
}

// ToPixel projects p onto c, dropping z.
func (v Viewport) ToPixel(p linalg.Vec3, c *Canvas) (int, int) {
	fx := (p[0] - v.MinX) / (v.MaxX - v.MinX)
	fy := (v.MaxY - p[1]) / (v.MaxY - v.MinY)
	return int(math.Round(fx * float64(c.PixelWidth()-1))), int(math.Round(fy * float64(c.PixelHeight()-1)))
}

// Scale is the number of horizontal pixels per world unit.
func (v Viewport) Scale(c *Canvas) float64 {
	return float64(c.PixelWidth()-1) / (v.MaxX - v.MinX)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
