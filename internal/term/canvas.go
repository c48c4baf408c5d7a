// Package term renders the black hole in a terminal using tcell. Every cell
// holds two square sub-pixels drawn with an upper half block.
package term

import (
	"image/color"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/blackhole-go/internal/render"
)

// PixelSize is the edge of one sub-pixel in simulation px.
const PixelSize = 8

// Cells are drawn as an upper half block: foreground is the top sub-pixel,
// background the bottom one.
const halfBlock = '▀'

type rgb struct {
	r, g, b float64 // 0..1
}

func (c rgb) scale(k float64) rgb {
	return rgb{c.r * k, c.g * k, c.b * k}
}

// over blends src onto c with opacity a.
func (c rgb) over(src rgb, a float64) rgb {
	return rgb{
		c.r + (src.r-c.r)*a,
		c.g + (src.g-c.g)*a,
		c.b + (src.b-c.b)*a,
	}
}

func (c rgb) color() tcell.Color {
	to := func(v float64) int32 {
		return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return tcell.NewRGBColor(to(c.r), to(c.g), to(c.b))
}

func fromRGBA(c color.RGBA) rgb {
	return rgb{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// CellWriter is the part of tcell.Screen the canvas paints to.
type CellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Canvas is a render.Surface backed by a grid of terminal cells.
type Canvas struct {
	out        CellWriter
	cols, rows int
	pix        []rgb // cols × rows*2, row major

	mu       sync.Mutex
	resized  bool
	nextCols int
	nextRows int
}

// NewCanvas returns a black canvas of cols×rows cells writing to out.
func NewCanvas(out CellWriter, cols, rows int) *Canvas {
	c := &Canvas{out: out}
	c.resize(cols, rows)
	return c
}

// RequestResize schedules a new grid size. It is safe to call from any
// goroutine and takes effect at the start of the next frame.
func (c *Canvas) RequestResize(cols, rows int) {
	c.mu.Lock()
	c.resized = true
	c.nextCols, c.nextRows = cols, rows
	c.mu.Unlock()
}

func (c *Canvas) resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.pix = make([]rgb, c.cols*c.rows*2)
}

// Size applies any pending resize and reports the canvas size in px.
func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	if c.resized {
		c.resized = false
		c.resize(c.nextCols, c.nextRows)
	}
	c.mu.Unlock()
	return c.cols * PixelSize, c.rows * 2 * PixelSize
}

// Fade darkens every sub-pixel toward black.
func (c *Canvas) Fade(alpha float64) {
	k := 1 - alpha
	for i := range c.pix {
		c.pix[i] = c.pix[i].scale(k)
	}
}

// Body darkens the sub-pixels covered by b.
func (c *Canvas) Body(cx, cy float64, b render.Body) {
	c.each(cx, cy, b.Extent(), func(i int, d float64) {
		if a := b.Alpha(d); a > 0 {
			c.pix[i] = c.pix[i].scale(1 - a)
		}
	})
}

// Disk lights the sub-pixels a disk touches and blends a fading halo out to
// glow px beyond its edge. Disks smaller than a sub-pixel still light the
// sub-pixel they sit in.
func (c *Canvas) Disk(x, y, r float64, col color.RGBA, glow float64) {
	src := fromRGBA(col)
	core := r + PixelSize/2
	c.each(x, y, core+glow, func(i int, d float64) {
		switch {
		case d <= core:
			c.pix[i] = src
		case glow > 0:
			t := 1 - (d-core)/glow
			c.pix[i] = c.pix[i].over(src, 0.6*t*t)
		}
	})
}

// each calls fn for every sub-pixel whose center lies within reach of
// (x, y), with its index and distance.
func (c *Canvas) each(x, y, reach float64, fn func(i int, d float64)) {
	height := c.rows * 2
	x0 := max(int(math.Floor((x-reach)/PixelSize)), 0)
	x1 := min(int(math.Ceil((x+reach)/PixelSize)), c.cols-1)
	y0 := max(int(math.Floor((y-reach)/PixelSize)), 0)
	y1 := min(int(math.Ceil((y+reach)/PixelSize)), height-1)

	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			d := math.Hypot((float64(px)+0.5)*PixelSize-x, (float64(py)+0.5)*PixelSize-y)
			if d < reach {
				fn(py*c.cols+px, d)
			}
		}
	}
}

// Present writes the grid to the terminal.
func (c *Canvas) Present() {
	for row := 0; row < c.rows; row++ {
		top := c.pix[2*row*c.cols:]
		bottom := c.pix[(2*row+1)*c.cols:]
		for col := 0; col < c.cols; col++ {
			style := tcell.StyleDefault.
				Foreground(top[col].color()).
				Background(bottom[col].color())
			c.out.SetContent(col, row, halfBlock, nil, style)
		}
	}
	c.out.Show()
}
