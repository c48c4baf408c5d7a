package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/blackhole-go/internal/render"
)

// Glow sprite radius in px; scaled to each particle's halo.
const glowSpriteRadius = 32

// Canvas is an offscreen ebiten image that keeps its pixels between frames so
// the trail fade can build up.
type Canvas struct {
	img  *ebiten.Image
	glow *ebiten.Image

	body   *ebiten.Image
	bodyOf render.Body
}

var _ render.Surface = (*Canvas)(nil)

// Resize replaces the backing image when the window size changes. The new
// image starts black.
func (c *Canvas) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if c.img != nil {
		b := c.img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(w, h)
	c.img.Fill(color.Black)
}

// Image returns the backing image, nil before the first Resize.
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

// Size returns the canvas size in px, zero before the first Resize.
func (c *Canvas) Size() (int, int) {
	if c.img == nil {
		return 0, 0
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Fade composites translucent black over the whole canvas.
func (c *Canvas) Fade(alpha float64) {
	w, h := c.Size()
	a := uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))
	vector.DrawFilledRect(c.img, 0, 0, float32(w), float32(h), color.RGBA{A: a}, false)
}

// Body draws the central body. Its texture is rebuilt only when the body
// changes.
func (c *Canvas) Body(cx, cy float64, b render.Body) {
	if c.body == nil || c.bodyOf != b {
		if c.body != nil {
			c.body.Deallocate()
		}
		c.body = ebiten.NewImageFromImage(bodyImage(b))
		c.bodyOf = b
	}
	ext := math.Ceil(b.Extent())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(cx-ext, cy-ext)
	c.img.DrawImage(c.body, op)
}

// Disk draws a halo sprite tinted with col, then the solid disk on top.
func (c *Canvas) Disk(x, y, r float64, col color.RGBA, glow float64) {
	if glow > 0 {
		if c.glow == nil {
			c.glow = ebiten.NewImageFromImage(glowImage(glowSpriteRadius))
		}
		scale := (r + glow) / glowSpriteRadius
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-glowSpriteRadius, -glowSpriteRadius)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(col)
		op.Filter = ebiten.FilterLinear
		c.img.DrawImage(c.glow, op)
	}
	vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(r), col, true)
}

// bodyImage rasterizes b's alpha profile as premultiplied black.
func bodyImage(b render.Body) *image.RGBA {
	ext := int(math.Ceil(b.Extent()))
	img := image.NewRGBA(image.Rect(0, 0, 2*ext, 2*ext))
	for y := 0; y < 2*ext; y++ {
		for x := 0; x < 2*ext; x++ {
			d := math.Hypot(float64(x)+0.5-float64(ext), float64(y)+0.5-float64(ext))
			a := uint8(math.Round(b.Alpha(d) * 255))
			img.SetRGBA(x, y, color.RGBA{A: a})
		}
	}
	return img
}

// glowImage is a white halo of radius r fading quadratically to nothing,
// approximating a canvas shadow blur.
func glowImage(r int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2*r, 2*r))
	for y := 0; y < 2*r; y++ {
		for x := 0; x < 2*r; x++ {
			d := math.Hypot(float64(x)+0.5-float64(r), float64(y)+0.5-float64(r)) / float64(r)
			if d >= 1 {
				continue
			}
			v := uint8(math.Round(0.6 * (1 - d) * (1 - d) * 255))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: v})
		}
	}
	return img
}
