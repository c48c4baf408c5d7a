// Package render drives the black hole animation: one Frame per tick fades
// the previous image, paints the central body and moves and paints every
// particle.
package render

import (
	"image/color"

	"github.com/olivierh59500/blackhole-go/internal/config"
)

// GlowBlur is the glow radius around every particle, in px.
const GlowBlur = 15.0

// Surface is a drawing target that keeps its pixels between frames.
type Surface interface {
	// Size reports the drawable area in px. A zero size means no surface.
	Size() (w, h int)
	// Fade composites black at the given alpha over the whole surface.
	Fade(alpha float64)
	// Body paints the central dark body at (cx, cy).
	Body(cx, cy float64, b Body)
	// Disk paints a filled disk with a soft halo of radius glow in the same
	// color. The halo applies to this disk only.
	Disk(x, y, r float64, c color.RGBA, glow float64)
}

// Presenter is implemented by surfaces that need an explicit flush once a
// frame is complete.
type Presenter interface {
	Present()
}

// Body describes the central body's shape.
type Body struct {
	Radius   float64
	Gradient bool
}

// BodyFor returns the body matching the configured variant: a soft radial
// gradient for the settings variant, a flat disk for the classic one.
func BodyFor(cfg config.Config) Body {
	return Body{Radius: cfg.BlackHoleRadius, Gradient: !cfg.Classic()}
}

// Extent is the outermost painted radius.
func (b Body) Extent() float64 {
	if b.Gradient {
		return b.Radius * 1.5
	}
	return b.Radius
}

// Alpha returns the opacity of the black body at distance d from its center.
// The gradient runs from opaque at 0.8R, through 0.8 at its midpoint, to
// transparent at 1.5R.
func (b Body) Alpha(d float64) float64 {
	if !b.Gradient {
		if d <= b.Radius {
			return 1
		}
		return 0
	}

	inner, outer := b.Radius*0.8, b.Radius*1.5
	switch {
	case d <= inner:
		return 1
	case d >= outer:
		return 0
	}
	t := (d - inner) / (outer - inner)
	if t < 0.5 {
		return 1 - 0.2*(t/0.5)
	}
	return 0.8 * (1 - (t-0.5)/0.5)
}
