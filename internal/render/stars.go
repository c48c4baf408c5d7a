package render

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Star drift through noise space per tick.
const twinkleSpeed = 0.03

type star struct {
	x, y  float64
	phase float64
}

// Starfield is a static backdrop whose brightness twinkles with perlin noise.
type Starfield struct {
	stars []star
	noise *perlin.Perlin
}

// NewStarfield scatters n stars over a w×h surface.
func NewStarfield(n, w, h int, rng *rand.Rand) *Starfield {
	sf := &Starfield{
		stars: make([]star, n),
		noise: perlin.NewPerlin(2, 2, 3, rng.Int63()),
	}
	for i := range sf.stars {
		sf.stars[i] = star{
			x:     rng.Float64() * float64(w),
			y:     rng.Float64() * float64(h),
			phase: rng.Float64() * 100,
		}
	}
	return sf
}

// Len returns the star count.
func (sf *Starfield) Len() int {
	return len(sf.stars)
}

// Brightness of star i at tick t, in [0.15, 1].
func (sf *Starfield) Brightness(i, t int) float64 {
	s := sf.stars[i]
	n := sf.noise.Noise2D(s.phase+0.5, float64(t)*twinkleSpeed+0.5)
	return math.Max(0.15, math.Min(1, 0.55+n))
}

// Draw paints every star onto s.
func (sf *Starfield) Draw(s Surface, t int) {
	for i, st := range sf.stars {
		v := uint8(200 * sf.Brightness(i, t))
		s.Disk(st.x, st.y, 0.8, color.RGBA{R: v, G: v, B: v, A: 255}, 0)
	}
}
