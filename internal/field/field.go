// Package field holds the particle state of the black hole simulation and its
// per-frame update rule.
package field

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivierh59500/blackhole-go/internal/config"
)

// SpawnSpread is the width of the ring particles are first placed in.
const SpawnSpread = 100.0

// Particle is one simulated point. Particles are replaced, never edited.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity, px per frame
	Radius float64
	Color  color.RGBA
}

// Draw is a paint request for one particle.
type Draw struct {
	X, Y   float64
	Radius float64
	Color  color.RGBA
}

// Field is the set of particles orbiting one center.
type Field struct {
	Particles []Particle
	rng       *rand.Rand
}

// New spawns cfg.ParticleCount particles on the ring [DiskRadius,
// DiskRadius+SpawnSpread) around (cx, cy).
func New(cfg config.Config, cx, cy float64, rng *rand.Rand) *Field {
	n := max(cfg.ParticleCount, 0)
	f := &Field{
		Particles: make([]Particle, n),
		rng:       rng,
	}

	base := cfg.Color()
	for i := range f.Particles {
		angle := f.rng.Float64() * math.Pi * 2
		distance := cfg.DiskRadius + f.rng.Float64()*SpawnSpread
		vx, vy := f.velocity()
		p := Particle{
			X:      cx + math.Cos(angle)*distance,
			Y:      cy + math.Sin(angle)*distance,
			VX:     vx,
			VY:     vy,
			Radius: f.rng.Float64()*cfg.ParticleSize + 1,
			Color:  base,
		}
		if cfg.Classic() {
			p.Color = f.warmHue()
		}
		f.Particles[i] = p
	}
	return f
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.Particles)
}

// Advance moves every particle one tick toward (cx, cy). Paint requests for
// the surviving particles, at their positions before the move, are appended
// to dst[:0]. absorbed counts particles that fell in and were respawned.
func (f *Field) Advance(cfg config.Config, cx, cy float64, dst []Draw) (draws []Draw, absorbed int) {
	draws = dst[:0]
	for i, p := range f.Particles {
		dx := cx - p.X
		dy := cy - p.Y
		distance := math.Sqrt(dx*dx + dy*dy)

		// Absorption must be checked first: it also guards distance == 0.
		if distance < cfg.BlackHoleRadius {
			f.Particles[i] = f.respawn(p, cfg, cx, cy)
			absorbed++
			continue
		}

		force := cfg.GravityStrength / (distance * 0.5)
		vx := p.VX + dx*force
		vy := p.VY + dy*force

		draws = append(draws, Draw{X: p.X, Y: p.Y, Radius: p.Radius, Color: p.Color})

		f.Particles[i] = Particle{
			X:      p.X + vx,
			Y:      p.Y + vy,
			VX:     vx,
			VY:     vy,
			Radius: p.Radius,
			Color:  p.Color,
		}
	}
	return draws, absorbed
}

// respawn puts p back on the disk edge, exactly DiskRadius from the center.
func (f *Field) respawn(p Particle, cfg config.Config, cx, cy float64) Particle {
	angle := f.rng.Float64() * math.Pi * 2
	vx, vy := f.velocity()
	return Particle{
		X:      cx + math.Cos(angle)*cfg.DiskRadius,
		Y:      cy + math.Sin(angle)*cfg.DiskRadius,
		VX:     vx,
		VY:     vy,
		Radius: p.Radius,
		Color:  p.Color,
	}
}

func (f *Field) velocity() (float64, float64) {
	return (f.rng.Float64() - 0.5) * 2, (f.rng.Float64() - 0.5) * 2
}

// warmHue picks a hue in [20, 80) at full saturation and 60% lightness.
func (f *Field) warmHue() color.RGBA {
	c := colorful.Hsl(f.rng.Float64()*60+20, 1, 0.6)
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
