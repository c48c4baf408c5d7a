package config

import "math"

// Control identifies one adjustable setting.
type Control int

const (
	ParticleCount Control = iota
	BlackHoleRadius
	GravityStrength
	DiskRadius
	ParticleSize
	TrailOpacity
	numControls
)

// MaxStars bounds the backdrop star count.
const MaxStars = 500

// Range is the closed interval a control may take, with its step.
type Range struct {
	Min, Max, Step float64
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

var ranges = [numControls]Range{
	ParticleCount:   {Min: 10, Max: 1000, Step: 10},
	BlackHoleRadius: {Min: 10, Max: 100, Step: 1},
	GravityStrength: {Min: 0.001, Max: 0.02, Step: 0.001},
	DiskRadius:      {Min: 100, Max: 500, Step: 1},
	ParticleSize:    {Min: 1, Max: 5, Step: 0.5},
	TrailOpacity:    {Min: 0.01, Max: 0.2, Step: 0.01},
}

var controlNames = [numControls]string{
	ParticleCount:   "Particle Count",
	BlackHoleRadius: "Black Hole Radius",
	GravityStrength: "Gravity Strength",
	DiskRadius:      "Disk Radius",
	ParticleSize:    "Particle Size",
	TrailOpacity:    "Trail Opacity",
}

// Controls lists every adjustable control in display order.
func Controls() []Control {
	out := make([]Control, 0, numControls)
	for c := Control(0); c < numControls; c++ {
		out = append(out, c)
	}
	return out
}

func (c Control) String() string {
	if c < 0 || c >= numControls {
		return "Unknown"
	}
	return controlNames[c]
}

// RangeOf returns the allowed range of c.
func RangeOf(c Control) Range {
	return ranges[c]
}

// Value returns the current value of c in conf.
func (conf Config) Value(c Control) float64 {
	switch c {
	case ParticleCount:
		return float64(conf.ParticleCount)
	case BlackHoleRadius:
		return conf.BlackHoleRadius
	case GravityStrength:
		return conf.GravityStrength
	case DiskRadius:
		return conf.DiskRadius
	case ParticleSize:
		return conf.ParticleSize
	case TrailOpacity:
		return conf.TrailOpacity
	}
	return 0
}

// Nudge moves c by dir steps, snapped to the step grid and clamped to its range.
func (conf Config) Nudge(c Control, dir int) Config {
	if c < 0 || c >= numControls {
		return conf
	}
	r := ranges[c]
	// snap to the step grid so repeated float steps don't drift
	steps := math.Round((conf.Value(c)-r.Min)/r.Step) + float64(dir)
	v := r.clamp(math.Round((r.Min+steps*r.Step)*1e9) / 1e9)

	switch c {
	case ParticleCount:
		conf.ParticleCount = int(math.Round(v))
	case BlackHoleRadius:
		conf.BlackHoleRadius = v
	case GravityStrength:
		conf.GravityStrength = v
	case DiskRadius:
		conf.DiskRadius = v
	case ParticleSize:
		conf.ParticleSize = v
	case TrailOpacity:
		conf.TrailOpacity = v
	}
	return conf
}
