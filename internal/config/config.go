package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

// Rendering variants
const (
	VariantSettings = "settings" // configurable color, gradient body
	VariantClassic  = "classic"  // random warm hues, flat body
)

// Config is one snapshot of the simulation parameters. It is passed by value
// so the frame loop never sees a half-applied edit.
type Config struct {
	ParticleCount   int     `toml:"particle_count"`
	BlackHoleRadius float64 `toml:"black_hole_radius"`
	GravityStrength float64 `toml:"gravity_strength"`
	DiskRadius      float64 `toml:"disk_radius"`
	ParticleSize    float64 `toml:"particle_size"`
	ParticleColor   string  `toml:"particle_color"`
	TrailOpacity    float64 `toml:"trail_opacity"`

	Variant string `toml:"variant"`
	Stars   int    `toml:"stars"` // backdrop stars, 0 disables
	Sound   bool   `toml:"sound"`
}

// Default returns the default parameters.
func Default() Config {
	return Config{
		ParticleCount:   100,
		BlackHoleRadius: 50,
		GravityStrength: 0.007,
		DiskRadius:      200,
		ParticleSize:    2,
		ParticleColor:   "#FFD700",
		TrailOpacity:    0.1,
		Variant:         VariantSettings,
	}
}

// Classic reports whether the fixed-constant look is selected.
func (c Config) Classic() bool {
	return c.Variant == VariantClassic
}

// Color parses ParticleColor. Unparseable values fall back to the default gold.
func (c Config) Color() color.RGBA {
	col, err := colorful.Hex(c.ParticleColor)
	if err != nil {
		col, _ = colorful.Hex(Default().ParticleColor)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// SetColor stores col as a #RRGGBB string.
func (c *Config) SetColor(col color.Color) {
	cf, ok := colorful.MakeColor(col)
	if !ok {
		return
	}
	c.ParticleColor = cf.Hex()
}

// Validate checks every field against the ranges the controls allow.
func (c Config) Validate() error {
	var errs []error
	check := func(name string, v float64, r Range) {
		if !r.Contains(v) {
			errs = append(errs, fmt.Errorf("%s %v outside [%v, %v]", name, v, r.Min, r.Max))
		}
	}
	check("particle_count", float64(c.ParticleCount), ranges[ParticleCount])
	check("black_hole_radius", c.BlackHoleRadius, ranges[BlackHoleRadius])
	check("gravity_strength", c.GravityStrength, ranges[GravityStrength])
	check("disk_radius", c.DiskRadius, ranges[DiskRadius])
	check("particle_size", c.ParticleSize, ranges[ParticleSize])
	check("trail_opacity", c.TrailOpacity, ranges[TrailOpacity])
	if c.Stars < 0 || c.Stars > MaxStars {
		errs = append(errs, fmt.Errorf("stars %d outside [0, %d]", c.Stars, MaxStars))
	}
	if _, err := colorful.Hex(c.ParticleColor); err != nil {
		errs = append(errs, fmt.Errorf("particle_color %q: %w", c.ParticleColor, err))
	}
	if c.Variant != VariantSettings && c.Variant != VariantClassic {
		errs = append(errs, fmt.Errorf("variant %q: want %q or %q", c.Variant, VariantSettings, VariantClassic))
	}
	return errors.Join(errs...)
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (Config, error) {
	conf := Default()
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Save writes conf to path as TOML.
func Save(path string, conf Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		f.Close()
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return f.Close()
}
