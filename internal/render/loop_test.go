package render

import (
	"context"
	"errors"
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/olivierh59500/blackhole-go/internal/config"
)

// recorder is a Surface that logs every paint call.
type recorder struct {
	w, h     int
	ops      []string
	fades    []float64
	bodies   []Body
	disks    []disk
	presents int
}

type disk struct {
	x, y, r, glow float64
	c             color.RGBA
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) Fade(alpha float64) {
	r.ops = append(r.ops, "fade")
	r.fades = append(r.fades, alpha)
}

func (r *recorder) Body(cx, cy float64, b Body) {
	r.ops = append(r.ops, "body")
	r.bodies = append(r.bodies, b)
}

func (r *recorder) Disk(x, y, rad float64, c color.RGBA, glow float64) {
	r.ops = append(r.ops, "disk")
	r.disks = append(r.disks, disk{x: x, y: y, r: rad, glow: glow, c: c})
}

func (r *recorder) Present() { r.presents++ }

func newLoop(cfg config.Config) (*Loop, *config.Store) {
	store := config.NewStore(cfg)
	return NewLoop(store, rand.New(rand.NewSource(7))), store
}

func TestFramePaintOrder(t *testing.T) {
	l, _ := newLoop(config.Default())
	s := &recorder{w: 800, h: 600}

	if !l.Frame(s) {
		t.Fatal("Expected frame to paint")
	}
	if len(s.ops) < 2 || s.ops[0] != "fade" || s.ops[1] != "body" {
		t.Fatalf("Expected fade then body first, got %v", s.ops[:min(len(s.ops), 3)])
	}
	if s.fades[0] != 0.1 {
		t.Errorf("Expected fade alpha 0.1, got %v", s.fades[0])
	}
	if s.bodies[0] != (Body{Radius: 50, Gradient: true}) {
		t.Errorf("Expected gradient body of radius 50, got %+v", s.bodies[0])
	}
	if len(s.disks) != 100 {
		t.Errorf("Expected 100 particle disks on first frame, got %d", len(s.disks))
	}
	for _, d := range s.disks {
		if d.glow != GlowBlur {
			t.Errorf("Expected glow %v, got %v", GlowBlur, d.glow)
			break
		}
	}
	if s.presents != 1 {
		t.Errorf("Expected one present, got %d", s.presents)
	}
}

func TestFrameDrawsPreUpdatePositions(t *testing.T) {
	l, _ := newLoop(config.Default())
	s := &recorder{w: 800, h: 600}
	l.Frame(s)

	before := append(l.Field().Particles[:0:0], l.Field().Particles...)
	s.disks = nil
	l.Frame(s)

	if len(s.disks) != len(before) {
		t.Skipf("particle absorbed on second frame; %d draws", len(s.disks))
	}
	for i, d := range s.disks {
		if d.x != before[i].X || d.y != before[i].Y {
			t.Errorf("Disk %d at (%v, %v), expected (%v, %v)", i, d.x, d.y, before[i].X, before[i].Y)
		}
	}
}

func TestFrameSkipsWithoutSurface(t *testing.T) {
	l, _ := newLoop(config.Default())

	if l.Frame(nil) {
		t.Error("Expected nil surface to be skipped")
	}
	if l.Frame(&recorder{}) {
		t.Error("Expected zero-size surface to be skipped")
	}
	if l.Field() != nil {
		t.Error("Expected no field before a real surface exists")
	}
	if l.Ticks() != 0 {
		t.Errorf("Expected 0 ticks, got %d", l.Ticks())
	}
}

func TestFrameResizeReinitializes(t *testing.T) {
	l, _ := newLoop(config.Default())
	s := &recorder{w: 800, h: 600}
	l.Frame(s)
	old := l.Field()

	s.w, s.h = 1024, 768
	l.Frame(s)

	if w, h := l.Size(); w != 1024 || h != 768 {
		t.Errorf("Expected size 1024x768, got %dx%d", w, h)
	}
	if l.Field() == old {
		t.Fatal("Expected a fresh field after resize")
	}

	// the resize frame drew the freshly spawned field, all on the new ring
	for i, d := range s.disks[len(s.disks)-100:] {
		r := math.Hypot(d.x-512, d.y-384)
		if r < 200-1e-9 || r >= 300+1e-9 {
			t.Errorf("Disk %d at distance %v from (512, 384), outside the spawn ring", i, r)
		}
	}
}

func TestFrameCountChangeReinitializes(t *testing.T) {
	l, store := newLoop(config.Default())
	s := &recorder{w: 1000, h: 1000}
	l.Frame(s)

	store.Update(func(c *config.Config) { c.ParticleCount = 10 })
	s.disks = nil
	l.Frame(s)

	if l.Field().Len() != 10 {
		t.Fatalf("Expected 10 particles, got %d", l.Field().Len())
	}
	if len(s.disks) != 10 {
		t.Errorf("Expected 10 disks, got %d", len(s.disks))
	}
	for i, d := range s.disks {
		r := math.Hypot(d.x-500, d.y-500)
		if r < 200-1e-9 || r >= 300+1e-9 {
			t.Errorf("Disk %d at distance %v outside the spawn ring", i, r)
		}
	}
}

func TestFrameReadsLatestSnapshot(t *testing.T) {
	l, store := newLoop(config.Default())
	s := &recorder{w: 640, h: 480}
	l.Frame(s)
	field := l.Field()

	store.Update(func(c *config.Config) {
		c.TrailOpacity = 0.05
		c.BlackHoleRadius = 80
	})
	l.Frame(s)

	if l.Field() != field {
		t.Error("Expected field to survive a non-count change")
	}
	if got := s.fades[len(s.fades)-1]; got != 0.05 {
		t.Errorf("Expected fade 0.05, got %v", got)
	}
	if got := s.bodies[len(s.bodies)-1].Radius; got != 80 {
		t.Errorf("Expected body radius 80, got %v", got)
	}
}

func TestFrameClassicVariant(t *testing.T) {
	cfg := config.Default()
	cfg.Variant = config.VariantClassic
	l, _ := newLoop(cfg)
	s := &recorder{w: 800, h: 600}
	l.Frame(s)

	if s.bodies[0].Gradient {
		t.Error("Expected flat body for classic variant")
	}
}

func TestFrameStars(t *testing.T) {
	cfg := config.Default()
	cfg.Stars = 25
	l, store := newLoop(cfg)
	s := &recorder{w: 800, h: 600}
	l.Frame(s)

	// fade, 25 stars, body, particles
	if s.ops[0] != "fade" || s.ops[26] != "body" {
		t.Errorf("Expected stars between fade and body, got %v", s.ops[:27])
	}

	store.Update(func(c *config.Config) { c.Stars = 0 })
	s.ops = nil
	l.Frame(s)
	if s.ops[1] != "body" {
		t.Errorf("Expected no stars once disabled, got %v", s.ops[:2])
	}
}

func TestOnAbsorb(t *testing.T) {
	cfg := config.Default()
	cfg.GravityStrength = 0.02
	l, _ := newLoop(cfg)
	total := 0
	l.OnAbsorb = func(n int) {
		if n <= 0 {
			t.Errorf("Expected positive absorb count, got %d", n)
		}
		total += n
	}

	s := &recorder{w: 800, h: 800}
	for i := 0; i < 2000; i++ {
		l.Frame(s)
	}
	if total == 0 {
		t.Error("Expected absorption callbacks over 2000 frames")
	}
	if l.Field().Len() != 100 {
		t.Errorf("Expected field length 100, got %d", l.Field().Len())
	}
}

func TestRunTicksOneFramePerTick(t *testing.T) {
	l, _ := newLoop(config.Default())
	s := &recorder{w: 320, h: 240}
	ticks := make(chan time.Time)

	done := make(chan error, 1)
	go func() { done <- l.RunTicks(context.Background(), s, ticks) }()

	for i := 0; i < 3; i++ {
		ticks <- time.Now()
	}
	close(ticks)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil error when ticks end, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected loop to stop when ticks end")
	}
	if l.Ticks() != 3 {
		t.Errorf("Expected 3 frames, got %d", l.Ticks())
	}
}

func TestRunTicksCanceledBeforeFirstFrame(t *testing.T) {
	l, _ := newLoop(config.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ticks := make(chan time.Time, 1)
	ticks <- time.Now()
	err := l.RunTicks(ctx, &recorder{w: 320, h: 240}, ticks)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if l.Ticks() != 0 {
		t.Errorf("Expected pending tick to be revoked, got %d frames", l.Ticks())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	l, _ := newLoop(config.Default())
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := l.Run(ctx, &recorder{w: 320, h: 240})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if l.Ticks() == 0 {
		t.Error("Expected at least one frame before the deadline")
	}
}

func TestBodyAlpha(t *testing.T) {
	g := Body{Radius: 50, Gradient: true}
	tests := []struct {
		d, want float64
	}{
		{0, 1},
		{40, 1},
		{57.5, 0.8},
		{75, 0},
		{100, 0},
	}
	for _, tt := range tests {
		if got := g.Alpha(tt.d); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Alpha(%v) = %v, expected %v", tt.d, got, tt.want)
		}
	}
	if g.Extent() != 75 {
		t.Errorf("Expected gradient extent 75, got %v", g.Extent())
	}

	flat := Body{Radius: 50}
	if flat.Alpha(50) != 1 || flat.Alpha(50.1) != 0 {
		t.Error("Expected flat body to be opaque up to its radius only")
	}
	if flat.Extent() != 50 {
		t.Errorf("Expected flat extent 50, got %v", flat.Extent())
	}
}

func TestStarfieldBrightness(t *testing.T) {
	sf := NewStarfield(50, 400, 300, rand.New(rand.NewSource(1)))
	for i := 0; i < sf.Len(); i++ {
		for tick := 0; tick < 100; tick += 7 {
			b := sf.Brightness(i, tick)
			if b < 0.15 || b > 1 {
				t.Fatalf("Star %d tick %d brightness %v outside [0.15, 1]", i, tick, b)
			}
		}
	}
}
