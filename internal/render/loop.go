package render

import (
	"context"
	"math/rand"
	"time"

	"github.com/olivierh59500/blackhole-go/internal/config"
	"github.com/olivierh59500/blackhole-go/internal/field"
)

// FrameInterval is the tick period of Run, ~60 FPS.
const FrameInterval = 16 * time.Millisecond

// Loop owns the particle field and paints it onto a Surface once per tick.
// Frame must only be called from one goroutine; configuration reaches the loop
// through the Store.
type Loop struct {
	store *config.Store
	rng   *rand.Rand

	field  *field.Field
	draws  []field.Draw
	stars  *Starfield
	width  int
	height int
	tick   int

	// OnAbsorb, if set, is called after a frame in which n > 0 particles
	// fell into the body.
	OnAbsorb func(n int)
}

// NewLoop returns a loop reading its configuration from store.
func NewLoop(store *config.Store, rng *rand.Rand) *Loop {
	return &Loop{store: store, rng: rng}
}

// Field returns the current particle field, nil before the first frame.
func (l *Loop) Field() *field.Field {
	return l.field
}

// Size returns the surface size seen by the last frame.
func (l *Loop) Size() (int, int) {
	return l.width, l.height
}

// Ticks returns the number of frames painted.
func (l *Loop) Ticks() int {
	return l.tick
}

// Frame runs one tick. It reports false, without touching the field, when
// there is no usable surface.
func (l *Loop) Frame(s Surface) bool {
	if s == nil {
		return false
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return false
	}

	cfg, reinit := l.store.Snapshot()
	if reinit || l.field == nil || w != l.width || h != l.height {
		l.reset(cfg, w, h)
	}
	if cfg.Stars != l.starCount() {
		l.stars = l.newStars(cfg.Stars)
	}

	cx, cy := float64(w)/2, float64(h)/2

	s.Fade(cfg.TrailOpacity)
	if l.stars != nil {
		l.stars.Draw(s, l.tick)
	}
	s.Body(cx, cy, BodyFor(cfg))

	var absorbed int
	l.draws, absorbed = l.field.Advance(cfg, cx, cy, l.draws)
	for _, d := range l.draws {
		s.Disk(d.X, d.Y, d.Radius, d.Color, GlowBlur)
	}
	if p, ok := s.(Presenter); ok {
		p.Present()
	}

	if absorbed > 0 && l.OnAbsorb != nil {
		l.OnAbsorb(absorbed)
	}
	l.tick++
	return true
}

// reset rebuilds the field around the center of a w×h surface. Previous
// particle positions are discarded.
func (l *Loop) reset(cfg config.Config, w, h int) {
	l.width, l.height = w, h
	l.field = field.New(cfg, float64(w)/2, float64(h)/2, l.rng)
	l.stars = l.newStars(cfg.Stars)
}

func (l *Loop) newStars(n int) *Starfield {
	if n <= 0 {
		return nil
	}
	return NewStarfield(n, l.width, l.height, l.rng)
}

func (l *Loop) starCount() int {
	if l.stars == nil {
		return 0
	}
	return l.stars.Len()
}

// Run paints a frame on every tick of a FrameInterval ticker until ctx is
// canceled.
func (l *Loop) Run(ctx context.Context, s Surface) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	return l.RunTicks(ctx, s, ticker.C)
}

// RunTicks paints one frame per value received on ticks until ctx is
// canceled. A tick that arrives together with cancellation is dropped.
func (l *Loop) RunTicks(ctx context.Context, s Surface, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.Frame(s)
		}
	}
}
