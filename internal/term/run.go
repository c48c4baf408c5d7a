package term

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/blackhole-go/internal/config"
	"github.com/olivierh59500/blackhole-go/internal/render"
)

var (
	_ render.Surface   = (*Canvas)(nil)
	_ render.Presenter = (*Canvas)(nil)
)

// Run animates loop on screen until ctx is canceled or the user quits.
// The caller owns screen and must Fini it after Run returns.
func Run(ctx context.Context, screen tcell.Screen, loop *render.Loop, store *config.Store) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cols, rows := screen.Size()
	canvas := NewCanvas(screen, cols, rows)

	// PollEvent returns nil once the screen is finalized.
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if !handleEvent(ev, store, canvas) {
				cancel()
				return
			}
		}
	}()

	err := loop.Run(ctx, canvas)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// handleEvent applies one terminal event. It returns false when the user
// asked to quit.
func handleEvent(ev tcell.Event, store *config.Store, canvas *Canvas) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			store.Nudge(config.ParticleCount, 1)
		case tcell.KeyDown:
			store.Nudge(config.ParticleCount, -1)
		case tcell.KeyRight:
			store.Nudge(config.GravityStrength, 1)
		case tcell.KeyLeft:
			store.Nudge(config.GravityStrength, -1)
		case tcell.KeyRune:
			switch r := ev.Rune(); r {
			case 'q', 'Q':
				return false
			case 'r', 'R':
				store.Reset()
			default:
				if b, ok := config.BindingFor(r); ok {
					store.Nudge(b.Control, b.Dir)
				}
			}
		}

	case *tcell.EventResize:
		canvas.RequestResize(ev.Size())
	}
	return true
}
