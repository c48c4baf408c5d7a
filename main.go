package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/blackhole-go/internal/config"
	"github.com/olivierh59500/blackhole-go/internal/render"
	"github.com/olivierh59500/blackhole-go/internal/sound"
	"github.com/olivierh59500/blackhole-go/internal/term"
)

func main() {
	configPath := flag.String("config", "", "TOML settings file")
	useTerm := flag.Bool("term", false, "render in the terminal instead of a window")
	withSound := flag.Bool("sound", false, "chime when particles fall in")
	classic := flag.Bool("classic", false, "random warm hues and a flat black hole")
	stars := flag.Int("stars", -1, "backdrop star count, -1 keeps the configured value")
	seed := flag.Int64("seed", 0, "random seed, 0 for time based")
	flag.Parse()

	conf, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *withSound {
		conf.Sound = true
	}
	if *classic {
		conf.Variant = config.VariantClassic
	}
	if *stars >= 0 {
		conf.Stars = *stars
	}
	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	store := config.NewStore(conf)
	loop := render.NewLoop(store, rand.New(rand.NewSource(*seed)))

	if conf.Sound {
		sp, err := sound.NewSpeaker()
		if err != nil {
			// Non-fatal, the animation runs silent
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sp.Close()
			loop.OnAbsorb = sound.NewChime(sp).Absorbed
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *useTerm {
		err = runTerminal(ctx, loop, store)
	} else {
		err = runWindow(ctx, loop, store)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runWindow(ctx context.Context, loop *render.Loop, store *config.Store) error {
	sim := NewSimulation(ctx, store, loop, WindowWidth, WindowHeight)

	// Set up Ebitengine game
	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowTitle("Black Hole")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	// Run the game loop
	if err := ebiten.RunGame(sim); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(ctx context.Context, loop *render.Loop, store *config.Store) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	return term.Run(ctx, screen, loop, store)
}
