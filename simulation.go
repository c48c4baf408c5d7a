package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/olivierh59500/blackhole-go/internal/config"
	"github.com/olivierh59500/blackhole-go/internal/render"
)

// Window constants
const (
	WindowWidth  = 1024
	WindowHeight = 768
	SettingsFile = "blackhole.toml"
)

var panelColor = color.RGBA{R: 10, G: 10, B: 20, A: 170}

// Simulation is the ebiten front end: it owns the window canvas, turns key
// presses into settings changes and runs one render frame per tick.
type Simulation struct {
	Width, Height int // Window size from Layout
	Paused        bool
	ShowSettings  bool

	ctx    context.Context
	store  *config.Store
	loop   *render.Loop
	canvas Canvas
	chars  []rune
	quit   bool

	dialogOpen atomic.Bool
	statusMu   sync.Mutex
	status     string
}

// NewSimulation creates the window front end for loop.
func NewSimulation(ctx context.Context, store *config.Store, loop *render.Loop, width, height int) *Simulation {
	return &Simulation{
		Width:        width,
		Height:       height,
		ShowSettings: true,
		ctx:          ctx,
		store:        store,
		loop:         loop,
	}
}

// Update is called each tick by Ebitengine
func (s *Simulation) Update() error {
	if s.quit || s.ctx.Err() != nil {
		return ebiten.Termination
	}

	// Handle input
	s.handleInput()

	s.canvas.Resize(s.Width, s.Height)
	if s.Paused {
		return nil
	}
	s.loop.Frame(&s.canvas)
	return nil
}

// Draw is called each frame by Ebitengine
func (s *Simulation) Draw(screen *ebiten.Image) {
	if img := s.canvas.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
	if s.ShowSettings {
		vector.DrawFilledRect(screen, 4, 4, 620, 250, panelColor, false)
		ebitenutil.DebugPrintAt(screen, s.settingsText(), 12, 12)
	}
}

// Layout tracks the window size; a resize reaches the loop as a new canvas
// size on the next tick.
func (s *Simulation) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.Width, s.Height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// handleInput processes keyboard input
func (s *Simulation) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Paused = !s.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.store.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.ShowSettings = !s.ShowSettings
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.ShowSettings = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		s.quit = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.openDialog(s.pickColor)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.openDialog(s.saveSettings)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		s.openDialog(s.loadSettings)
	}

	arrows := []struct {
		key ebiten.Key
		ctl config.Control
		dir int
	}{
		{ebiten.KeyArrowUp, config.ParticleCount, 1},
		{ebiten.KeyArrowDown, config.ParticleCount, -1},
		{ebiten.KeyArrowRight, config.GravityStrength, 1},
		{ebiten.KeyArrowLeft, config.GravityStrength, -1},
	}
	for _, a := range arrows {
		if repeating(a.key) {
			s.store.Nudge(a.ctl, a.dir)
		}
	}

	s.chars = ebiten.AppendInputChars(s.chars[:0])
	for _, r := range s.chars {
		if b, ok := config.BindingFor(r); ok {
			s.store.Nudge(b.Control, b.Dir)
		}
	}
}

// repeating reports a fresh press and then every 4th tick after a short hold.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 20 && d%4 == 0)
}

// openDialog runs fn off the game loop. Only one dialog is open at a time;
// results reach the loop through the store.
func (s *Simulation) openDialog(fn func() error) {
	if !s.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer s.dialogOpen.Store(false)
		err := fn()
		if errors.Is(err, zenity.ErrCanceled) {
			return
		}
		if err != nil {
			log.Printf("dialog: %v", err)
			s.setStatus("Error: " + err.Error())
		}
	}()
}

func (s *Simulation) pickColor() error {
	current := s.store.Current()
	col, err := zenity.SelectColor(
		zenity.Title("Particle Color"),
		zenity.Color(current.Color()),
	)
	if err != nil {
		return err
	}
	s.store.Update(func(c *config.Config) { c.SetColor(col) })
	s.setStatus("Color " + s.store.Current().ParticleColor)
	return nil
}

var tomlFilter = zenity.FileFilters{{
	Name:     "Settings",
	Patterns: []string{"*.toml"},
}}

func (s *Simulation) saveSettings() error {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Settings"),
		zenity.Filename(SettingsFile),
		zenity.ConfirmOverwrite(),
		tomlFilter,
	)
	if err != nil {
		return err
	}
	if err := config.Save(path, s.store.Current()); err != nil {
		return err
	}
	s.setStatus("Saved " + path)
	return nil
}

func (s *Simulation) loadSettings() error {
	path, err := zenity.SelectFile(
		zenity.Title("Load Settings"),
		tomlFilter,
	)
	if err != nil {
		return err
	}
	conf, err := config.Load(path)
	if err != nil {
		return err
	}
	conf.Sound = s.store.Current().Sound
	s.store.Set(conf)
	s.store.Reinit()
	s.setStatus("Loaded " + path)
	return nil
}

func (s *Simulation) setStatus(msg string) {
	s.statusMu.Lock()
	s.status = msg
	s.statusMu.Unlock()
}

// settingsText renders the settings panel as debug text.
func (s *Simulation) settingsText() string {
	conf := s.store.Current()
	var b strings.Builder
	b.WriteString("Black Hole Settings  (Tab hides)\n\n")
	for _, c := range config.Controls() {
		fmt.Fprintf(&b, "%-18s %s\n", c.String()+":", formatValue(c, conf.Value(c)))
	}
	fmt.Fprintf(&b, "%-18s %s  (C to pick)\n", "Particle Color:", conf.ParticleColor)
	b.WriteString("\nSpace pause  R reset  S save  L load  Q quit\n")
	b.WriteString(config.KeyHelp)
	if s.Paused {
		b.WriteString("\n\nPaused")
	}
	s.statusMu.Lock()
	if s.status != "" {
		b.WriteString("\n\n" + s.status)
	}
	s.statusMu.Unlock()
	fmt.Fprintf(&b, "\n\nTPS %.0f", ebiten.ActualTPS())
	return b.String()
}

func formatValue(c config.Control, v float64) string {
	switch c {
	case config.ParticleCount:
		return fmt.Sprintf("%.0f", v)
	case config.GravityStrength:
		return fmt.Sprintf("%.3f", v)
	case config.TrailOpacity:
		return fmt.Sprintf("%.2f", v)
	case config.ParticleSize:
		return fmt.Sprintf("%.1fpx", v)
	}
	return fmt.Sprintf("%.0fpx", v)
}
