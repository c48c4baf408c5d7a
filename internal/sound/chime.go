// Package sound plays a short tone whenever particles fall into the black hole.
package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 60 * time.Millisecond
	// MinInterval is the shortest gap between two chimes.
	MinInterval = 120 * time.Millisecond
)

// Player plays a tone for n absorbed particles.
type Player interface {
	Play(n int)
}

// Chime rate-limits absorption events onto a Player.
type Chime struct {
	player Player
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewChime returns a Chime that forwards at most one event per MinInterval.
func NewChime(p Player) *Chime {
	return &Chime{player: p, now: time.Now}
}

// Absorbed reports n particles falling in. Events inside MinInterval of the
// previous chime are dropped.
func (c *Chime) Absorbed(n int) {
	if n <= 0 || c.player == nil {
		return
	}
	c.mu.Lock()
	now := c.now()
	if !c.last.IsZero() && now.Sub(c.last) < MinInterval {
		c.mu.Unlock()
		return
	}
	c.last = now
	c.mu.Unlock()

	c.player.Play(n)
}

// Speaker plays sine tones on the default audio device.
type Speaker struct{}

// NewSpeaker initializes the audio device.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Speaker{}, nil
}

// Play starts a tone whose pitch drops as more particles fall in at once.
func (s *Speaker) Play(n int) {
	sine, err := generators.SineTone(sampleRate, Pitch(n))
	if err != nil {
		return
	}
	quiet := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(toneLength), sine),
		Base:     2,
		Volume:   -3,
	}
	speaker.Play(quiet)
}

// Close releases the audio device.
func (s *Speaker) Close() {
	speaker.Close()
}

// Pitch returns the tone frequency for n simultaneous absorptions, from 660 Hz
// down to a floor of 220 Hz.
func Pitch(n int) float64 {
	f := 660.0 - float64(n-1)*60
	if f < 220 {
		return 220
	}
	return f
}
