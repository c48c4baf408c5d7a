package config

import "sync"

// Store holds the live configuration shared between input handlers and the
// frame loop. Writers may run on any goroutine; the frame loop takes exactly
// one Snapshot per tick.
type Store struct {
	mu     sync.Mutex
	conf   Config
	reinit bool
}

// NewStore returns a store holding conf. The first snapshot requests a
// field rebuild.
func NewStore(conf Config) *Store {
	return &Store{conf: conf, reinit: true}
}

// Snapshot returns the current config and whether the particle field must be
// rebuilt. The rebuild flag is cleared by the call.
func (s *Store) Snapshot() (Config, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reinit := s.reinit
	s.reinit = false
	return s.conf, reinit
}

// Current returns the config without consuming the rebuild flag.
func (s *Store) Current() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conf
}

// Set replaces the config. A new particle count or variant requests a rebuild.
func (s *Store) Set(conf Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(conf)
}

func (s *Store) set(conf Config) {
	if conf.ParticleCount != s.conf.ParticleCount || conf.Variant != s.conf.Variant {
		s.reinit = true
	}
	s.conf = conf
}

// Update applies fn to a copy of the config and stores the result.
func (s *Store) Update(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conf := s.conf
	fn(&conf)
	s.set(conf)
}

// Nudge steps one control, see Config.Nudge.
func (s *Store) Nudge(c Control, dir int) {
	s.Update(func(conf *Config) {
		*conf = conf.Nudge(c, dir)
	})
}

// Reset restores the defaults and always requests a rebuild. Backend flags
// (sound, stars) survive the reset.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	def := Default()
	def.Sound = s.conf.Sound
	def.Stars = s.conf.Stars
	def.Variant = s.conf.Variant
	s.conf = def
	s.reinit = true
}

// Reinit requests a field rebuild on the next snapshot.
func (s *Store) Reinit() {
	s.mu.Lock()
	s.reinit = true
	s.mu.Unlock()
}
