package sound

import (
	"testing"
	"time"
)

type countingPlayer struct {
	calls []int
}

func (p *countingPlayer) Play(n int) { p.calls = append(p.calls, n) }

func TestChimeThrottle(t *testing.T) {
	p := &countingPlayer{}
	c := NewChime(p)
	clock := time.Unix(1000, 0)
	c.now = func() time.Time { return clock }

	c.Absorbed(1)
	c.Absorbed(2) // same instant, dropped
	clock = clock.Add(MinInterval / 2)
	c.Absorbed(3) // still inside the window
	clock = clock.Add(MinInterval)
	c.Absorbed(4)

	if len(p.calls) != 2 {
		t.Fatalf("Expected 2 chimes, got %d: %v", len(p.calls), p.calls)
	}
	if p.calls[0] != 1 || p.calls[1] != 4 {
		t.Errorf("Expected chimes for 1 and 4, got %v", p.calls)
	}
}

func TestChimeIgnoresEmptyEvents(t *testing.T) {
	p := &countingPlayer{}
	c := NewChime(p)

	c.Absorbed(0)
	c.Absorbed(-2)
	if len(p.calls) != 0 {
		t.Errorf("Expected no chimes, got %v", p.calls)
	}

	// nil player must not panic
	NewChime(nil).Absorbed(5)
}

func TestPitch(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{1, 660},
		{2, 600},
		{5, 420},
		{100, 220},
	}
	for _, tt := range tests {
		if got := Pitch(tt.n); got != tt.want {
			t.Errorf("Pitch(%d) = %v, expected %v", tt.n, got, tt.want)
		}
	}
}
