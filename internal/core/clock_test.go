package core

import (
	"testing"
	"time"
)

func TestManualClockAdvance(t *testing.T) {
	c := NewManualClock(time.Time{})
	start := c.Now()
	if start.IsZero() {
		t.Fatal("manual clock must not start at the zero time")
	}
	c.Advance(1500 * time.Millisecond)
	if got := c.Now().Sub(start); got != 1500*time.Millisecond {
		t.Fatalf("elapsed = %v, want 1.5s", got)
	}
	c.Advance(-time.Second)
	if got := c.Now().Sub(start); got != 1500*time.Millisecond {
		t.Fatalf("negative advance moved the clock to %v", got)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 10; i++ {
		if a.Range(-1, 1) != b.Range(-1, 1) {
			t.Fatal("same seed should produce the same sequence")
		}
	}
	if got := a.Range(3, 3); got != 3 {
		t.Fatalf("Range(3, 3) = %v, want 3", got)
	}
}
