package core

import (
	"testing"
	"time"
)

func TestFixedStepDue(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	if got := fs.Due(); got != 1 {
		t.Fatalf("first call should release the primed tick, got %d", got)
	}
	clock = clock.Add(50 * time.Millisecond)
	if got := fs.Due(); got != 0 {
		t.Fatalf("half a step elapsed, got %d ticks", got)
	}
	clock = clock.Add(250 * time.Millisecond)
	if got := fs.Due(); got != 3 {
		t.Fatalf("three steps elapsed, got %d ticks", got)
	}
	clock = clock.Add(10 * time.Second)
	if got := fs.Due(); got != 4 {
		t.Fatalf("catch-up should cap at 4, got %d", got)
	}
	clock = clock.Add(10 * time.Millisecond)
	if got := fs.Due(); got != 0 {
		t.Fatalf("backlog should be dropped after cap, got %d", got)
	}
}
