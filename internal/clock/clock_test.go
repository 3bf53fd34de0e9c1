package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	c := &RealClock{}
	before := time.Now()
	got := c.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("RealClock.Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestMockClock_Now(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(base)

	if got := c.Now(); !got.Equal(base) {
		t.Errorf("MockClock.Now() = %v, want %v", got, base)
	}
}

func TestMockClock_Advance(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(base)

	c.Advance(90 * time.Minute)

	want := base.Add(90 * time.Minute)
	if got := c.Now(); !got.Equal(want) {
		t.Errorf("after Advance, Now() = %v, want %v", got, want)
	}
}

func TestMockClock_Set(t *testing.T) {
	c := NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	target := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c.Set(target)

	if got := c.Now(); !got.Equal(target) {
		t.Errorf("after Set, Now() = %v, want %v", got, target)
	}
}

func TestMockClock_SinceUntil(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(base)

	past := base.Add(-10 * time.Minute)
	future := base.Add(15 * time.Minute)

	if got := c.Since(past); got != 10*time.Minute {
		t.Errorf("Since() = %v, want 10m", got)
	}
	if got := c.Until(future); got != 15*time.Minute {
		t.Errorf("Until() = %v, want 15m", got)
	}
}
