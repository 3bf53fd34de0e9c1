package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/opentocoder/docker-panel/internal/clock"
)

func newTestLimiter() (*Limiter, *clock.MockClock) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewLimiter(DefaultMaxAttempts, DefaultWindow, clk), clk
}

func TestLimiter_AllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 1; i <= DefaultMaxAttempts; i++ {
		res := l.Check("1.2.3.4")
		if !res.Allowed {
			t.Fatalf("attempt %d should be allowed", i)
		}
		if want := DefaultMaxAttempts - i; res.Remaining != want {
			t.Errorf("attempt %d: Remaining = %d, want %d", i, res.Remaining, want)
		}
	}

	res := l.Check("1.2.3.4")
	if res.Allowed {
		t.Error("attempt past the maximum should be rejected")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("rejected check must carry RetryAfter > 0, got %d", res.RetryAfter)
	}
}

func TestLimiter_RetryAfterCountsDown(t *testing.T) {
	l, clk := newTestLimiter()

	for i := 0; i < DefaultMaxAttempts; i++ {
		l.Check("k")
	}

	res := l.Check("k")
	if got, want := res.RetryAfter, int(DefaultWindow.Seconds()); got > want {
		t.Errorf("RetryAfter = %d, want <= %d", got, want)
	}

	clk.Advance(10 * time.Minute)
	res = l.Check("k")
	if res.Allowed {
		t.Fatal("still inside the window, should be rejected")
	}
	if got, want := res.RetryAfter, 5*60; got != want {
		t.Errorf("RetryAfter = %d, want %d", got, want)
	}
}

func TestLimiter_ResetClearsPenalty(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < DefaultMaxAttempts; i++ {
		l.Check("k")
	}
	l.Reset("k")

	res := l.Check("k")
	if !res.Allowed {
		t.Fatal("check after Reset should be allowed")
	}
	if res.Remaining != DefaultMaxAttempts-1 {
		t.Errorf("Remaining = %d, want %d", res.Remaining, DefaultMaxAttempts-1)
	}
}

func TestLimiter_ElapsedWindowStartsFresh(t *testing.T) {
	l, clk := newTestLimiter()

	for i := 0; i < DefaultMaxAttempts; i++ {
		l.Check("k")
	}
	if l.Check("k").Allowed {
		t.Fatal("should be limited before the window elapses")
	}

	clk.Advance(DefaultWindow + time.Second)

	res := l.Check("k")
	if !res.Allowed {
		t.Fatal("attempt after the window elapsed should open a fresh window")
	}
	if res.Remaining != DefaultMaxAttempts-1 {
		t.Errorf("fresh window Remaining = %d, want %d (old count must not carry over)", res.Remaining, DefaultMaxAttempts-1)
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < DefaultMaxAttempts; i++ {
		l.Check("a")
	}
	if l.Check("a").Allowed {
		t.Error("key a should be limited")
	}
	if !l.Check("b").Allowed {
		t.Error("key b should be unaffected")
	}
}

func TestLimiter_SweepRemovesExpired(t *testing.T) {
	l, clk := newTestLimiter()

	l.Check("a")
	l.Check("b")
	clk.Advance(DefaultWindow + time.Second)
	l.Check("c")

	l.Sweep()

	if got := l.Len(); got != 1 {
		t.Errorf("Len after sweep = %d, want 1 (only the open window)", got)
	}
}

func TestLimiter_ConcurrentChecksDoNotUndercount(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	l := NewLimiter(50, DefaultWindow, clk)

	var wg sync.WaitGroup
	allowed := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Check("k").Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	if count != 50 {
		t.Errorf("allowed %d attempts, want exactly 50", count)
	}
}

func TestLimiter_ExpiredEntryNeverBlocks(t *testing.T) {
	l, clk := newTestLimiter()

	for i := 0; i < DefaultMaxAttempts+3; i++ {
		l.Check("k")
	}
	// No sweep runs; the stale entry must still be treated as non-blocking.
	clk.Advance(DefaultWindow + time.Minute)

	if !l.Check("k").Allowed {
		t.Error("expired entry must not block, regardless of cleanup timing")
	}
}

func ExampleLimiter_Check() {
	l := NewLimiter(2, time.Minute, nil)
	fmt.Println(l.Check("ip").Allowed)
	fmt.Println(l.Check("ip").Allowed)
	fmt.Println(l.Check("ip").Allowed)
	// Output:
	// true
	// true
	// false
}
