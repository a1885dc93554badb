package timing

import (
	"testing"
	"time"
)

func TestManualRunsInDueOrder(t *testing.T) {
	clock := NewManual()
	var got []string
	clock.After(300*time.Millisecond, func() { got = append(got, "hide") })
	clock.After(50*time.Millisecond, func() { got = append(got, "show") })
	clock.After(50*time.Millisecond, func() { got = append(got, "show-2") })

	clock.Advance(49 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("nothing should run before 50ms, got %v", got)
	}
	clock.Advance(time.Millisecond)
	if len(got) != 2 || got[0] != "show" || got[1] != "show-2" {
		t.Fatalf("unexpected order at 50ms: %v", got)
	}
	clock.Advance(250 * time.Millisecond)
	if len(got) != 3 || got[2] != "hide" {
		t.Fatalf("expected hide at 300ms: %v", got)
	}
	if clock.Now() != 300*time.Millisecond {
		t.Fatalf("expected clock at 300ms, got %v", clock.Now())
	}
}

func TestManualRunsCallbacksScheduledWhileAdvancing(t *testing.T) {
	clock := NewManual()
	var at []time.Duration
	clock.After(5*time.Second, func() {
		at = append(at, clock.Now())
		clock.After(300*time.Millisecond, func() { at = append(at, clock.Now()) })
	})

	clock.Advance(6 * time.Second)
	if len(at) != 2 {
		t.Fatalf("expected both callbacks to run, got %v", at)
	}
	if at[0] != 5*time.Second || at[1] != 5300*time.Millisecond {
		t.Fatalf("unexpected run times: %v", at)
	}
}

func TestManualFlush(t *testing.T) {
	clock := NewManual()
	ran := 0
	clock.After(time.Hour, func() { ran++ })
	clock.After(time.Second, func() { ran++ })
	clock.Flush()
	if ran != 2 || clock.Pending() != 0 {
		t.Fatalf("flush left work behind: ran=%d pending=%d", ran, clock.Pending())
	}
}

func TestLoopRunsCallbacksOnLoopGoroutine(t *testing.T) {
	loop := NewLoop(4)
	go loop.Run()
	defer loop.Stop()

	fired := make(chan struct{})
	loop.After(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer callback never ran")
	}
}

func TestLoopStopIsIdempotent(t *testing.T) {
	loop := NewLoop(0)
	loop.Stop()
	loop.Stop()
	loop.Post(func() { t.Fatal("task should be dropped after stop") })
}
