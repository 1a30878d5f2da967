package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleFires(t *testing.T) {
	s := New(10 * time.Millisecond)
	done := make(chan struct{})
	s.Schedule("0-0", func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled function never ran")
	}
	if s.Pending() != 0 {
		t.Fatalf("pending = %d after fire", s.Pending())
	}
}

func TestLastEditWins(t *testing.T) {
	s := New(30 * time.Millisecond)
	var ran atomic.Int32
	var winner atomic.Int32

	s.Schedule("0-0", func() { ran.Add(1); winner.Store(1) })
	time.Sleep(5 * time.Millisecond)
	s.Schedule("0-0", func() { ran.Add(1); winner.Store(2) })
	time.Sleep(5 * time.Millisecond)
	s.Schedule("0-0", func() { ran.Add(1); winner.Store(3) })

	time.Sleep(150 * time.Millisecond)
	if got := ran.Load(); got != 1 {
		t.Fatalf("ran %d times, want exactly 1", got)
	}
	if winner.Load() != 3 {
		t.Fatalf("winner = %d, want the last scheduled function", winner.Load())
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := New(10 * time.Millisecond)
	var ran atomic.Int32
	s.Schedule("0-0", func() { ran.Add(1) })
	s.Schedule("0-1", func() { ran.Add(1) })
	s.Schedule("4-4", func() { ran.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if got := ran.Load(); got != 3 {
		t.Fatalf("ran %d times, want 3", got)
	}
}

func TestCancel(t *testing.T) {
	s := New(20 * time.Millisecond)
	var ran atomic.Int32
	s.Schedule("0-0", func() { ran.Add(1) })

	if !s.Cancel("0-0") {
		t.Fatal("Cancel should report a pending timer")
	}
	if s.Cancel("0-0") {
		t.Fatal("second Cancel should find nothing")
	}
	time.Sleep(80 * time.Millisecond)
	if ran.Load() != 0 {
		t.Fatal("cancelled function still ran")
	}
}

func TestCancelAll(t *testing.T) {
	s := New(20 * time.Millisecond)
	var ran atomic.Int32
	for _, key := range []string{"0-0", "1-2", "3-4"} {
		s.Schedule(key, func() { ran.Add(1) })
	}

	if n := s.CancelAll(); n != 3 {
		t.Fatalf("CancelAll dropped %d, want 3", n)
	}
	if s.Pending() != 0 {
		t.Fatalf("pending = %d after CancelAll", s.Pending())
	}
	time.Sleep(80 * time.Millisecond)
	if ran.Load() != 0 {
		t.Fatalf("%d cancelled functions still ran", ran.Load())
	}
}

func TestZeroDelayFallsBack(t *testing.T) {
	if got := New(0).Delay(); got != DefaultDelay {
		t.Fatalf("delay = %v, want %v", got, DefaultDelay)
	}
}
