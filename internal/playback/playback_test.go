package playback

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAdvance(t *testing.T) {
	cases := []struct {
		progress float64
		elapsed  time.Duration
		duration time.Duration
		want     float64
		done     bool
	}{
		{0, time.Second, 3 * time.Second, 1.0 / 3, false},
		{0.9, time.Second, 3 * time.Second, 1, true},
		{0.5, 0, 3 * time.Second, 0.5, false},
		{0.2, time.Second, 0, 1, true},
	}
	for _, c := range cases {
		got, done := Advance(c.progress, c.elapsed, c.duration)
		if diff := got - c.want; diff > 1e-12 || diff < -1e-12 || done != c.done {
			t.Errorf("Advance(%v, %v, %v): got=%v,%v want=%v,%v", c.progress, c.elapsed, c.duration, got, done, c.want, c.done)
		}
	}
}

func TestFrames(t *testing.T) {
	fs := Frames(10, time.Second)
	if len(fs) != 11 {
		t.Fatalf("frames: got %d want 11 (%v)", len(fs), fs)
	}
	if fs[0] != 0 || fs[len(fs)-1] != 1 {
		t.Errorf("ends: got=%v..%v", fs[0], fs[len(fs)-1])
	}
	for i := 1; i < len(fs); i++ {
		if fs[i] < fs[i-1] {
			t.Fatalf("not monotonic at %d: %v", i, fs)
		}
	}
}

func TestFramesBounded(t *testing.T) {
	if n := FrameCount(2000000000, 2*time.Second); n != 2001 {
		t.Errorf("clamped fps: got %d frames want 2001", n)
	}
	fs := Frames(2000000000, 2*time.Second)
	if len(fs) != 2001 || fs[len(fs)-1] != 1 {
		t.Fatalf("clamped fps: got %d frames ending at %v", len(fs), fs[len(fs)-1])
	}
	if n := FrameCount(30, 100000*time.Second); n != 3000002 {
		t.Errorf("long duration: got %d want 3000002", n)
	}
	if fs := Frames(30, 0); len(fs) != 2 || fs[0] != 0 || fs[1] != 1 {
		t.Errorf("zero duration: got=%v", fs)
	}
}

func TestToggleRewindsAtEnd(t *testing.T) {
	p := NewPlayer(time.Second, time.Millisecond)
	p.Seek(1)
	if !p.Toggle() || p.Progress() != 0 {
		t.Errorf("toggle at end: playing=%v progress=%v", p.Playing(), p.Progress())
	}
	if p.Toggle() || p.Playing() {
		t.Error("second toggle did not pause")
	}
	p.Seek(2)
	if p.Progress() != 1 {
		t.Errorf("seek clamps: got=%v", p.Progress())
	}
}

func TestRunReachesEnd(t *testing.T) {
	p := NewPlayer(time.Second, time.Millisecond)
	clock := time.Unix(0, 0)
	p.now = func() time.Time {
		clock = clock.Add(100 * time.Millisecond)
		return clock
	}

	var seen []float64
	if err := p.Run(context.Background(), func(v float64) { seen = append(seen, v) }); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(seen) < 2 || seen[0] != 0 || seen[len(seen)-1] != 1 {
		t.Errorf("frames: got=%v", seen)
	}
	if p.Playing() {
		t.Error("still playing after reaching the end")
	}
}

func TestRunCancel(t *testing.T) {
	p := NewPlayer(time.Hour, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := p.Run(ctx, func(float64) {
		calls++
		if calls == 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err: got=%v want context.Canceled", err)
	}
	if p.Playing() || p.Progress() >= 1 {
		t.Errorf("after cancel: playing=%v progress=%v", p.Playing(), p.Progress())
	}
}
