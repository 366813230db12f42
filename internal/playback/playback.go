// Package playback advances the progress parameter with a clock, the way an
// animation loop does: progress += elapsed / duration, clamped at 1, and
// stop once 1 is reached.
package playback

import (
	"context"
	"math"
	"sync"
	"time"
)

// Advance steps progress by elapsed/duration. done is set once progress
// reaches 1. A non-positive duration jumps straight to the end.
func Advance(progress float64, elapsed, duration time.Duration) (next float64, done bool) {
	if duration <= 0 {
		return 1, true
	}
	next = progress + elapsed.Seconds()/duration.Seconds()
	next = math.Max(0, math.Min(1, next))
	return next, next >= 1
}

// MaxFPS is the highest frame rate Frames schedules; higher rates are
// clamped to it.
const MaxFPS = 1000

func frameStep(fps int) time.Duration {
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(min(fps, MaxFPS))
}

// FrameCount returns len(Frames(fps, duration)) without building the
// schedule.
func FrameCount(fps int, duration time.Duration) int {
	if duration <= 0 {
		return 2
	}
	return int(math.Ceil(float64(duration)/float64(frameStep(fps)))) + 1
}

// Frames returns the progress value of every frame when playing a path of
// the given duration at fps. Frame i is Advance(0, i·step, duration), so the
// schedule does not accumulate rounding error; the first frame is 0 and the
// last is exactly 1.
func Frames(fps int, duration time.Duration) []float64 {
	step := frameStep(fps)
	out := make([]float64, FrameCount(fps, duration))
	for i := 1; i < len(out)-1; i++ {
		out[i], _ = Advance(0, time.Duration(i)*step, duration)
	}
	out[len(out)-1] = 1
	return out
}

// Player drives a frame callback from a ticker until progress reaches 1.
// It is safe to Toggle and Seek from other goroutines while Run is active.
type Player struct {
	Duration time.Duration
	Interval time.Duration

	mu       sync.Mutex
	progress float64
	playing  bool
	now      func() time.Time
}

// NewPlayer returns a paused player at progress 0.
func NewPlayer(duration, interval time.Duration) *Player {
	return &Player{Duration: duration, Interval: interval, now: time.Now}
}

// Progress returns the current progress.
func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

// Playing reports whether the player is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Seek sets progress directly and pauses, as dragging a slider does.
func (p *Player) Seek(progress float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = math.Max(0, math.Min(1, progress))
	p.playing = false
}

// Toggle flips between playing and paused. Starting from the end rewinds
// to 0 first. It returns the new playing state.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = !p.playing
	if p.playing && p.progress >= 1 {
		p.progress = 0
	}
	return p.playing
}

// Run starts playback and calls frame on every tick with the current
// progress until the end is reached, the player is paused, or ctx is done.
// frame is always called once with the starting progress.
func (p *Player) Run(ctx context.Context, frame func(progress float64)) error {
	p.mu.Lock()
	if !p.playing {
		p.playing = true
		if p.progress >= 1 {
			p.progress = 0
		}
	}
	start := p.progress
	interval := p.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	p.mu.Unlock()

	frame(start)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	prev := p.now()
	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			p.playing = false
			p.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
			now := p.now()
			elapsed := now.Sub(prev)
			prev = now

			p.mu.Lock()
			if !p.playing {
				p.mu.Unlock()
				return nil
			}
			next, done := Advance(p.progress, elapsed, p.Duration)
			p.progress = next
			if done {
				p.playing = false
			}
			p.mu.Unlock()

			frame(next)
			if done {
				return nil
			}
		}
	}
}
