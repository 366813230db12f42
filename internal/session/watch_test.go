package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"screw-motion/internal/config"
)

func TestWatchRecomputesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(`{"translation": [1, 0, 0]}`), 0644); err != nil {
		t.Fatal(err)
	}
	load := func() (Input, error) {
		c, err := config.Load(path)
		if err != nil {
			return Input{}, err
		}
		rot, tr, err := c.Transform()
		return Input{Rotation: rot, Translation: tr}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	states := make(chan State, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 10*time.Millisecond, load, func(s State) { states <- s })
	}()

	first := <-states
	if first.Revision != 1 || first.Cleared() || first.Motion.Displacement != 1 {
		t.Fatalf("first revision: got=%+v", first)
	}

	// Give the poller one cycle to snapshot the file before changing it.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"translation": [0, 0, 2.5], "rotation": [1, 0, 0, 0, 1, 0, 0, 0, -1]}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case s := <-states:
		if s.Revision != 2 || !s.Invalid() {
			t.Errorf("second revision: got=%+v", s)
		}
	case <-ctx.Done():
		t.Fatal("no revision after write")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watch: %v", err)
	}
}
