package session

import (
	"context"
	"fmt"
	"time"

	"github.com/radovskyb/watcher"

	"screw-motion/internal/event"
)

// Loader reads the current input from disk.
type Loader func() (Input, error)

// Watch recomputes the state every time the file at path is written and
// passes each new revision to emit. The first revision is emitted before
// watching starts. Watch blocks until ctx is done or the watcher fails.
func Watch(ctx context.Context, path string, interval time.Duration, load Loader, emit func(State)) error {
	state := State{}
	update := func() {
		in, err := load()
		if err != nil {
			event.Log.WithFields(event.Fields{"path": path}).Warnf("input unreadable: %v", err)
			in = Input{}
		}
		state = Next(state, in)
		emit(state)
	}
	update()

	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Rename, watcher.Move)
	if err := w.Add(path); err != nil {
		return fmt.Errorf("session: watch %s: %w", path, err)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- w.Start(interval)
	}()
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Event:
			event.Log.WithFields(event.Fields{"path": ev.Path, "op": ev.Op.String()}).Debug("input changed")
			update()
		case err := <-w.Error:
			return fmt.Errorf("session: watch %s: %w", path, err)
		case err := <-errc:
			if err != nil {
				return fmt.Errorf("session: watch %s: %w", path, err)
			}
			return nil
		case <-w.Closed:
			return nil
		}
	}
}
