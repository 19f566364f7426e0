package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates a Cache whenever its directory changes. Rapid bursts of
// events (editors saving, copies in progress) collapse into one invalidation.
type Watcher struct {
	cache    *Cache
	watcher  *fsnotify.Watcher
	debounce time.Duration

	// OnInvalidate, when set, is called after each invalidation.
	OnInvalidate func(fsnotify.Event)
	// OnError, when set, receives errors reported by fsnotify.
	OnError func(error)

	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher watches the cache's directory.
func NewWatcher(cache *Cache, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(cache.Dir()); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		cache:    cache,
		watcher:  fw,
		debounce: debounce,
		done:     make(chan struct{}),
	}, nil
}

// Run processes events until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending fsnotify.Event
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			pending = ev
			if w.debounce <= 0 {
				w.fire(pending)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			w.fire(pending)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

func (w *Watcher) fire(ev fsnotify.Event) {
	w.cache.Invalidate()
	if w.OnInvalidate != nil {
		w.OnInvalidate(ev)
	}
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

// Done is closed once Run returns.
func (w *Watcher) Done() <-chan struct{} { return w.done }
