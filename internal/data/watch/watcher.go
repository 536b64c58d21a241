// Package watch notifies subscribers when the slot database is written by
// another process.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 16
)

// Event reports that the database changed on disk.
type Event struct {
	Path      string
	Timestamp time.Time
}

// Watcher watches a data directory for writes to files sharing a base name
// (for SQLite: the database and its -wal/-journal files). The -shm index
// changes on plain reads and is ignored.
type Watcher struct {
	dir    string
	base   string
	fs     *fsnotify.Watcher
	logger zerolog.Logger

	mu          sync.Mutex
	subscribers []chan Event
	timer       *time.Timer
	quietUntil  time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New starts watching dir for changes to base and its side files.
// The directory is created if it doesn't exist.
func New(dir, base string, logger zerolog.Logger) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:    dir,
		base:   base,
		fs:     fsw,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Subscribe returns a channel that receives one event per debounced burst of
// writes. The channel is closed when ctx ends or the watcher closes.
func (w *Watcher) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, eventBufferSize)

	w.mu.Lock()
	w.subscribers = append(w.subscribers, ch)
	w.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			w.unsubscribe(ch)
		case <-w.ctx.Done():
		}
	}()

	return ch
}

// Ignore drops events for the next d. Callers use it around their own
// writes so they don't reload what they just persisted.
func (w *Watcher) Ignore(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	until := time.Now().Add(d)
	if until.After(w.quietUntil) {
		w.quietUntil = until
	}
}

// Close stops watching and closes all subscriber channels.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	for _, ch := range w.subscribers {
		close(ch)
	}
	w.subscribers = nil
	w.mu.Unlock()

	err := w.fs.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) unsubscribe(ch chan Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, sub := range w.subscribers {
		if sub == ch {
			w.subscribers = append(w.subscribers[:i], w.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	if !w.matches(filepath.Base(event.Name)) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if time.Now().Before(w.quietUntil) {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	path := event.Name
	w.timer = time.AfterFunc(debounceDelay, func() {
		w.notify(path)
	})
}

// matches accepts the base file and its -wal/-journal side files. -shm and
// backups such as taskboard.db.corrupt.<ts> are ignored.
func (w *Watcher) matches(name string) bool {
	if name == w.base {
		return true
	}
	rest, ok := strings.CutPrefix(name, w.base)
	return ok && (rest == "-wal" || rest == "-journal")
}

func (w *Watcher) notify(path string) {
	event := Event{Path: path, Timestamp: time.Now()}

	w.mu.Lock()
	defer w.mu.Unlock()

	if time.Now().Before(w.quietUntil) {
		return
	}

	for _, ch := range w.subscribers {
		select {
		case ch <- event:
		default:
			// subscriber is behind; it will reload on the event it already has
		}
	}
	w.timer = nil
}
