package instructions

import (
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/BartSte/bartste-prompts/internal/event"
	"github.com/BartSte/bartste-prompts/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// DebounceInterval groups bursts of file events into one change signal.
const DebounceInterval = 100 * time.Millisecond

// Watcher watches on-disk instruction roots and signals when any file in
// them changes.
type Watcher struct {
	watcher *fsnotify.Watcher
	bus     *event.Bus
	changes chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	mu      sync.Mutex
}

// NewWatcher watches every directory below the on-disk roots. Roots that
// are not on disk are ignored.
func NewWatcher(roots []Root, bus *event.Bus) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, root := range roots {
		if !root.OnDisk {
			continue
		}
		if err := addTree(w, root.Dir); err != nil {
			w.Close()
			return nil, err
		}
		logging.Debug().Str("root", root.Dir).Msg("watching instructions")
	}

	return &Watcher{
		watcher: w,
		bus:     bus,
		changes: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// addTree adds dir and every directory below it.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

// Changes delivers one value per debounced burst of changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.run()
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				// New directories must be watched too.
				_ = addTree(w.watcher, ev.Name)
			}

			w.bus.PublishSync(event.Event{
				Type: event.InstructionsChanged,
				Data: event.InstructionsChangedData{Path: ev.Name, Op: ev.Op.String()},
			})

			if timer == nil {
				timer = time.NewTimer(DebounceInterval)
			} else {
				timer.Reset(DebounceInterval)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error().Err(err).Msg("instruction watcher error")
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()

	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}

	if started {
		<-w.doneCh
	}

	return w.watcher.Close()
}
