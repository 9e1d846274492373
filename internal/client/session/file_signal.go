package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// FileSignal reports writes to a SQLite storage file made by any process.
// Publish is a no-op: the write itself is what other processes observe.
type FileSignal struct {
	watcher *fsnotify.Watcher
	names   map[string]struct{}
	log     logging.Logger
	l       listeners[struct{}]
	done    chan struct{}
}

// NewFileSignal watches the directory holding path and reacts to changes of
// the database file and its -journal/-wal siblings.
func NewFileSignal(path string, log logging.Logger) (*FileSignal, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("abs %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	s := &FileSignal{
		watcher: watcher,
		names: map[string]struct{}{
			abs:              {},
			abs + "-journal": {},
			abs + "-wal":     {},
		},
		log:  log,
		done: make(chan struct{}),
	}
	go s.loop()
	return s, nil
}

func (s *FileSignal) loop() {
	defer close(s.done)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if _, watched := s.names[event.Name]; !watched {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.log.Debug(context.Background(), "storage file changed", "op", event.Op.String(), "file", filepath.Base(event.Name))
			s.l.notify(struct{}{})

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn(context.Background(), "storage watcher error", "error", err)
		}
	}
}

func (s *FileSignal) Publish(context.Context) error {
	return nil
}

func (s *FileSignal) Subscribe(fn func()) func() {
	return s.l.add(func(struct{}) { fn() })
}

// Close stops watching and waits for the event loop to exit.
func (s *FileSignal) Close() error {
	err := s.watcher.Close()
	<-s.done
	return err
}
