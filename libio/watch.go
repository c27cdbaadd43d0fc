package libio

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"
)

// Watcher records resources that change on disk. Events are collected on a
// background goroutine; the frame loop picks them up with Changed.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	mu      sync.Mutex
	changed map[string]struct{}
	done    chan struct{}
}

// NewWatcher watches root and all of its subdirectories.
func NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(p)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("could not watch %q: %w", root, err)
	}

	w := &Watcher{
		watcher: fw,
		root:    root,
		changed: map[string]struct{}{},
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if name, ok := w.resourceName(event.Name); ok {
				w.mu.Lock()
				w.changed[name] = struct{}{}
				w.mu.Unlock()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v\n", err)
		}
	}
}

func (w *Watcher) resourceName(file string) (string, bool) {
	rel, err := filepath.Rel(w.root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, CompressedSuffix), true
}

// Changed returns the sorted names changed since the last call.
func (w *Watcher) Changed() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.changed) == 0 {
		return nil
	}
	names := make([]string, 0, len(w.changed))
	for name := range w.changed {
		names = append(names, name)
	}
	w.changed = map[string]struct{}{}
	slices.Sort(names)
	return names
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
