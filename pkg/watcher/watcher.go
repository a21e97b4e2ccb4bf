package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/eitatech/gatomia-analyzer/pkg/logging"
)

// ChangeEvent represents a batch of input file changes.
type ChangeEvent struct {
	Paths     []string
	Timestamp time.Time
}

// InputWatcher watches the two analysis input files for changes. Both
// artifacts are regenerated wholesale by the extraction step, so any write
// to either one invalidates the whole analysis.
type InputWatcher struct {
	watcher *fsnotify.Watcher
	inputs  map[string]bool // absolute paths of the watched files
	events  chan ChangeEvent
}

// NewInputWatcher creates a watcher over the given input files.
func NewInputWatcher(paths ...string) (*InputWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	inputs := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		inputs[abs] = true
	}

	return &InputWatcher{
		watcher: watcher,
		inputs:  inputs,
		events:  make(chan ChangeEvent, 100),
	}, nil
}

// Start begins watching for file changes.
func (iw *InputWatcher) Start(ctx context.Context) error {
	// Watch the parent directories; editors and generators often replace
	// files by rename, which a file-level watch would lose.
	dirs := make(map[string]bool)
	for path := range iw.inputs {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := iw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	logging.Info("watching input files", "count", len(iw.inputs))

	go iw.processEvents(ctx)

	return nil
}

// processEvents filters raw events down to the watched inputs and batches
// them behind a short flush window.
func (iw *InputWatcher) processEvents(ctx context.Context) {
	var pending []string

	flushTimer := time.NewTimer(100 * time.Millisecond)
	flushTimer.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		iw.events <- ChangeEvent{
			Paths:     pending,
			Timestamp: time.Now(),
		}
		pending = nil
	}

	for {
		select {
		case <-ctx.Done():
			iw.watcher.Close()
			close(iw.events)
			return

		case event, ok := <-iw.watcher.Events:
			if !ok {
				return
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil || !iw.inputs[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			pending = append(pending, abs)
			flushTimer.Reset(100 * time.Millisecond)

		case <-flushTimer.C:
			flush()

		case err, ok := <-iw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of change events.
func (iw *InputWatcher) Events() <-chan ChangeEvent {
	return iw.events
}

// Stop stops the watcher.
func (iw *InputWatcher) Stop() error {
	return iw.watcher.Close()
}
