package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

const defaultSettle = 500 * time.Millisecond

// Watcher keeps the library in sync with a materials directory. Editors
// write files in bursts, so events are collected until the directory has
// been quiet for the settle period.
type Watcher struct {
	dir     string
	library *Library
	settle  time.Duration

	done chan struct{}
	once sync.Once
}

func NewWatcher(dir string, library *Library) *Watcher {
	return &Watcher{
		dir:     dir,
		library: library,
		settle:  defaultSettle,
		done:    make(chan struct{}),
	}
}

func (w *Watcher) Name() string { return "materials-watcher" }

// Start blocks until ctx is done or Shutdown is called.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", w.dir, err)
	}
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	logger := log.FromCtx(ctx).With().Str("dir", w.dir).Logger()
	logger.Info().Msg("watching materials")

	changed := make(map[string]bool)
	timer := time.NewTimer(w.settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !IsSupported(event.Name) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				changed[event.Name] = true
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				changed[event.Name] = false
			default:
				continue
			}
			timer.Reset(w.settle)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watcher error")
		case <-timer.C:
			w.apply(logger.WithContext(ctx), changed)
			changed = make(map[string]bool)
		}
	}
}

func (w *Watcher) apply(ctx context.Context, changed map[string]bool) {
	logger := log.FromCtx(ctx)

	var imports []string
	for path, present := range changed {
		if present {
			imports = append(imports, path)
			continue
		}
		err := w.library.Delete(ctx, filepath.Base(path))
		if err != nil && !errors.Is(err, core.ErrDocumentNotFound) {
			logger.Error().Err(err).Str("path", path).Msg("failed to remove material")
		}
	}

	if len(imports) == 0 {
		return
	}
	docs, err := w.library.ImportFiles(ctx, imports)
	if err != nil {
		logger.Error().Err(err).Msg("failed to import changed materials")
		return
	}
	logger.Info().Int("documents", len(docs)).Msg("materials updated")
}

func (w *Watcher) Shutdown(ctx context.Context) error {
	w.once.Do(func() { close(w.done) })
	return nil
}
