package voice

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Loader serves immutable registry snapshots. With no catalogue file
// configured it serves the compiled-in table; with one configured it parses
// the file at startup and can optionally watch it, swapping in a freshly
// validated snapshot on change. Handlers read one snapshot per request.
type Loader struct {
	path     string
	current  atomic.Pointer[Registry]
	onReload func(ctx context.Context, voices int)
}

type catalogueFile struct {
	Voices []Voice `yaml:"voices"`
}

// NewLoader creates a loader for the given catalogue file path. An empty
// path means the built-in table is used.
func NewLoader(path string) *Loader {
	l := &Loader{path: path}
	l.current.Store(Builtin())
	return l
}

// SetOnReload registers a callback invoked after each successful watch
// reload with the new voice count. Set it before WatchAndReload starts.
func (l *Loader) SetOnReload(fn func(ctx context.Context, voices int)) {
	l.onReload = fn
}

// Current returns the active registry snapshot.
func (l *Loader) Current() *Registry {
	return l.current.Load()
}

// Load parses the catalogue file and swaps it in. No-op when the loader
// has no path configured. The previous snapshot stays active on error.
func (l *Loader) Load() error {
	if l.path == "" {
		return nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("read voice catalogue %q: %w", l.path, err)
	}

	var cat catalogueFile
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return fmt.Errorf("parse voice catalogue %q: %w", l.path, err)
	}
	if len(cat.Voices) == 0 {
		return fmt.Errorf("voice catalogue %q declares no voices", l.path)
	}

	reg, err := NewRegistry(cat.Voices)
	if err != nil {
		return fmt.Errorf("voice catalogue %q: %w", l.path, err)
	}

	l.current.Store(reg)
	return nil
}

// WatchAndReload watches the catalogue file's directory and reloads on
// change. Blocks until the context is done.
func (l *Loader) WatchAndReload(ctx context.Context) error {
	if l.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file so editors that replace the
	// file on save keep the watch alive.
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		return fmt.Errorf("watch dir %q: %w", filepath.Dir(l.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(l.path) {
				continue
			}
			if err := l.Load(); err != nil {
				slog.WarnContext(ctx, "voice catalogue reload failed, keeping previous snapshot",
					slog.String("path", l.path), slog.String("error", err.Error()))
				continue
			}
			slog.InfoContext(ctx, "voice catalogue reloaded",
				slog.String("path", l.path), slog.Int("voices", l.Current().Len()))
			if l.onReload != nil {
				l.onReload(ctx, l.Current().Len())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
