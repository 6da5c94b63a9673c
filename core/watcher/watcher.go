package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tristendillon/promify/core/config"
	"github.com/tristendillon/promify/core/logger"
	"github.com/tristendillon/promify/core/walker"
)

// ChangeHandler receives the source files changed during one debounce
// window, sorted.
type ChangeHandler func(paths []string)

type FileWatcher struct {
	watcher  *fsnotify.Watcher
	walker   *walker.SourceWalker
	debounce time.Duration
	onChange ChangeHandler
	log      *logger.Logger

	pending map[string]struct{}
}

func NewFileWatcher(cfg *config.Config, log *logger.Logger, onChange ChangeHandler) (*FileWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  fw,
		walker:   walker.NewSourceWalker(cfg, log),
		debounce: cfg.Watch.Debounce,
		onChange: onChange,
		log:      log,
		pending:  make(map[string]struct{}),
	}, nil
}

// Watch blocks until ctx is done or the underlying watcher fails. The
// watcher is closed on return.
func (fw *FileWatcher) Watch(ctx context.Context) error {
	defer fw.Close()

	if err := fw.addWatchersRecursively(fw.walker.Root); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}
	fw.log.Info("Watching %s for changes", fw.walker.Root)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !fw.handleEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			fw.flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			fw.log.Error("Watcher error: %v", err)
		}
	}
}

// handleEvent records the event and reports whether a regeneration should
// be scheduled.
func (fw *FileWatcher) handleEvent(event fsnotify.Event) bool {
	if fw.walker.ShouldSkip(event.Name, false) {
		return false
	}
	fw.log.Debug("File event: %s %s", event.Op, event.Name)

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		delete(fw.pending, event.Name)
		return false
	}

	if event.Has(fsnotify.Create) {
		if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
			if fw.walker.ShouldSkip(event.Name, true) {
				return false
			}
			fw.log.Debug("Adding watcher for new directory: %s", event.Name)
			if err := fw.addWatchersRecursively(event.Name); err != nil {
				fw.log.Error("Failed to watch %s: %v", event.Name, err)
			}
			return fw.queueExisting(event.Name)
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if !strings.HasSuffix(event.Name, fw.walker.Extension) {
		return false
	}

	fw.pending[event.Name] = struct{}{}
	return true
}

// queueExisting picks up files that landed in a new directory before its
// watch was registered.
func (fw *FileWatcher) queueExisting(dir string) bool {
	queued := false
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, fw.walker.Extension) && !fw.walker.ShouldSkip(path, false) {
			fw.pending[path] = struct{}{}
			queued = true
		}
		return nil
	})
	return queued
}

func (fw *FileWatcher) flush() {
	if len(fw.pending) == 0 {
		return
	}

	paths := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	fw.pending = make(map[string]struct{})

	fw.log.Debug("File changes detected, regenerating %d file(s)", len(paths))
	fw.onChange(paths)
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

func (fw *FileWatcher) addWatchersRecursively(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != fw.walker.Root && fw.walker.ShouldSkip(path, true) {
			fw.log.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		fw.log.Debug("Adding watcher for: %s", path)
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}

		return nil
	})
}
