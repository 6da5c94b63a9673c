package walker

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/shibumi/go-pathspec"

	"github.com/tristendillon/promify/core/config"
	"github.com/tristendillon/promify/core/logger"
)

type SourceWalker struct {
	Root      string
	Extension string
	// Exclude holds gitignore-style patterns relative to Root.
	Exclude []string
	// SkipDirs are skipped entirely, compared as cleaned paths.
	SkipDirs []string

	log *logger.Logger
}

func NewSourceWalker(cfg *config.Config, log *logger.Logger) *SourceWalker {
	return &SourceWalker{
		Root:      cfg.SourceRoot,
		Extension: cfg.Extension,
		Exclude:   cfg.Exclude,
		SkipDirs:  []string{cfg.OutputRoot, filepath.Join(cfg.SourceRoot, ".git")},
		log:       log,
	}
}

// ValidatePatterns reports the first exclude pattern go-pathspec rejects.
func (w *SourceWalker) ValidatePatterns() error {
	for _, pattern := range w.Exclude {
		if _, err := pathspec.GitIgnore([]string{pattern}, "probe"); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Walk returns every file under Root carrying Extension, in WalkDir order.
func (w *SourceWalker) Walk() ([]string, error) {
	var files []string

	err := filepath.WalkDir(w.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != w.Root && w.ShouldSkip(path, true) {
				w.log.Debug("Excluding directory: %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), w.Extension) {
			return nil
		}

		if w.ShouldSkip(path, false) {
			w.log.Debug("Excluding file: %s", path)
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", w.Root, err)
	}

	w.log.Debug("Discovered %d %s files under %s", len(files), w.Extension, w.Root)
	return files, nil
}

func (w *SourceWalker) ShouldSkip(path string, isDir bool) bool {
	cleaned := filepath.Clean(path)
	for _, dir := range w.SkipDirs {
		dir = filepath.Clean(dir)
		if cleaned == dir || strings.HasPrefix(cleaned, dir+string(filepath.Separator)) {
			return true
		}
	}

	if len(w.Exclude) == 0 {
		return false
	}

	rel, err := filepath.Rel(w.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}

	candidates := []string{filepath.ToSlash(rel)}
	if isDir {
		candidates = append(candidates, filepath.ToSlash(rel)+"/")
	}

	for _, candidate := range candidates {
		ignore, err := pathspec.GitIgnore(w.Exclude, candidate)
		if err != nil {
			w.log.Warn("Invalid exclude pattern: %v", err)
			return false
		}
		if ignore {
			return true
		}
	}
	return false
}
