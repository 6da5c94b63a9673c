package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/tristendillon/promify/core/logger"
	"github.com/tristendillon/promify/core/models"
	"github.com/tristendillon/promify/core/walker"
)

// Run processes the named file when name is set, otherwise every source file
// under the source root.
func (g *InterfaceGenerator) Run(ctx context.Context, name string) (*models.RunSummary, error) {
	var (
		summary *models.RunSummary
		err     error
	)
	if name != "" {
		summary, err = g.RunFile(name)
	} else {
		summary, err = g.RunAll(ctx)
	}

	level := logger.DEBUG
	if summary.Failed > 0 {
		level = logger.WARN
	}
	g.log.Log(level, "Run summary: scanned=%d generated=%d skipped=%d patched=%d failed=%d",
		summary.Scanned, summary.Generated, summary.Skipped, summary.Patched, summary.Failed)
	return summary, err
}

// RunFile processes <source root>/<name><extension>.
func (g *InterfaceGenerator) RunFile(name string) (*models.RunSummary, error) {
	summary := &models.RunSummary{}
	path := filepath.Join(g.cfg.SourceRoot, name+g.cfg.Extension)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return summary, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	result, err := g.GenerateFile(path)
	summary.Add(result)
	return summary, err
}

// RunAll processes every discovered source file. A failing file is logged
// and counted; the remaining files are still processed and all failures are
// returned together.
func (g *InterfaceGenerator) RunAll(ctx context.Context) (*models.RunSummary, error) {
	summary := &models.RunSummary{}

	if _, err := os.Stat(g.cfg.SourceRoot); errors.Is(err, os.ErrNotExist) {
		g.log.Warn("Source root %s does not exist, nothing to do", g.cfg.SourceRoot)
		return summary, nil
	}

	sw := walker.NewSourceWalker(g.cfg, g.log)
	if err := sw.ValidatePatterns(); err != nil {
		return summary, err
	}

	files, err := sw.Walk()
	if err != nil {
		return summary, err
	}

	var errs error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, multierr.Append(errs, err)
		}

		result, err := g.GenerateFile(path)
		if err != nil {
			g.log.Error("Failed to process %s: %v", path, err)
			errs = multierr.Append(errs, err)
		}
		summary.Add(result)
	}

	return summary, errs
}
