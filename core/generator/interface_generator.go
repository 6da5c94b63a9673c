package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tristendillon/promify/core/ast"
	"github.com/tristendillon/promify/core/config"
	"github.com/tristendillon/promify/core/logger"
	"github.com/tristendillon/promify/core/models"
	"github.com/tristendillon/promify/core/template_engine"
)

var (
	ErrSourceNotFound    = errors.New("source file does not exist")
	ErrOutsideSourceRoot = errors.New("path is outside the source root")
)

const (
	ReasonNotAFile         = "not a regular file"
	ReasonNoAsyncFunctions = "no async functions"
)

type InterfaceGenerator struct {
	cfg    *config.Config
	log    *logger.Logger
	engine *template_engine.TemplateEngine
}

func NewInterfaceGenerator(cfg *config.Config, log *logger.Logger) *InterfaceGenerator {
	return &InterfaceGenerator{
		cfg:    cfg,
		log:    log,
		engine: template_engine.NewTemplateEngine(),
	}
}

// GenerateFile runs the whole pipeline for one source file: extract, render,
// write the Remote file, then patch imports into the source.
func (g *InterfaceGenerator) GenerateFile(path string) (*models.GenerationResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		g.log.Warn("Skipping non-file path: %s", path)
		return &models.GenerationResult{Source: path, Skipped: true, Reason: ReasonNotAFile}, nil
	}

	g.log.Info("Reading source file: %s", path)
	src, parsed, err := ast.ParseSource(path)
	if err != nil {
		return nil, err
	}
	g.log.Debug("Found contracts: %v", parsed.Contracts)
	g.log.Debug("Found async functions: %v", parsed.Functions)

	result := &models.GenerationResult{
		Source:    path,
		Contracts: parsed.Contracts,
		Functions: parsed.Functions,
	}

	if !parsed.HasAsyncFunctions() {
		g.log.Info("No async functions found in %s. Skipping file generation.", path)
		result.Skipped = true
		result.Reason = ReasonNoAsyncFunctions
		return result, nil
	}

	outputPath, err := g.OutputPath(path)
	if err != nil {
		return nil, err
	}
	result.Output = outputPath

	blocks, err := g.RenderInterfaces(parsed)
	if err != nil {
		return nil, err
	}

	g.log.Info("Writing generated interfaces to: %s", outputPath)
	if err := g.engine.WriteFile(outputPath, blocks...); err != nil {
		return nil, err
	}

	statements, err := g.RenderImports(parsed, ImportPath(path, outputPath))
	if err != nil {
		return nil, err
	}

	imports, err := g.patchImports(src, info.Mode().Perm(), statements)
	if err != nil {
		return nil, err
	}
	result.Imports = imports

	return result, nil
}

// OutputPath maps src/a/b/Foo.sol to <output root>/a/b/RemoteFoo.sol.
func (g *InterfaceGenerator) OutputPath(sourcePath string) (string, error) {
	rel, err := filepath.Rel(g.cfg.SourceRoot, sourcePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideSourceRoot, sourcePath)
	}

	dir, base := filepath.Split(rel)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(g.cfg.OutputRoot, dir, "Remote"+stem+g.cfg.Extension), nil
}

// ImportPath is outputPath relative to the directory of sourcePath, in the
// slash form used by import statements.
func ImportPath(sourcePath, outputPath string) string {
	rel, err := filepath.Rel(filepath.Dir(sourcePath), outputPath)
	if err != nil {
		rel = outputPath
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return rel
	}
	return "./" + rel
}
