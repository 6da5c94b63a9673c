package generator

import (
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/tristendillon/promify/core/models"
)

type SpliceResult struct {
	Content  string
	Inserted []string
	// NoPragma is set when at least one statement was missing but the
	// pragma keyword was not found.
	NoPragma bool
}

// SpliceImports inserts every statement not yet present in content right
// after the first pragma line, preserving statement order. A pragma on the
// last line without a newline gets one before the imports.
func SpliceImports(content, pragma string, statements []string) SpliceResult {
	var missing []string
	for _, stmt := range statements {
		if strings.Contains(content, stmt) || slices.Contains(missing, stmt) {
			continue
		}
		missing = append(missing, stmt)
	}
	if len(missing) == 0 {
		return SpliceResult{Content: content}
	}

	idx := strings.Index(content, pragma)
	if idx == -1 {
		return SpliceResult{Content: content, NoPragma: true}
	}

	block := strings.Join(missing, "")
	nl := strings.IndexByte(content[idx:], '\n')
	if nl == -1 {
		return SpliceResult{Content: content + "\n" + block, Inserted: missing}
	}

	end := idx + nl + 1
	return SpliceResult{
		Content:  content[:end] + block + content[end:],
		Inserted: missing,
	}
}

// SpliceImportsLegacy checks and splices every statement against the
// original content, so each splice discards the previous one and only the
// last missing statement survives. A pragma without a trailing newline puts
// the import at offset zero.
func SpliceImportsLegacy(content, pragma string, statements []string) SpliceResult {
	result := SpliceResult{Content: content}

	for _, stmt := range statements {
		if strings.Contains(content, stmt) {
			continue
		}

		idx := strings.Index(content, pragma)
		if idx == -1 {
			result.NoPragma = true
			continue
		}

		end := 0
		if nl := strings.IndexByte(content[idx:], '\n'); nl != -1 {
			end = idx + nl + 1
		}

		result.Content = content[:end] + stmt + content[end:]
		result.Inserted = []string{stmt}
	}

	return result
}

func (g *InterfaceGenerator) patchImports(src *models.SourceFile, perm fs.FileMode, statements []string) ([]string, error) {
	splice := SpliceImports
	if g.cfg.LegacyImportSplice {
		splice = SpliceImportsLegacy
	}

	result := splice(src.Content, g.cfg.Pragma, statements)
	if result.NoPragma {
		g.log.Warn("No %q line found in %s, import statement not added", g.cfg.Pragma, src.Path)
	}
	if len(result.Inserted) == 0 {
		g.log.Debug("Imports already present in %s", src.Path)
		return nil, nil
	}

	g.log.Info("Adding import statement to %s", src.Path)
	if err := os.WriteFile(src.Path, []byte(result.Content), perm); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", src.Path, err)
	}

	src.Content = result.Content
	return result.Inserted, nil
}
