package template_engine

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

type TemplateRef struct {
	Path string
}

type TemplateEngine struct {
	funcMap template.FuncMap
	parsed  map[string]*template.Template
}

func getDefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"replace":   strings.ReplaceAll,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"join":      strings.Join,
	}
}

func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{
		funcMap: getDefaultFuncMap(),
		parsed:  make(map[string]*template.Template),
	}
}

func (te *TemplateEngine) AddFunc(name string, fn interface{}) {
	te.funcMap[name] = fn
	// already parsed templates were bound to the old func map
	te.parsed = make(map[string]*template.Template)
}

func (te *TemplateEngine) load(ref TemplateRef) (*template.Template, error) {
	if tmpl, ok := te.parsed[ref.Path]; ok {
		return tmpl, nil
	}

	templatePath := path.Join("templates", ref.Path)
	content, err := TemplateFS.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	tmpl, err := template.New(path.Base(ref.Path)).Funcs(te.funcMap).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", ref.Path, err)
	}

	te.parsed[ref.Path] = tmpl
	return tmpl, nil
}

func (te *TemplateEngine) Render(ref TemplateRef, data interface{}) (string, error) {
	tmpl, err := te.load(ref)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", ref.Path, err)
	}
	return sb.String(), nil
}

// WriteFile truncates outputPath and writes the blocks in order, creating
// missing parent directories first.
func (te *TemplateEngine) WriteFile(outputPath string, blocks ...string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}

	for _, block := range blocks {
		if _, err := outputFile.WriteString(block); err != nil {
			outputFile.Close()
			return fmt.Errorf("failed to write output file %s: %w", outputPath, err)
		}
	}

	if err := outputFile.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", outputPath, err)
	}
	return nil
}

func (te *TemplateEngine) ListTemplates() ([]string, error) {
	var templates []string
	err := fs.WalkDir(TemplateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			templates = append(templates, strings.TrimPrefix(p, "templates/"))
		}
		return nil
	})
	return templates, err
}

// ValidateTemplate parses ref so broken templates fail before any file is
// touched.
func (te *TemplateEngine) ValidateTemplate(ref TemplateRef) error {
	_, err := te.load(ref)
	return err
}
