package ast

import (
	"fmt"
	"os"
	"regexp"

	"github.com/tristendillon/promify/core/models"
)

var (
	// contract Name [is Base, Other] {
	contractPattern = regexp.MustCompile(`contract\s+(\w+)\s*(?:is\s+[\w, ]+)?\s*\{`)

	// function name(params) external async returns (ret)
	asyncFunctionPattern = regexp.MustCompile(`function\s+(\w+)\s*\((.*?)\)\s*external\s+async\s*returns\s*\((.*?)\)`)
)

// ExtractContracts returns every declared contract name in order of
// appearance. Duplicates are kept.
func ExtractContracts(content string) []string {
	matches := contractPattern.FindAllStringSubmatch(content, -1)
	contracts := make([]string, 0, len(matches))
	for _, m := range matches {
		contracts = append(contracts, m[1])
	}
	return contracts
}

func ExtractAsyncFunctions(content string) []models.AsyncFunction {
	matches := asyncFunctionPattern.FindAllStringSubmatch(content, -1)
	functions := make([]models.AsyncFunction, 0, len(matches))
	for _, m := range matches {
		functions = append(functions, models.AsyncFunction{
			Name:       m[1],
			Params:     m[2],
			ReturnType: m[3],
		})
	}
	return functions
}

func ParseContent(path, content string) *models.ParsedFile {
	return &models.ParsedFile{
		Path:      path,
		Contracts: ExtractContracts(content),
		Functions: ExtractAsyncFunctions(content),
	}
}

// ParseSource reads path fully and extracts its declarations. The returned
// SourceFile is the snapshot any later rewrite starts from.
func ParseSource(path string) (*models.SourceFile, *models.ParsedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	src := &models.SourceFile{Path: path, Content: string(data)}
	return src, ParseContent(path, src.Content), nil
}
