package generator

import (
	"github.com/tristendillon/promify/core/models"
	"github.com/tristendillon/promify/core/template_engine"
)

type promiseData struct {
	Function models.AsyncFunction
}

type remoteData struct {
	Contract  string
	Functions []models.AsyncFunction
}

type importData struct {
	Contract     string
	PromiseNames []string
	Path         string
}

// RenderInterfaces returns one promise block per async function followed by
// one remote block per contract. Every remote block lists every function.
func (g *InterfaceGenerator) RenderInterfaces(parsed *models.ParsedFile) ([]string, error) {
	blocks := make([]string, 0, len(parsed.Functions)+len(parsed.Contracts))

	for _, fn := range parsed.Functions {
		block, err := g.engine.Render(template_engine.TEMPLATES.SOLIDITY.PROMISE, promiseData{Function: fn})
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
		g.log.Debug("Generated promise interface for function: %s", fn.Name)
	}

	for _, contract := range parsed.Contracts {
		block, err := g.engine.Render(template_engine.TEMPLATES.SOLIDITY.REMOTE, remoteData{
			Contract:  contract,
			Functions: parsed.Functions,
		})
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
		g.log.Debug("Generated remote interface for contract: %s", contract)
	}

	return blocks, nil
}

// RenderImports returns one import statement per contract, in contract order.
func (g *InterfaceGenerator) RenderImports(parsed *models.ParsedFile, importPath string) ([]string, error) {
	promiseNames := parsed.PromiseNames()
	statements := make([]string, 0, len(parsed.Contracts))

	for _, contract := range parsed.Contracts {
		stmt, err := g.engine.Render(template_engine.TEMPLATES.SOLIDITY.IMPORT, importData{
			Contract:     contract,
			PromiseNames: promiseNames,
			Path:         importPath,
		})
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	return statements, nil
}
