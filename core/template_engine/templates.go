package template_engine

import "embed"

//go:embed templates
var TemplateFS embed.FS

var TEMPLATES = struct {
	SOLIDITY struct {
		PROMISE TemplateRef
		REMOTE  TemplateRef
		IMPORT  TemplateRef
	}
}{
	SOLIDITY: struct {
		PROMISE TemplateRef
		REMOTE  TemplateRef
		IMPORT  TemplateRef
	}{
		PROMISE: TemplateRef{Path: "solidity/promise.sol.tmpl"},
		REMOTE:  TemplateRef{Path: "solidity/remote.sol.tmpl"},
		IMPORT:  TemplateRef{Path: "solidity/import.sol.tmpl"},
	},
}
