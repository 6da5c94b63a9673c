package models

type SourceFile struct {
	Path    string
	Content string
}

// AsyncFunction is one `external async` declaration. Params and ReturnType
// hold the raw text between the parentheses.
type AsyncFunction struct {
	Name       string
	Params     string
	ReturnType string
}

func (f AsyncFunction) PromiseName() string {
	return f.Name + "Promise"
}

type ParsedFile struct {
	Path      string
	Contracts []string
	Functions []AsyncFunction
}

func (p *ParsedFile) HasAsyncFunctions() bool {
	return len(p.Functions) > 0
}

func (p *ParsedFile) PromiseNames() []string {
	names := make([]string, 0, len(p.Functions))
	for _, fn := range p.Functions {
		names = append(names, fn.PromiseName())
	}
	return names
}
