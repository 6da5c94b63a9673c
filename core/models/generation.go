package models

type GenerationResult struct {
	Source    string
	Output    string
	Contracts []string
	Functions []AsyncFunction
	// Imports lists the statements spliced into the source on this run.
	Imports []string
	Skipped bool
	Reason  string
}

func (r *GenerationResult) Patched() bool {
	return len(r.Imports) > 0
}

type RunSummary struct {
	Scanned   int
	Generated int
	Skipped   int
	Patched   int
	Failed    int
}

func (s *RunSummary) Add(result *GenerationResult) {
	s.Scanned++
	if result == nil {
		s.Failed++
		return
	}
	if result.Skipped {
		s.Skipped++
		return
	}
	s.Generated++
	if result.Patched() {
		s.Patched++
	}
}
