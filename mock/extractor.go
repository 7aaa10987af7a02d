package mock

import "github.com/mkaminski/websave"

var _ websave.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of websave.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*websave.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*websave.ExtractResult, error) {
	return e.ExtractFn(html)
}
