package mock

import "github.com/mkaminski/websave"

var _ websave.Converter = (*Converter)(nil)

// Converter is a mock implementation of websave.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
