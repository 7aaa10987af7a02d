package main

import (
	"fmt"

	"github.com/mkaminski/websave"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	kind, err := websave.ParseSearchKind(c.Kind)
	if err != nil {
		return err
	}

	opts := websave.SearchOptions{
		Count:     c.Count,
		Offset:    c.Offset,
		Country:   c.Country,
		Language:  c.Language,
		Freshness: c.Freshness,
	}

	results, err := deps.Search.Search(deps.Ctx, kind, c.Query, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", websave.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found.")
		return nil
	}

	for _, res := range results {
		fmt.Fprintf(deps.Stdout, "%d. %s\n   %s\n", res.Rank+1, res.Title, res.URL)
		if res.Description != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", res.Description)
		}
	}

	return nil
}
