package main

import (
	"fmt"
	"time"

	"github.com/mkaminski/websave"
	"github.com/mkaminski/websave/batch"
)

// Run executes the search-to-pdf command. Per-item conversion failures
// are reported but do not fail the command; only the search itself,
// the output directory, or browser startup are fatal.
func (c *SearchToPDFCmd) Run(deps *Dependencies) error {
	kind, err := websave.ParseSearchKind(c.Kind)
	if err != nil {
		return err
	}
	format, err := websave.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	naming, err := websave.ParseNamingStrategy(c.Naming)
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

	// The search runs before any rendering so a bad credential fails
	// fast with nothing written.
	results, err := deps.Search.Search(deps.Ctx, kind, c.Query, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", websave.ErrorMessage(err))
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found.")
		return nil
	}
	if c.MaxResults > 0 && len(results) > c.MaxResults {
		results = results[:c.MaxResults]
	}

	job := &batch.Job{
		Results:     results,
		Naming:      naming,
		Format:      format,
		OutputDir:   c.OutputDir,
		Concurrency: c.Concurrency,
		ItemTimeout: time.Duration(c.Timeout * float64(time.Second)),
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Converting %d results to %s\n", event.Total, c.OutputDir)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", event.URL, event.Error)
		case batch.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s\n", event.URL)
		}
	}

	summary, err := deps.Runner.Run(deps.Ctx, job, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", websave.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Converted %d of %d results", summary.Succeeded, summary.Total)
	if summary.Failed > 0 || summary.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed, %d skipped)", summary.Failed, summary.Skipped)
	}
	fmt.Fprintln(deps.Stdout)

	n := 0
	for _, out := range summary.Outcomes {
		for _, path := range out.OutputPaths {
			n++
			fmt.Fprintf(deps.Stdout, "  %d. %s\n", n, path)
		}
	}

	return nil
}
