package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mkaminski/websave"
	"github.com/mkaminski/websave/batch"
)

// Dependencies holds the services and configuration commands run with.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Search   websave.SearchService
	PDF      websave.PDFRenderer
	Markdown websave.MarkdownRenderer
	Runner   *batch.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Convert     ConvertCmd     `cmd:"" help:"Convert a URL to PDF and/or Markdown"`
	Search      SearchCmd      `cmd:"" help:"Run a Brave search and print the results"`
	SearchToPDF SearchToPDFCmd `cmd:"" name:"search-to-pdf" help:"Search and convert the results to files"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	URL       string  `arg:"" help:"Page URL"`
	Output    string  `short:"o" type:"path" help:"Output file path (defaults to <host>.<ext> in the working directory)"`
	Format    string  `short:"f" default:"pdf" enum:"pdf,markdown,md,both" help:"Output format"`
	Wait      float64 `short:"w" default:"2" help:"Seconds to let the page settle before printing"`
	Timeout   float64 `default:"60" help:"Conversion timeout in seconds"`
	Extractor string  `default:"article" enum:"article,selector" help:"Markdown content extractor"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Kind      string `arg:"" enum:"web,news,local" help:"Search vertical"`
	Query     string `arg:"" help:"Search query"`
	Count     int    `short:"c" help:"Number of results to return"`
	Offset    int    `help:"Pagination offset"`
	Country   string `help:"Country code for news/local searches"`
	Language  string `short:"l" help:"Language code for news searches"`
	Freshness string `help:"Freshness filter: h, d, w, m or y"`
	APIKey    string `name:"api-key" help:"Brave API key (falls back to BRAVE_API_KEY)"`
}

// SearchToPDFCmd is the "search-to-pdf" subcommand.
type SearchToPDFCmd struct {
	Kind        string  `arg:"" enum:"web,news,local" help:"Search vertical"`
	Query       string  `arg:"" help:"Search query"`
	MaxResults  int     `short:"m" default:"5" help:"Maximum number of results to convert"`
	OutputDir   string  `short:"o" default:"./pdf_downloads" type:"path" help:"Output directory"`
	Format      string  `default:"pdf" enum:"pdf,markdown,md,both" help:"Output format"`
	Naming      string  `default:"title-domain" enum:"title,domain,sequential,title-domain" help:"File naming strategy"`
	Count       int     `help:"Number of search results to request"`
	Offset      int     `help:"Pagination offset"`
	Country     string  `help:"Country code for news/local searches"`
	Language    string  `short:"l" help:"Language code for news searches"`
	Freshness   string  `help:"Freshness filter: h, d, w, m or y"`
	APIKey      string  `name:"api-key" help:"Brave API key (falls back to BRAVE_API_KEY)"`
	Wait        float64 `short:"w" default:"2" help:"Seconds to let each page settle before printing"`
	Timeout     float64 `default:"60" help:"Per-item timeout in seconds"`
	Concurrency int     `short:"c" default:"3" help:"Concurrent conversion limit"`
	Extractor   string  `default:"article" enum:"article,selector" help:"Markdown content extractor"`
}
