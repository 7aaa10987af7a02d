package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mkaminski/websave"
	"github.com/mkaminski/websave/batch"
	"github.com/mkaminski/websave/brave"
	"github.com/mkaminski/websave/goquery"
	"github.com/mkaminski/websave/htmltomarkdown"
	wshttp "github.com/mkaminski/websave/http"
	"github.com/mkaminski/websave/markdown"
	"github.com/mkaminski/websave/rod"
	"github.com/mkaminski/websave/trafilatura"
)

// requestsPerDomain throttles batch renders per host to stay polite.
const requestsPerDomain = 1.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Service overrides for end-to-end testing. When nil, Run wires
	// the real implementations.
	Search   websave.SearchService
	PDF      websave.PDFRenderer
	Markdown websave.MarkdownRenderer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("websave"),
		kong.Description("Convert web pages to PDF/Markdown, directly or via Brave search"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'websave --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := commandName(kongCtx)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if cmd == "search" || cmd == "search-to-pdf" {
		deps.Search = m.Search
		if deps.Search == nil {
			apiKey := cli.Search.APIKey
			if cmd == "search-to-pdf" {
				apiKey = cli.SearchToPDF.APIKey
			}
			client, err := brave.NewClient(apiKey)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: set BRAVE_API_KEY or pass --api-key")
				return err
			}
			deps.Search = client
		}
	}

	// Renderers are wired only for the formats the command will write,
	// so a markdown-only run never launches a browser.
	var format websave.Format
	wait, extractor := 0.0, ""
	switch cmd {
	case "convert":
		format, _ = websave.ParseFormat(cli.Convert.Format)
		wait, extractor = cli.Convert.Wait, cli.Convert.Extractor
	case "search-to-pdf":
		format, _ = websave.ParseFormat(cli.SearchToPDF.Format)
		wait, extractor = cli.SearchToPDF.Wait, cli.SearchToPDF.Extractor
	}

	if format.IncludesPDF() {
		deps.PDF = m.PDF
		if deps.PDF == nil {
			manager, err := rod.NewManager()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer manager.Close()

			settle := time.Duration(wait * float64(time.Second))
			renderer := rod.NewRenderer(manager, rod.WithSettleDelay(settle))
			deps.PDF = rod.NewLoggingRenderer(renderer, logger)
		}
	}

	if format.IncludesMarkdown() {
		deps.Markdown = m.Markdown
		if deps.Markdown == nil {
			fetcher := wshttp.NewFetcher()
			defer fetcher.Close()

			var ext websave.Extractor = trafilatura.NewExtractor()
			if extractor == "selector" {
				ext = goquery.NewExtractor()
			}
			deps.Markdown = markdown.NewGenerator(fetcher, ext, htmltomarkdown.NewConverter())
		}
	}

	if cmd == "search-to-pdf" {
		deps.Runner = &batch.Runner{
			PDF:      deps.PDF,
			Markdown: deps.Markdown,
			Limiter:  batch.NewDomainLimiter(requestsPerDomain),
			Logger:   logger,
		}
	}

	return kongCtx.Run(deps)
}

// commandName returns the leading command word, e.g. "search-to-pdf"
// for "search-to-pdf <kind> <query>".
func commandName(kongCtx *kong.Context) string {
	fields := strings.Fields(kongCtx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
