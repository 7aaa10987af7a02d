package main

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkaminski/websave"
	"github.com/mkaminski/websave/fs"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		err := websave.Errorf(websave.EINVALID, "URL must use http or https: %q", c.URL)
		fmt.Fprintf(deps.Stderr, "error: %s\n", websave.ErrorMessage(err))
		return err
	}

	format, err := websave.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	dir, stem := outputTarget(c.Output, u)

	writer := fs.NewWriter()
	if err := writer.EnsureDir(dir); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", websave.ErrorMessage(err))
		return err
	}

	ctx, cancel := context.WithTimeout(deps.Ctx, time.Duration(c.Timeout*float64(time.Second)))
	defer cancel()

	for _, ext := range format.Extensions() {
		var data []byte
		switch ext {
		case "pdf":
			data, err = deps.PDF.RenderPDF(ctx, c.URL)
		case "md":
			var md string
			md, err = deps.Markdown.RenderMarkdown(ctx, c.URL)
			data = []byte(md)
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", websave.ErrorMessage(err))
			return err
		}

		path, err := writer.WriteFile(dir, stem, ext, data)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", websave.ErrorMessage(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "Saved %s (%d bytes)\n", path, len(data))
	}

	return nil
}

// outputTarget derives the output directory and filename stem. With no
// explicit output the page's host names the file; with one, its
// extension is dropped so the both format can write .pdf and .md
// siblings.
func outputTarget(output string, u *url.URL) (dir, stem string) {
	if output == "" {
		host := u.Hostname()
		if host == "" {
			host = "page"
		}
		return ".", host
	}

	base := filepath.Base(output)
	return filepath.Dir(output), strings.TrimSuffix(base, filepath.Ext(base))
}
