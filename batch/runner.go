// Package batch provides the search-result-to-file conversion pipeline.
// It fans out over a result list under a concurrency bound, resolves a
// unique output stem per result, renders each requested format, and
// folds the per-item outcomes into an ordered summary. Individual item
// failures never abort the batch.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mkaminski/websave"
	"github.com/mkaminski/websave/fs"
)

// DefaultConcurrency bounds in-flight renders when a job does not set
// its own limit. Kept low to respect browser resource limits.
const DefaultConcurrency = 3

// DefaultItemTimeout bounds a single item's render when a job does not
// set its own.
const DefaultItemTimeout = 60 * time.Second

// Job describes one batch conversion. It is created once per
// invocation and read-only for the lifetime of the batch.
type Job struct {
	Results     []websave.SearchResult
	Naming      websave.NamingStrategy
	Format      websave.Format
	OutputDir   string
	Concurrency int
	ItemTimeout time.Duration
}

// Status classifies the outcome of one item.
type Status int

// Item statuses.
const (
	StatusSuccess Status = iota
	StatusFailed
	StatusSkipped
)

// FailureReason classifies why an item failed.
type FailureReason string

// Failure reasons for StatusFailed outcomes.
const (
	ReasonTimeout FailureReason = "timeout"
	ReasonRender  FailureReason = "render"
	ReasonIO      FailureReason = "io"
)

// Stages at which a format can fail.
const (
	stageRender = "render"
	stageWrite  = "write"
)

// FormatError records one requested format that failed for an item.
// A failed format never blocks the item's other format.
type FormatError struct {
	Ext   string // file extension: pdf or md
	Stage string // render or write
	Err   error
}

// ItemOutcome is the per-result outcome. Exactly one exists per input
// result; no result is silently dropped.
type ItemOutcome struct {
	Result       websave.SearchResult
	OutputPaths  []string
	Status       Status
	Reason       FailureReason // set when Status is StatusFailed
	Detail       string        // human-readable detail for Failed/Skipped
	ContentHash  string        // xxhash of the first written artifact
	FormatErrors []FormatError
}

// Summary aggregates the outcomes of one batch. Outcomes preserve the
// original result ordering regardless of completion order.
type Summary struct {
	ID        string
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Outcomes  []ItemOutcome
}

// ProgressEvent reports progress while a batch runs.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Runner drives batch conversions. PDF and Markdown renderers are
// required only for the formats a job requests. Limiter and Logger are
// optional.
type Runner struct {
	PDF      websave.PDFRenderer
	Markdown websave.MarkdownRenderer
	Writer   *fs.Writer
	Limiter  *DomainLimiter
	Logger   *slog.Logger
}

// Run executes the job and returns a summary covering every input
// result. Only output-directory setup fails the batch as a whole;
// per-item render, timeout and write errors are recorded in the item's
// outcome and never interrupt sibling work.
func (r *Runner) Run(ctx context.Context, job *Job, progress ProgressFunc) (*Summary, error) {
	writer := r.Writer
	if writer == nil {
		writer = fs.NewWriter()
	}
	if err := writer.EnsureDir(job.OutputDir); err != nil {
		return nil, err
	}

	concurrency := job.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	timeout := job.ItemTimeout
	if timeout <= 0 {
		timeout = DefaultItemTimeout
	}

	summary := &Summary{
		ID:    uuid.New().String(),
		Total: len(job.Results),
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: summary.Total})
	}

	// Duplicate URLs are detected up front so the skip decision depends
	// on input order, not on completion order.
	firstIndex := make(map[string]int, len(job.Results))
	duplicate := make([]bool, len(job.Results))
	for i, res := range job.Results {
		if _, ok := firstIndex[res.URL]; ok {
			duplicate[i] = true
			continue
		}
		firstIndex[res.URL] = i
	}

	resolver := NewResolver()
	outcomes := make([]ItemOutcome, len(job.Results))

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, res := range job.Results {
		g.Go(func() error {
			outcomes[i] = r.processItem(gctx, job, resolver, writer, res, duplicate[i], timeout)

			done := int(completed.Add(1))
			if progress != nil {
				progress(progressEventFor(&outcomes[i], done, summary.Total))
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, out := range outcomes {
		switch out.Status {
		case StatusSuccess:
			summary.Succeeded++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		}
	}
	summary.Outcomes = outcomes

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: summary.Total, Total: summary.Total})
	}
	if r.Logger != nil {
		r.Logger.Info("batch finished",
			"batch", summary.ID,
			"total", summary.Total,
			"succeeded", summary.Succeeded,
			"failed", summary.Failed,
			"skipped", summary.Skipped,
		)
	}

	return summary, nil
}

// processItem converts a single result. The returned outcome is always
// populated; errors are captured, never propagated.
func (r *Runner) processItem(ctx context.Context, job *Job, resolver *Resolver, writer *fs.Writer, res websave.SearchResult, dup bool, timeout time.Duration) ItemOutcome {
	out := ItemOutcome{Result: res}

	if dup {
		out.Status = StatusSkipped
		out.Detail = "duplicate url"
		return out
	}

	u, err := url.Parse(res.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		out.Status = StatusSkipped
		out.Detail = fmt.Sprintf("unsupported url %q", res.URL)
		return out
	}

	exts := job.Format.Extensions()

	// Stem resolution is the single mutual-exclusion point for naming.
	// The writer's Exists check extends the suffixing rule to files
	// already present in the output directory.
	stem := resolver.Resolve(res, job.Naming, func(stem string) bool {
		return writer.Exists(job.OutputDir, stem, exts)
	})

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx, u.Host); err != nil {
			out.Status = StatusFailed
			out.Reason = ReasonTimeout
			out.Detail = fmt.Sprintf("rate limit wait: %v", err)
			return out
		}
	}

	ictx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for _, ext := range exts {
		data, rerr := r.renderFormat(ictx, ext, res.URL)
		if rerr != nil {
			out.FormatErrors = append(out.FormatErrors, FormatError{Ext: ext, Stage: stageRender, Err: rerr})
			if r.Logger != nil {
				r.Logger.Debug("render failed", "url", res.URL, "ext", ext, "err", rerr)
			}
			continue
		}

		path, werr := writer.WriteFile(job.OutputDir, stem, ext, data)
		if werr != nil {
			out.FormatErrors = append(out.FormatErrors, FormatError{Ext: ext, Stage: stageWrite, Err: werr})
			if r.Logger != nil {
				r.Logger.Debug("write failed", "url", res.URL, "ext", ext, "err", werr)
			}
			continue
		}

		if out.ContentHash == "" {
			out.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64(data))
		}
		out.OutputPaths = append(out.OutputPaths, path)
	}

	// An item succeeds if at least one requested format wrote; failed
	// formats stay recorded in FormatErrors.
	if len(out.OutputPaths) > 0 {
		out.Status = StatusSuccess
		return out
	}

	out.Status = StatusFailed
	out.Reason, out.Detail = classifyFailure(out.FormatErrors)
	return out
}

// renderFormat invokes the renderer for one output extension.
func (r *Runner) renderFormat(ctx context.Context, ext, url string) ([]byte, error) {
	switch ext {
	case "pdf":
		if r.PDF == nil {
			return nil, websave.Errorf(websave.EINTERNAL, "no PDF renderer configured")
		}
		return r.PDF.RenderPDF(ctx, url)
	case "md":
		if r.Markdown == nil {
			return nil, websave.Errorf(websave.EINTERNAL, "no Markdown renderer configured")
		}
		md, err := r.Markdown.RenderMarkdown(ctx, url)
		if err != nil {
			return nil, err
		}
		return []byte(md), nil
	default:
		return nil, websave.Errorf(websave.EINVALID, "unknown output extension %q", ext)
	}
}

// classifyFailure reduces per-format errors to a single reason:
// timeout wins over render, render wins over io.
func classifyFailure(ferrs []FormatError) (FailureReason, string) {
	if len(ferrs) == 0 {
		return ReasonRender, "no output produced"
	}

	reason := ReasonIO
	detail := ferrs[0].Err.Error()
	for _, fe := range ferrs {
		if isTimeout(fe.Err) {
			return ReasonTimeout, fe.Err.Error()
		}
		if fe.Stage == stageRender {
			reason = ReasonRender
			detail = fe.Err.Error()
		}
	}
	return reason, detail
}

// isTimeout reports whether an error stems from the per-item deadline.
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || websave.ErrorCode(err) == websave.ETIMEOUT
}

// progressEventFor maps an outcome to the progress event reported for it.
func progressEventFor(out *ItemOutcome, completed, total int) ProgressEvent {
	ev := ProgressEvent{
		Completed: completed,
		Total:     total,
		URL:       out.Result.URL,
	}
	switch out.Status {
	case StatusSkipped:
		ev.Type = ProgressSkipped
	case StatusFailed:
		ev.Type = ProgressFailed
		if len(out.FormatErrors) > 0 {
			ev.Error = out.FormatErrors[0].Err
		} else {
			ev.Error = errors.New(out.Detail)
		}
	default:
		ev.Type = ProgressCompleted
	}
	return ev
}
