package batch

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/hillandr/flacpress/internal/encoder"
	"github.com/hillandr/flacpress/internal/job"
	"golang.org/x/sync/errgroup"
)

// FailurePolicy selects how the runner reacts to a failed job.
type FailurePolicy int

const (
	// FailFast stops dispatching new jobs after the first failure. Jobs
	// already running are allowed to finish, and the reported failure is
	// always the one with the lowest manifest index, regardless of
	// completion order.
	FailFast FailurePolicy = iota

	// ContinueOnError runs every job to completion and aggregates all
	// failures at the end.
	ContinueOnError
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a conversion progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Runner fans conversion jobs out across a bounded worker pool.
//
// Jobs are mutually independent (distinct inputs, distinct outputs, no
// shared mutable state), so the only coordination the runner needs is the
// pool width, a stop flag for fail-fast mode, and the index-aligned
// outcome slice each worker writes its own slot of.
type Runner struct {
	enc     encoder.Encoder
	workers int
	policy  FailurePolicy
	verbose bool

	totalJobs  int32
	doneJobs   int32
	failedJobs int32

	onProgress func(ProgressEvent)
}

// NewRunner creates a Runner.
//
// workers is the pool width; values below 1 are treated as 1 (resolve the
// configured default with config.Conversion.Workers before calling).
// onProgress may be nil.
func NewRunner(enc encoder.Encoder, workers int, policy FailurePolicy, verbose bool, onProgress func(ProgressEvent)) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		enc:        enc,
		workers:    workers,
		policy:     policy,
		verbose:    verbose,
		onProgress: onProgress,
	}
}

// Result aggregates the outcomes of one batch.
type Result struct {
	// Outcomes is index-aligned with the job list. A nil entry means the
	// job was never dispatched (fail-fast stopped the batch first).
	Outcomes []*encoder.Outcome

	// Failures holds the failed outcomes in manifest order. Under
	// FailFast it contains at most one entry: the lowest-index failure.
	Failures []*encoder.Outcome

	total int
}

// Failed reports whether any job failed.
func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

// Err returns the aggregate batch error, or nil when every job succeeded.
func (r *Result) Err() error {
	if !r.Failed() {
		return nil
	}
	return &Error{Failures: r.Failures, Total: r.total}
}

// Error is the program-level failure wrapping one or more job failures.
// Each failure carries enough context (paths, raw command, captured
// streams) to re-run the failing case manually.
type Error struct {
	Failures []*encoder.Outcome
	Total    int
}

func (e *Error) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0].Err().Error()
	}
	return fmt.Sprintf("%d of %d conversions failed", len(e.Failures), e.Total)
}

// RunAll dispatches every job across the worker pool and blocks until the
// batch settles. Every dispatched job produces exactly one outcome; no job
// is dropped or run twice.
//
// Cancelling ctx stops dispatching and cancels in-flight encoder
// processes. A failed job under FailFast stops anything that has not
// started an encode yet; jobs already running finish normally.
func (r *Runner) RunAll(ctx context.Context, jobs []*job.Job) *Result {
	atomic.StoreInt32(&r.totalJobs, int32(len(jobs)))
	atomic.StoreInt32(&r.doneJobs, 0)
	atomic.StoreInt32(&r.failedJobs, 0)

	outcomes := make([]*encoder.Outcome, len(jobs))
	var stopped atomic.Bool

	g := new(errgroup.Group)
	g.SetLimit(r.workers)

	for _, j := range jobs {
		// g.Go blocks while the pool is full, so this check picks up
		// failures reported by earlier jobs before dispatching later
		// ones.
		if ctx.Err() != nil {
			break
		}
		if r.policy == FailFast && stopped.Load() {
			break
		}

		j := j // capture
		g.Go(func() error {
			r.runOne(ctx, j, outcomes, &stopped)
			return nil
		})
	}

	_ = g.Wait()

	result := &Result{Outcomes: outcomes, total: len(jobs)}
	for _, o := range outcomes {
		if o != nil && o.Failed() {
			result.Failures = append(result.Failures, o)
		}
	}
	if r.policy == FailFast && len(result.Failures) > 1 {
		// Lowest manifest index wins; later in-flight failures are
		// discarded to keep reporting reproducible across runs.
		result.Failures = result.Failures[:1]
	}
	return result
}

// runOne executes a single job on a worker and records its outcome.
//
// The dispatch loop may have committed this job to a pool slot before an
// earlier job's failure was recorded, so the stop conditions are checked
// again here. A job skipped this way leaves its outcome slot nil, same as
// one never dispatched.
func (r *Runner) runOne(ctx context.Context, j *job.Job, outcomes []*encoder.Outcome, stopped *atomic.Bool) {
	if ctx.Err() != nil {
		return
	}
	if r.policy == FailFast && stopped.Load() {
		return
	}

	if r.verbose {
		r.progress(ProgressEvent{
			Message: "+ " + strings.Join(j.Args, " "),
			Level:   LevelVerbose,
		})
	}

	outcome := r.enc.Encode(ctx, j)
	outcomes[j.Index] = outcome
	atomic.AddInt32(&r.doneJobs, 1)

	if outcome.Failed() {
		atomic.AddInt32(&r.failedJobs, 1)
		if r.policy == FailFast {
			stopped.Store(true)
		}
		r.progress(ProgressEvent{
			Message: fmt.Sprintf("Conversion failed: %s", j.Source),
			Level:   LevelError,
		})
		return
	}

	r.progress(ProgressEvent{
		Message: "OK: " + j.OutputPath,
		Level:   LevelSuccess,
	})
}

// GetProgress returns the current batch counters: completed jobs, failed
// jobs, and the batch size. Safe to call from another goroutine while
// RunAll is in flight (the TUI polls this).
func (r *Runner) GetProgress() (done, failed, total int32) {
	return atomic.LoadInt32(&r.doneJobs),
		atomic.LoadInt32(&r.failedJobs),
		atomic.LoadInt32(&r.totalJobs)
}

func (r *Runner) progress(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}
