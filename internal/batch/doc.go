// Package batch orchestrates the concurrent execution of conversion jobs.
//
// # Runner
//
// The Runner dispatches jobs across a bounded worker pool and collects one
// outcome per dispatched job:
//
//	runner := batch.NewRunner(encoder.NewFFmpeg(), cfg.Workers(), batch.FailFast, cfg.Verbose,
//	    func(event batch.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    })
//
//	result := runner.RunAll(ctx, jobs)
//	if err := result.Err(); err != nil {
//	    // aggregate *batch.Error with per-job diagnostics
//	}
//
// # Failure policies
//
// FailFast (the default) stops dispatching after the first failure, lets
// in-flight jobs finish, and reports the failure with the lowest manifest
// index so the result is reproducible regardless of completion order.
// ContinueOnError runs everything and aggregates every failure.
//
// # Concurrency
//
// Jobs are immutable and disjoint, so workers share nothing: each writes
// its own slot of the outcome slice, and the only cross-worker state is
// the fail-fast stop flag and the atomic progress counters polled by the
// TUI.
package batch
