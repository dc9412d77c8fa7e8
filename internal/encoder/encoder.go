package encoder

import (
	"context"
	"fmt"
	"strings"

	"github.com/hillandr/flacpress/internal/job"
)

// Encoder runs one conversion job to completion and reports the outcome.
//
// The production implementation spawns an external ffmpeg process (see
// FFmpeg); tests inject stubs so the batch runner can be exercised without
// creating processes.
type Encoder interface {
	Encode(ctx context.Context, j *job.Job) *Outcome
}

// Outcome is the result of running one Job: success with the output path,
// or failure with full diagnostics. Outcomes are immutable values passed
// from workers back to the batch runner.
type Outcome struct {
	// Job is the job this outcome belongs to.
	Job *job.Job

	// Stdout and Stderr are the encoder's captured output streams.
	// Empty when spawning itself failed.
	Stdout []byte
	Stderr []byte

	// ExitCode is the encoder's exit status. 0 on success, -1 when the
	// process could not be started or was killed by a signal.
	ExitCode int

	// SpawnErr is set when the process could not be started at all
	// (executable not found, permission denied). The encoder never ran
	// and produced no output.
	SpawnErr error
}

// Failed reports whether the job did not produce its output.
func (o *Outcome) Failed() bool {
	return o.SpawnErr != nil || o.ExitCode != 0
}

// Err returns a one-line error describing the failure, or nil on success.
func (o *Outcome) Err() error {
	switch {
	case o.SpawnErr != nil:
		return fmt.Errorf("failed to convert %s into %s: %w",
			o.Job.Source, o.Job.OutputPath, o.SpawnErr)
	case o.ExitCode != 0:
		return fmt.Errorf("failed to convert %s into %s: encoder exited with status %d",
			o.Job.Source, o.Job.OutputPath, o.ExitCode)
	default:
		return nil
	}
}

// Diagnostic renders the full failure payload: the source and output paths,
// the exact command for manual reproduction, and the captured streams.
// Returns "" for successful outcomes.
func (o *Outcome) Diagnostic() string {
	if !o.Failed() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "source:  %s\n", o.Job.Source)
	fmt.Fprintf(&b, "output:  %s\n", o.Job.OutputPath)
	fmt.Fprintf(&b, "command: %s\n", strings.Join(o.Job.Args, " "))

	if o.SpawnErr != nil {
		fmt.Fprintf(&b, "spawn error: %v\n", o.SpawnErr)
		return b.String()
	}

	fmt.Fprintf(&b, "exit status: %d\n", o.ExitCode)
	if len(o.Stdout) > 0 {
		fmt.Fprintf(&b, "standard output:\n%s\n", strings.TrimRight(string(o.Stdout), "\n"))
	}
	if len(o.Stderr) > 0 {
		fmt.Fprintf(&b, "standard error:\n%s\n", strings.TrimRight(string(o.Stderr), "\n"))
	}
	return b.String()
}
