package encoder

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/hillandr/flacpress/internal/job"
)

// FFmpeg runs jobs by spawning the external ffmpeg executable, located via
// the standard executable search path unless the job's argument vector
// names it explicitly. The zero value is ready to use.
type FFmpeg struct{}

// NewFFmpeg creates the production Encoder.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{}
}

// Encode spawns the encoder with the job's argument vector, captures both
// output streams, and waits synchronously for completion. This call is the
// unit of work dispatched to a batch worker: the worker blocks here for
// the full duration of one encode.
//
// The context cancels the subprocess (in-flight cancellation via SIGKILL,
// the exec.CommandContext default). A process that could not be started at
// all yields an outcome with SpawnErr set and no captured output.
func (f *FFmpeg) Encode(ctx context.Context, j *job.Job) *Outcome {
	cmd := exec.CommandContext(ctx, j.Args[0], j.Args[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return &Outcome{Job: j, ExitCode: -1, SpawnErr: err}
	}

	err := cmd.Wait()
	outcome := &Outcome{
		Job:    j,
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
		} else {
			outcome.ExitCode = -1
			outcome.SpawnErr = err
		}
	}

	return outcome
}
