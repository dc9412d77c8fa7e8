// Package encoder invokes the external audio encoder for single jobs.
//
// The encoder is treated as an opaque capability behind the Encoder
// interface: spawn with arguments, capture both streams, wait for the exit
// status. FFmpeg is the production implementation; tests substitute stubs.
//
//	enc := encoder.NewFFmpeg()
//	outcome := enc.Encode(ctx, job)
//	if outcome.Failed() {
//	    fmt.Print(outcome.Diagnostic())
//	}
//
// No output validation is performed: an exit status of zero is success,
// whether or not the output file is playable.
package encoder
