package job

import "fmt"

// Job is a fully-resolved, immutable unit of conversion work derived from
// one manifest record. It is built once by Build and never mutated, which
// is what allows jobs to be dispatched concurrently without locks: distinct
// jobs touch distinct input and output paths and share nothing.
type Job struct {
	// Index is the record's position in the manifest (0-based). Failure
	// reporting in fail-fast mode is deterministic by this index.
	Index int

	// Source is the file column of the manifest record, before input-dir
	// resolution. Kept for diagnostics.
	Source string

	// InputPath is the resolved encoder input.
	InputPath string

	// OutputPath is the computed destination under the output directory.
	OutputPath string

	// Args is the complete encoder argument vector, program name first.
	// Reproducing a failed conversion by hand is a matter of joining
	// these with spaces (quoting aside).
	Args []string

	// Title and Artist are the metadata values embedded in the output,
	// with Artist already resolved through the album-artist fallback.
	// Unlike the filename, these keep the original Unicode text.
	Title  string
	Artist string
}

// MissingArtistError reports a manifest record whose artist could not be
// resolved: the record has no artist and no album artist is configured.
type MissingArtistError struct {
	File string
}

func (e *MissingArtistError) Error() string {
	return fmt.Sprintf("no artist for %s: record has none and no album artist is configured", e.File)
}
