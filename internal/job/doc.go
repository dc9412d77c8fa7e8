// Package job turns manifest records into fully-resolved conversion jobs.
//
// A Job carries everything one encoder invocation needs: the resolved input
// path, the deterministic output path, and the complete argument vector
// including metadata. Jobs are immutable once built, so the batch runner can
// fan them out across workers without any shared state.
//
// # Building
//
//	jobs, err := job.BuildAll(cfg, records)
//	if err != nil {
//	    // e.g. *job.MissingArtistError: a record has no artist and no
//	    // album artist is configured
//	}
//
// # Output naming
//
// Output filenames follow a fixed pattern:
//
//	{disc}.{track:02d}-{artist}-{title}.flac
//
// where the disc/track prefix degrades gracefully when either number is
// absent, and artist/title are transliterated to ASCII for filesystem
// safety. The metadata embedded in the file keeps the original text.
//
// # Collisions
//
// The manifest offers no uniqueness guarantee, so DetectCollisions must be
// run over the full job list before dispatch. Two records mapping to the
// same output path fail the batch up front instead of silently overwriting
// each other.
package job
