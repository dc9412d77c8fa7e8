// Package manifest parses the CSV track manifest that drives a conversion
// run.
//
// A manifest enumerates the tracks of an album, one row per track:
//
//	file, disc, track, title, artist
//	01.wav, 1, 1, Opening, Some Artist
//	02.wav, 1, 2, Interlude,
//
// The header row is required, columns may appear in any order, and every
// field is whitespace-trimmed. "disc", "track" and "artist" may be blank
// per row; "file" and "title" may not.
//
// Parsing is all-or-nothing: the complete manifest is read and validated
// before any conversion work starts, so a typo on the last row aborts the
// run before the first ffmpeg process is spawned.
//
//	records, err := manifest.ParseFile("album.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
package manifest
