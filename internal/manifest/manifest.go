package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// TrackRecord is one parsed manifest row describing a single track.
//
// File and Title are always present and non-empty; parsing fails otherwise.
// Disc and Track are optional per-row, with 0 meaning "not set" (a blank
// cell in the manifest). Artist is optional and falls back to the configured
// album artist when a Job is built from the record.
type TrackRecord struct {
	// File is the source audio file, relative to the configured input
	// directory (or used verbatim when none is configured).
	File string

	// Disc is the disc number, 0 if the manifest cell was blank.
	Disc int

	// Track is the track number, 0 if the manifest cell was blank.
	Track int

	// Title is the track title. Never empty.
	Title string

	// Artist is the per-track artist. May be empty; see job.Build for the
	// album-artist fallback.
	Artist string
}

// Columns recognized in the manifest header. "file" and "title" are
// required per row; the rest may be blank.
const (
	colFile   = "file"
	colDisc   = "disc"
	colTrack  = "track"
	colTitle  = "title"
	colArtist = "artist"
)

// ParseFile reads and parses a manifest CSV from disk.
//
// See Parse for the format. The returned error includes the manifest path.
func ParseFile(path string) ([]TrackRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return records, nil
}

// Parse reads a complete manifest from r.
//
// The manifest is a CSV file with a required header row naming at least the
// "file" and "title" columns; "disc", "track" and "artist" are optional.
// Columns may appear in any order and unknown columns are ignored.
// Leading/trailing whitespace in every field is trimmed before use.
//
// Parsing is eager and all-or-nothing: the entire file is read and validated
// before any record is returned, and the first malformed row fails the whole
// parse. A row missing "file" or "title" is malformed, as is a non-numeric
// disc or track cell.
func Parse(r io.Reader) ([]TrackRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{colFile, colTitle} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("header is missing required column %q", required)
		}
	}

	var records []TrackRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// parseRow converts one CSV row into a TrackRecord using the header's
// column positions.
func parseRow(row []string, cols map[string]int) (TrackRecord, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rec := TrackRecord{
		File:   field(colFile),
		Title:  field(colTitle),
		Artist: field(colArtist),
	}

	if rec.File == "" {
		return TrackRecord{}, fmt.Errorf("missing file")
	}
	if rec.Title == "" {
		return TrackRecord{}, fmt.Errorf("missing title")
	}

	var err error
	if rec.Disc, err = parseNumber(colDisc, field(colDisc)); err != nil {
		return TrackRecord{}, err
	}
	if rec.Track, err = parseNumber(colTrack, field(colTrack)); err != nil {
		return TrackRecord{}, err
	}

	return rec, nil
}

// parseNumber parses an optional unsigned cell. Blank means unset (0).
func parseNumber(name, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s number %q", name, value)
	}
	return int(n), nil
}
