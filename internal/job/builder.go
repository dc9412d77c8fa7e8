package job

import (
	"fmt"
	"path/filepath"

	"github.com/hillandr/flacpress/internal/config"
	ioutils "github.com/hillandr/flacpress/internal/io"
	"github.com/hillandr/flacpress/internal/manifest"
)

// Build turns one manifest record into a Job.
//
// The input path is cfg.InputDir joined with the record's file when an
// input directory is configured, otherwise the record's file verbatim.
// The effective artist is the record's artist when present, falling back
// to cfg.AlbumArtist; when neither is set Build fails with a
// *MissingArtistError and no Job is produced.
//
// No filesystem checks happen here. A record naming a nonexistent input
// still builds a Job; the failure surfaces when the encoder runs.
func Build(cfg *config.Conversion, index int, rec manifest.TrackRecord) (*Job, error) {
	artist := rec.Artist
	if artist == "" {
		artist = cfg.AlbumArtist
	}
	if artist == "" {
		return nil, &MissingArtistError{File: rec.File}
	}

	inputPath := rec.File
	if cfg.InputDir != "" && !filepath.IsAbs(rec.File) {
		// Absolute manifest paths win over the input directory.
		inputPath = filepath.Join(cfg.InputDir, rec.File)
	}

	fileName := fmt.Sprintf("%s%s-%s.flac",
		numberPrefix(rec.Disc, rec.Track),
		ioutils.Transliterate(artist),
		ioutils.Transliterate(rec.Title),
	)
	outputPath := filepath.Join(cfg.OutputDir, fileName)

	j := &Job{
		Index:      index,
		Source:     rec.File,
		InputPath:  inputPath,
		OutputPath: outputPath,
		Title:      rec.Title,
		Artist:     artist,
	}
	j.Args = buildArgs(cfg, rec, j)
	return j, nil
}

// BuildAll builds a Job for every record, in manifest order. The first
// record that cannot be built fails the whole batch; nothing is converted
// when any job is unbuildable.
func BuildAll(cfg *config.Conversion, records []manifest.TrackRecord) ([]*Job, error) {
	jobs := make([]*Job, 0, len(records))
	for i, rec := range records {
		j, err := Build(cfg, i, rec)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// numberPrefix computes the filename prefix from the disc and track
// numbers. Track numbers are zero-padded to two digits, disc numbers are
// not.
//
//	disc=1 track=3  ->  "1.03-"
//	disc=1 only     ->  "1-"
//	track=3 only    ->  "03-"
//	neither         ->  ""
func numberPrefix(disc, track int) string {
	switch {
	case disc > 0 && track > 0:
		return fmt.Sprintf("%d.%02d-", disc, track)
	case disc > 0:
		return fmt.Sprintf("%d-", disc)
	case track > 0:
		return fmt.Sprintf("%02d-", track)
	default:
		return ""
	}
}

// buildArgs assembles the complete ffmpeg argument vector for a job.
//
// The shape is fixed: banner/prompt suppression, inputs, stream maps,
// metadata, cover attachment, codec, force-overwrite, output. Metadata
// values keep their original Unicode text; only the output filename is
// transliterated.
func buildArgs(cfg *config.Conversion, rec manifest.TrackRecord, j *Job) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, cfg.FFmpegPath, "-hide_banner", "-nostdin")

	// --- Inputs ---
	args = append(args, "-i", j.InputPath)
	if cfg.CoverPath != "" {
		args = append(args, "-i", cfg.CoverPath)
	}

	// --- Stream maps: audio from input 0, cover image from input 1 ---
	args = append(args, "-map", "0:a")
	if cfg.CoverPath != "" {
		args = append(args, "-map", "1:v")
	}

	// --- Metadata, fixed field order, unset values omitted entirely ---
	args = appendMetadata(args, "title", j.Title)
	args = appendMetadata(args, "artist", j.Artist)
	args = appendMetadata(args, "album", cfg.AlbumTitle)
	args = appendMetadata(args, "album_artist", cfg.AlbumArtist)
	args = appendMetadata(args, "date", cfg.Date)
	if rec.Disc > 0 {
		args = appendMetadata(args, "disc", fmt.Sprintf("%d", rec.Disc))
	}
	if rec.Track > 0 {
		args = appendMetadata(args, "track", fmt.Sprintf("%d", rec.Track))
	}

	// --- Cover stream handling ---
	if cfg.CoverPath != "" {
		args = append(args,
			"-c:v", "copy",
			"-disposition:v", "attached_pic",
			"-metadata:s:v", "comment=Cover (front)",
		)
	}

	// --- Codec and output ---
	args = append(args, "-c:a", "flac", "-y", j.OutputPath)

	return args
}

// appendMetadata adds one -metadata key=value pair. Empty values are
// skipped so the vector never contains a bare "key=".
func appendMetadata(args []string, key, value string) []string {
	if value == "" {
		return args
	}
	return append(args, "-metadata", key+"="+value)
}
