package playlist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hillandr/flacpress/internal/job"
)

// Format represents supported playlist file formats.
//
// Formats needing per-track durations (WPL, ZPL) are not offered: this
// tool never probes its inputs, so durations are unknown.
type Format int

const (
	// FormatM3U creates .m3u files (most compatible). Can be extended
	// with EXTINF lines carrying artist and title.
	FormatM3U Format = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	if f == FormatPLS {
		return ".pls"
	}
	return ".m3u"
}

// Creator generates a playlist over the converted output files.
//
// Track paths in the playlist are relative (just the filename), assuming
// the playlist file is written into the output directory alongside the
// tracks.
//
// Example:
//
//	creator := playlist.NewCreator(playlist.FormatM3U, true)
//	content := creator.Create(jobs)
//	os.WriteFile(filepath.Join(outputDir, "The Album.m3u"), []byte(content), 0644)
type Creator struct {
	format   Format
	extended bool // For M3U: include EXTINF lines with artist/title
}

// NewCreator creates a Creator. extended selects EXTINF lines for M3U and
// is ignored for other formats.
func NewCreator(format Format, extended bool) *Creator {
	return &Creator{format: format, extended: extended}
}

// Create generates playlist content for the given jobs, in manifest order.
func (c *Creator) Create(jobs []*job.Job) string {
	if c.format == FormatPLS {
		return c.createPLS(jobs)
	}
	return c.createM3U(jobs)
}

// createM3U generates an M3U playlist. Durations are unknown, so extended
// entries use -1 per the EXTINF convention.
func (c *Creator) createM3U(jobs []*job.Job) string {
	var sb strings.Builder

	if c.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, j := range jobs {
		if c.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", j.Artist, j.Title))
		}
		sb.WriteString(filepath.Base(j.OutputPath) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist:
//
//	[playlist]
//	File1=01-Artist-Title.flac
//	Title1=Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (c *Creator) createPLS(jobs []*job.Job) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, j := range jobs {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(j.OutputPath)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, j.Title))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(jobs)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// FileName computes the playlist filename for an album. Falls back to
// "playlist" when no album title is configured.
func (c *Creator) FileName(albumTitle string) string {
	name := albumTitle
	if name == "" {
		name = "playlist"
	}
	return name + c.format.Extension()
}
