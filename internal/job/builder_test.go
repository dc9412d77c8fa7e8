package job

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hillandr/flacpress/internal/config"
	"github.com/hillandr/flacpress/internal/manifest"
)

func baseConfig() *config.Conversion {
	return &config.Conversion{
		FFmpegPath: "ffmpeg",
		OutputDir:  "/out",
	}
}

func TestNumberPrefix(t *testing.T) {
	tests := []struct {
		name  string
		disc  int
		track int
		want  string
	}{
		{"both set", 1, 3, "1.03-"},
		{"both set, wide track", 2, 12, "2.12-"},
		{"disc only", 1, 0, "1-"},
		{"track only", 0, 3, "03-"},
		{"neither", 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numberPrefix(tt.disc, tt.track); got != tt.want {
				t.Errorf("numberPrefix(%d, %d) = %q, want %q", tt.disc, tt.track, got, tt.want)
			}
		})
	}
}

func TestBuild_OutputPath(t *testing.T) {
	tests := []struct {
		name string
		rec  manifest.TrackRecord
		want string
	}{
		{
			name: "disc and track",
			rec:  manifest.TrackRecord{File: "a.wav", Disc: 1, Track: 3, Title: "Song", Artist: "Artist"},
			want: "/out/1.03-Artist-Song.flac",
		},
		{
			name: "neither number",
			rec:  manifest.TrackRecord{File: "a.wav", Title: "Song", Artist: "Artist"},
			want: "/out/Artist-Song.flac",
		},
		{
			name: "transliterated filename",
			rec:  manifest.TrackRecord{File: "a.wav", Title: "Jóga", Artist: "Björk"},
			want: "/out/Bjork-Joga.flac",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, err := Build(baseConfig(), 0, tt.rec)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if j.OutputPath != filepath.FromSlash(tt.want) {
				t.Errorf("OutputPath = %q, want %q", j.OutputPath, tt.want)
			}
		})
	}
}

// The end-to-end scenario: one record with disc/track set, no cover, no
// album overrides. The argument vector is checked exactly.
func TestBuild_ArgsExact(t *testing.T) {
	rec := manifest.TrackRecord{File: "a.wav", Disc: 1, Track: 1, Title: "Song One", Artist: "Artist"}

	j, err := Build(baseConfig(), 0, rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"ffmpeg", "-hide_banner", "-nostdin",
		"-i", "a.wav",
		"-map", "0:a",
		"-metadata", "title=Song One",
		"-metadata", "artist=Artist",
		"-metadata", "disc=1",
		"-metadata", "track=1",
		"-c:a", "flac", "-y", filepath.FromSlash("/out/1.01-Artist-Song One.flac"),
	}
	if !reflect.DeepEqual(j.Args, want) {
		t.Errorf("Args mismatch\n got: %q\nwant: %q", j.Args, want)
	}
}

func TestBuild_ArgsWithCoverAndAlbum(t *testing.T) {
	cfg := baseConfig()
	cfg.CoverPath = "cover.jpg"
	cfg.AlbumTitle = "The Album"
	cfg.AlbumArtist = "Various"
	cfg.Date = "2019"

	rec := manifest.TrackRecord{File: "a.wav", Disc: 2, Track: 7, Title: "Song", Artist: "Artist"}

	j, err := Build(cfg, 0, rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"ffmpeg", "-hide_banner", "-nostdin",
		"-i", "a.wav",
		"-i", "cover.jpg",
		"-map", "0:a",
		"-map", "1:v",
		"-metadata", "title=Song",
		"-metadata", "artist=Artist",
		"-metadata", "album=The Album",
		"-metadata", "album_artist=Various",
		"-metadata", "date=2019",
		"-metadata", "disc=2",
		"-metadata", "track=7",
		"-c:v", "copy",
		"-disposition:v", "attached_pic",
		"-metadata:s:v", "comment=Cover (front)",
		"-c:a", "flac", "-y", filepath.FromSlash("/out/2.07-Artist-Song.flac"),
	}
	if !reflect.DeepEqual(j.Args, want) {
		t.Errorf("Args mismatch\n got: %q\nwant: %q", j.Args, want)
	}
}

// Without a cover there must be no video map and no cover stream handling.
func TestBuild_NoCoverNoVideoArgs(t *testing.T) {
	rec := manifest.TrackRecord{File: "a.wav", Title: "Song", Artist: "Artist"}
	j, err := Build(baseConfig(), 0, rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, forbidden := range []string{"1:v", "-disposition:v", "-c:v"} {
		for _, arg := range j.Args {
			if arg == forbidden {
				t.Errorf("Args should not contain %q without a cover: %q", forbidden, j.Args)
			}
		}
	}
}

// Unset optional metadata is omitted entirely, never emitted as "key=".
func TestBuild_NoEmptyMetadata(t *testing.T) {
	rec := manifest.TrackRecord{File: "a.wav", Title: "Song", Artist: "Artist"}
	j, err := Build(baseConfig(), 0, rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, arg := range j.Args {
		if strings.HasSuffix(arg, "=") {
			t.Errorf("empty metadata argument %q in %q", arg, j.Args)
		}
	}
	for _, key := range []string{"album=", "album_artist=", "date=", "disc=", "track="} {
		for _, arg := range j.Args {
			if strings.HasPrefix(arg, key) {
				t.Errorf("unset field emitted: %q", arg)
			}
		}
	}
}

// Metadata keeps the original Unicode while the filename is ASCII-only.
func TestBuild_UnicodeMetadataASCIIFilename(t *testing.T) {
	rec := manifest.TrackRecord{File: "a.wav", Title: "Ágætis byrjun", Artist: "Sigur Rós"}
	j, err := Build(baseConfig(), 0, rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var foundTitle, foundArtist bool
	for _, arg := range j.Args {
		if arg == "title=Ágætis byrjun" {
			foundTitle = true
		}
		if arg == "artist=Sigur Rós" {
			foundArtist = true
		}
	}
	if !foundTitle || !foundArtist {
		t.Errorf("metadata should keep Unicode text: %q", j.Args)
	}

	for _, r := range filepath.Base(j.OutputPath) {
		if r > 0x7f {
			t.Errorf("filename contains non-ASCII rune %q: %s", r, j.OutputPath)
		}
	}
}

func TestBuild_InputDir(t *testing.T) {
	cfg := baseConfig()
	cfg.InputDir = "/music/in"

	rec := manifest.TrackRecord{File: "a.wav", Title: "Song", Artist: "Artist"}
	j, err := Build(cfg, 0, rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := filepath.FromSlash("/music/in/a.wav"); j.InputPath != want {
		t.Errorf("InputPath = %q, want %q", j.InputPath, want)
	}

	cfg.InputDir = ""
	j, err = Build(cfg, 0, rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if j.InputPath != "a.wav" {
		t.Errorf("InputPath = %q, want %q", j.InputPath, "a.wav")
	}

	// An absolute manifest path is used verbatim even with an input dir.
	cfg.InputDir = "/music/in"
	abs := filepath.FromSlash("/elsewhere/a.wav")
	j, err = Build(cfg, 0, manifest.TrackRecord{File: abs, Title: "Song", Artist: "Artist"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if j.InputPath != abs {
		t.Errorf("InputPath = %q, want absolute path %q", j.InputPath, abs)
	}
}

func TestBuild_ArtistFallback(t *testing.T) {
	cfg := baseConfig()
	cfg.AlbumArtist = "Various"

	rec := manifest.TrackRecord{File: "a.wav", Title: "Song"}
	j, err := Build(cfg, 0, rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if j.Artist != "Various" {
		t.Errorf("Artist = %q, want fallback %q", j.Artist, "Various")
	}

	// Record artist wins over the album artist.
	rec.Artist = "Solo"
	j, err = Build(cfg, 0, rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if j.Artist != "Solo" {
		t.Errorf("Artist = %q, want record value %q", j.Artist, "Solo")
	}
}

func TestBuild_MissingArtist(t *testing.T) {
	rec := manifest.TrackRecord{File: "a.wav", Title: "Song"}
	_, err := Build(baseConfig(), 0, rec)

	var missing *MissingArtistError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingArtistError, got %v", err)
	}
	if missing.File != "a.wav" {
		t.Errorf("MissingArtistError.File = %q, want %q", missing.File, "a.wav")
	}
}

func TestBuildAll_FailsOnFirstBadRecord(t *testing.T) {
	records := []manifest.TrackRecord{
		{File: "a.wav", Title: "One", Artist: "Artist"},
		{File: "b.wav", Title: "Two"}, // no artist, no fallback
		{File: "c.wav", Title: "Three", Artist: "Artist"},
	}

	jobs, err := BuildAll(baseConfig(), records)
	if err == nil {
		t.Fatal("expected error")
	}
	if jobs != nil {
		t.Errorf("expected no jobs on build failure, got %d", len(jobs))
	}
}

func TestBuildAll_IndexesFollowManifestOrder(t *testing.T) {
	records := []manifest.TrackRecord{
		{File: "a.wav", Title: "One", Artist: "X"},
		{File: "b.wav", Title: "Two", Artist: "X"},
		{File: "c.wav", Title: "Three", Artist: "X"},
	}

	jobs, err := BuildAll(baseConfig(), records)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	for i, j := range jobs {
		if j.Index != i {
			t.Errorf("jobs[%d].Index = %d", i, j.Index)
		}
	}
}
