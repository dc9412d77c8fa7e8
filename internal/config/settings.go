package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

// Settings holds all persisted configuration options.
type Settings struct {
	// Conversion settings
	FFmpegPath        string `json:"ffmpeg_path"`
	MaxConcurrentJobs int    `json:"max_concurrent_jobs"`
	KeepGoing         bool   `json:"keep_going"`

	// Cover art settings
	CoverResize       bool `json:"cover_resize"`
	CoverMaxSize      int  `json:"cover_max_size"`
	ConvertCoverToJPG bool `json:"convert_cover_to_jpg"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls
	M3UExtended    bool   `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		FFmpegPath:        "ffmpeg",
		MaxConcurrentJobs: 0, // 0 means one worker per CPU
		KeepGoing:         false,

		CoverResize:       false,
		CoverMaxSize:      1000,
		ConvertCoverToJPG: false,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Conversion is the read-only per-run configuration consumed by the core.
//
// It combines persisted settings with the album-level metadata and paths
// supplied on the command line. A Conversion value is never mutated after
// construction; jobs built from it can be dispatched concurrently without
// synchronization.
type Conversion struct {
	// FFmpegPath is the encoder executable, located via $PATH when it is
	// a bare name. Defaults to "ffmpeg".
	FFmpegPath string

	// CoverPath is an optional cover image (jpg or png) attached to every
	// output file. Empty means no cover.
	CoverPath string

	// InputDir is an optional base directory prepended to relative
	// manifest file paths.
	InputDir string

	// OutputDir is where converted files are written. Created recursively
	// before any conversion starts.
	OutputDir string

	// AlbumTitle, AlbumArtist and Date are optional album-level metadata.
	// AlbumArtist doubles as the fallback for records without an artist.
	AlbumTitle  string
	AlbumArtist string
	Date        string

	// Jobs is the worker pool width. 0 means one worker per CPU.
	Jobs int

	// KeepGoing selects continue-on-error instead of the default
	// fail-fast policy.
	KeepGoing bool

	// Verbose emits each assembled command line before execution.
	Verbose bool
}

// Workers returns the effective worker pool width.
func (c *Conversion) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.NumCPU()
}

// ToConversion builds a Conversion from the persisted settings. Album
// metadata and paths are left for the caller to fill in from flags.
func (s *Settings) ToConversion() *Conversion {
	return &Conversion{
		FFmpegPath: s.FFmpegPath,
		Jobs:       s.MaxConcurrentJobs,
		KeepGoing:  s.KeepGoing,
	}
}
