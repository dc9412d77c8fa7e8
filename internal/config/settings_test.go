package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.FFmpegPath != "ffmpeg" {
		t.Errorf("FFmpegPath = %q, want %q", s.FFmpegPath, "ffmpeg")
	}
	if s.KeepGoing {
		t.Error("KeepGoing should default to false (fail-fast)")
	}
	if s.MaxConcurrentJobs != 0 {
		t.Errorf("MaxConcurrentJobs = %d, want 0 (auto)", s.MaxConcurrentJobs)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.FFmpegPath != "ffmpeg" {
		t.Errorf("missing file should yield defaults, got FFmpegPath=%q", s.FFmpegPath)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	s := DefaultSettings()
	s.MaxConcurrentJobs = 3
	s.KeepGoing = true
	s.CreatePlaylist = true

	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.MaxConcurrentJobs != 3 || !loaded.KeepGoing || !loaded.CreatePlaylist {
		t.Errorf("round-trip mismatch: %+v", loaded)
	}
}

func TestConversion_Workers(t *testing.T) {
	c := &Conversion{Jobs: 4}
	if got := c.Workers(); got != 4 {
		t.Errorf("Workers() = %d, want 4", got)
	}

	c = &Conversion{}
	if got := c.Workers(); got < 1 {
		t.Errorf("Workers() = %d, want >= 1 when Jobs is unset", got)
	}
}
