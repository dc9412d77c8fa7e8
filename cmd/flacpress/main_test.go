package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hillandr/flacpress/internal/config"
)

func writeManifest(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "album.csv")
	data := "file,track,title,artist\na.wav,1,Song One,Artist\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

// A cancelled run surfaces the interrupted sentinel through a normal
// return, so deferred cleanup runs before main picks the exit code.
func TestRun_CancelledReturnsInterrupted(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeManifest(t, dir)

	cfg := config.DefaultSettings().ToConversion()
	cfg.OutputDir = filepath.Join(dir, "flac")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, cfg, config.DefaultSettings(), manifestPath, false)
	if !errors.Is(err, errInterrupted) {
		t.Fatalf("run on a cancelled context = %v, want errInterrupted", err)
	}
}

func TestRun_DryRunConvertsNothing(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeManifest(t, dir)

	cfg := config.DefaultSettings().ToConversion()
	cfg.OutputDir = filepath.Join(dir, "flac")

	if err := run(context.Background(), cfg, config.DefaultSettings(), manifestPath, true); err != nil {
		t.Fatalf("dry run: %v", err)
	}

	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d files into the output dir", len(entries))
	}
}
