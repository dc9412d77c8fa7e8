package job

import (
	"errors"
	"testing"

	"github.com/hillandr/flacpress/internal/manifest"
)

func TestDetectCollisions_None(t *testing.T) {
	records := []manifest.TrackRecord{
		{File: "a.wav", Track: 1, Title: "One", Artist: "X"},
		{File: "b.wav", Track: 2, Title: "Two", Artist: "X"},
	}
	jobs, err := BuildAll(baseConfig(), records)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if err := DetectCollisions(jobs); err != nil {
		t.Errorf("DetectCollisions: %v", err)
	}
}

// Two records differing only in characters that transliterate to the same
// ASCII produce the same output path and must be rejected before dispatch.
func TestDetectCollisions_TransliterationCollision(t *testing.T) {
	records := []manifest.TrackRecord{
		{File: "a.wav", Title: "Jóga", Artist: "Björk"},
		{File: "b.wav", Title: "Joga", Artist: "Bjork"},
	}
	jobs, err := BuildAll(baseConfig(), records)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}

	err = DetectCollisions(jobs)
	var collision *CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected *CollisionError, got %v", err)
	}
	if collision.First != "a.wav" || collision.Second != "b.wav" {
		t.Errorf("collision sources = %q, %q; want a.wav, b.wav", collision.First, collision.Second)
	}
}
