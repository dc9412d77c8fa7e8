package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hillandr/flacpress/internal/artwork"
	"github.com/hillandr/flacpress/internal/batch"
	"github.com/hillandr/flacpress/internal/config"
	"github.com/hillandr/flacpress/internal/encoder"
	ioutils "github.com/hillandr/flacpress/internal/io"
	"github.com/hillandr/flacpress/internal/job"
	"github.com/hillandr/flacpress/internal/manifest"
	"github.com/hillandr/flacpress/internal/playlist"
)

func main() {
	// Command line flags
	var (
		coverFlag       = flag.String("cover", "", "Cover art file (jpg or png image)")
		inputDirFlag    = flag.String("input-dir", "", "Directory that input files are located in")
		albumTitleFlag  = flag.String("album-title", "", "Album title metadata")
		albumArtistFlag = flag.String("album-artist", "", "Album artist metadata (also the fallback for rows without an artist)")
		dateFlag        = flag.String("date", "", "Release date metadata")
		jobsFlag        = flag.Int("jobs", 0, "Concurrent conversions (0 = one per CPU)")
		keepGoingFlag   = flag.Bool("keep-going", false, "Run all conversions even after a failure")
		playlistFlag    = flag.Bool("playlist", false, "Create a playlist file next to the outputs")
		configFlag      = flag.String("config", "", "Path to config file")
		verboseFlag     = flag.Bool("verbose", false, "Show each ffmpeg command line")
		dryRunFlag      = flag.Bool("dry-run", false, "Build jobs and print them without converting")
	)

	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Println("flacpress - batch-convert an album to FLAC via ffmpeg")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  flacpress [options] <manifest.csv> <output-dir>")
		fmt.Println()
		fmt.Println("The manifest is a CSV file with columns: file, disc, track, title, artist")
		fmt.Println()
		fmt.Println("For interactive mode, use: flacpress-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	manifestPath := flag.Arg(0)
	outputDir := flag.Arg(1)

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	cfg := settings.ToConversion()
	cfg.CoverPath = *coverFlag
	cfg.InputDir = *inputDirFlag
	cfg.OutputDir = outputDir
	cfg.AlbumTitle = *albumTitleFlag
	cfg.AlbumArtist = *albumArtistFlag
	cfg.Date = *dateFlag
	cfg.Verbose = *verboseFlag
	if *jobsFlag > 0 {
		cfg.Jobs = *jobsFlag
	}
	if *keepGoingFlag {
		cfg.KeepGoing = true
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, settings, manifestPath, *dryRunFlag)
	stop()

	switch {
	case errors.Is(err, errInterrupted):
		fmt.Fprintln(os.Stderr, "Interrupted.")
		os.Exit(130)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// errInterrupted is returned by run when the batch was cancelled by a
// signal; main maps it to exit code 130 after deferred cleanup has run.
var errInterrupted = errors.New("interrupted")

func run(ctx context.Context, cfg *config.Conversion, settings *config.Settings, manifestPath string, dryRun bool) error {
	// Parse the complete manifest before any conversion starts.
	records, err := manifest.ParseFile(manifestPath)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("manifest %s: no tracks", manifestPath)
	}

	if err := ioutils.EnsureDir(cfg.OutputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Prepare the cover once; every job attaches the same image.
	if cfg.CoverPath != "" && (settings.CoverResize || settings.ConvertCoverToJPG) {
		tmpDir, err := os.MkdirTemp("", "flacpress-cover-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmpDir)

		prepared, err := artwork.Prepare(ctx, cfg.CoverPath, tmpDir, artwork.Options{
			Resize:        settings.CoverResize,
			MaxSize:       settings.CoverMaxSize,
			ConvertToJPEG: settings.ConvertCoverToJPG,
		})
		if err != nil {
			return err
		}
		cfg.CoverPath = prepared
	}

	jobs, err := job.BuildAll(cfg, records)
	if err != nil {
		return err
	}
	if err := job.DetectCollisions(jobs); err != nil {
		return err
	}

	if dryRun {
		for _, j := range jobs {
			fmt.Printf("%s -> %s\n", j.InputPath, j.OutputPath)
		}
		fmt.Printf("\n[Dry run - %d tracks, nothing converted]\n", len(jobs))
		return nil
	}

	policy := batch.FailFast
	if cfg.KeepGoing {
		policy = batch.ContinueOnError
	}

	runner := batch.NewRunner(encoder.NewFFmpeg(), cfg.Workers(), policy, cfg.Verbose,
		func(event batch.ProgressEvent) {
			fmt.Println(event.Message)
		})

	fmt.Printf("Converting %d tracks with %d workers\n\n", len(jobs), cfg.Workers())

	result := runner.RunAll(ctx, jobs)

	if ctx.Err() != nil {
		return errInterrupted
	}

	if result.Failed() {
		for _, failure := range result.Failures {
			fmt.Fprintf(os.Stderr, "\nconversion FAILED\n%s", failure.Diagnostic())
		}
		return result.Err()
	}

	if settings.CreatePlaylist {
		if err := writePlaylist(cfg, settings, jobs); err != nil {
			return err
		}
	}

	done, _, total := runner.GetProgress()
	fmt.Printf("\nDone: %d/%d tracks converted\n", done, total)
	return nil
}

func writePlaylist(cfg *config.Conversion, settings *config.Settings, jobs []*job.Job) error {
	format := playlist.FormatM3U
	if settings.PlaylistFormat == "pls" {
		format = playlist.FormatPLS
	}

	creator := playlist.NewCreator(format, settings.M3UExtended)
	path := filepath.Join(cfg.OutputDir, creator.FileName(cfg.AlbumTitle))
	if err := ioutils.WriteFile(context.Background(), path, []byte(creator.Create(jobs))); err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	fmt.Printf("Created playlist: %s\n", path)
	return nil
}
