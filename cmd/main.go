// Command slidereel is the CLI entrypoint for the slideshow video assembler.
//
// It parses flags, validates configuration and input paths, and either runs
// encoder diagnostics (--check) or the full render pipeline: one composited
// frame and music clip per image, segment encodes, concatenation and a final
// soundtrack remux.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/backmassage/slidereel/internal/check"
	"github.com/backmassage/slidereel/internal/compositor"
	"github.com/backmassage/slidereel/internal/config"
	"github.com/backmassage/slidereel/internal/display"
	"github.com/backmassage/slidereel/internal/ffmpeg"
	"github.com/backmassage/slidereel/internal/logging"
	"github.com/backmassage/slidereel/internal/paths"
	"github.com/backmassage/slidereel/internal/pipeline"
	"github.com/backmassage/slidereel/internal/planner"
	"github.com/backmassage/slidereel/internal/probe"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output goes
	// through the logger for consistent formatting and log-file capture.
	_ = godotenv.Load() // a missing .env is not an error

	cfg := config.DefaultConfig()
	config.ApplyEnv(&cfg)
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "slidereel: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "slidereel: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slidereel: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== SlideReel v%s (%s) ===", version, commit)

	// Fail fast if ffmpeg or its companion ffprobe are unavailable; the
	// resolved binary path is written back into cfg.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Resolve inputs against the working directory. Every image and track
	// must exist before any encoding starts.
	if cfg.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Error("Cannot determine working directory: %v", err)
			return 1
		}
		cfg.BaseDir = wd
	}

	images, err := paths.ResolveAll(cfg.BaseDir, cfg.Images)
	if err != nil {
		log.Error("Image input: %v", err)
		return 1
	}
	musics, err := paths.ResolveAll(cfg.BaseDir, cfg.Musics)
	if err != nil {
		log.Error("Music input: %v", err)
		return 1
	}

	scratch, err := paths.EnsureScratchDir(cfg.BaseDir, cfg.ScratchDirName)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	log.Debug(cfg.Verbose, "Scratch directory: %s", scratch)

	comp, err := compositor.New(&cfg)
	if err != nil {
		log.Error("Font: %v", err)
		return 1
	}
	if comp.FontLabel() == compositor.FallbackFontLabel {
		log.Warn("No TTF font found, falling back to the %s font", comp.FontLabel())
	} else {
		log.Debug(cfg.Verbose, "Font: %s", comp.FontLabel())
	}

	plan := planner.BuildPlan(images, musics, float64(cfg.DurationSec), scratch, cfg.OutputPath)
	enc := ffmpeg.New(&cfg)
	prb := probe.New(ffmpeg.ProbePath(cfg.FFmpegPath))

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so
	// the pipeline stops between segments instead of leaving a half-written
	// final file.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping after the current step…")
		cancel()
	}()

	// Phase 4: Run the pipeline.
	if _, err := pipeline.NewRunner(&cfg, log, enc, prb, comp).Run(ctx, plan); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
