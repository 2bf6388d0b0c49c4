package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"scroll-scene-renderer/internal/app"
	"scroll-scene-renderer/internal/batch"
	"scroll-scene-renderer/internal/config"
	"scroll-scene-renderer/internal/input"
	"scroll-scene-renderer/internal/loop"
	"scroll-scene-renderer/internal/panel"
	"scroll-scene-renderer/internal/raster"
	"scroll-scene-renderer/internal/script"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .toml)")
	headless := flag.Bool("headless", false, "Render frames to WebP files instead of opening a window")
	outputDir := flag.String("output", "", "Output directory for headless frames (default: renders)")
	paramsFile := flag.String("params", "", "Parameter file to watch for color edits (.json or .toml)")
	scriptFile := flag.String("script", "", "Input timeline for headless mode (default: scroll tour)")
	fps := flag.Int("fps", 0, "Headless frame rate (default: 60)")
	duration := flag.Float64("duration", 0, "Headless duration in seconds without a script (default: 10)")
	workers := flag.Int("workers", 0, "Number of encoder goroutines (default: NumCPU)")
	width := flag.Int("width", 0, "Viewport width in logical pixels (default: 800)")
	height := flag.Int("height", 0, "Viewport height in logical pixels (default: 600)")
	verbose := flag.Bool("v", false, "Log debug events")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Width:      *width,
		Height:     *height,
		OutputDir:  *outputDir,
		ParamsFile: *paramsFile,
		ScriptFile: *scriptFile,
		FPS:        *fps,
		Duration:   *duration,
		Workers:    *workers,
	})

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sc, pn, err := buildScene(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ParamsFile != "" {
		go func() {
			if err := pn.Watch(ctx, cfg.ParamsFile); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("parameter watcher stopped", "path", cfg.ParamsFile, "err", err)
			}
		}()
		fmt.Printf("Watching parameters: %s\n", cfg.ParamsFile)
	}

	in := input.NewState(cfg.Width, cfg.Height)
	in.OnResize(cfg.Width, cfg.Height, cfg.PixelRatio)
	r := raster.NewRenderer(cfg.Width, cfg.Height)

	if !*headless {
		l := loop.New(sc, in, pn, r, nil, log)
		bg, err := panel.ParseColor(cfg.Background)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: background: %v\n", err)
			os.Exit(1)
		}
		if err := app.Run(l, app.Options{
			Title:      "Scroll Scene",
			Width:      cfg.Width,
			Height:     cfg.Height,
			Background: bg,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	clock := &loop.ManualClock{}
	if err := renderHeadless(ctx, cfg, loop.New(sc, in, pn, r, clock, log), clock); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// renderHeadless replays a timeline at a fixed frame rate and writes every
// frame to the output directory.
func renderHeadless(ctx context.Context, cfg config.Config, l *loop.Loop, clock *loop.ManualClock) error {
	tl := script.Default(cfg.Width, cfg.Height, l.Scene.Sections(), cfg.Duration)
	length := cfg.Duration
	if cfg.ScriptFile != "" {
		var err error
		tl, err = script.Load(cfg.ScriptFile)
		if err != nil {
			return err
		}
		length = tl.Duration()
	}
	step := 1 / float64(cfg.FPS)
	n := int(length*float64(cfg.FPS)) + 1
	l.Renderer.Supersample = cfg.Supersample

	fmt.Printf("Scroll scene → WebP (headless)\n")
	fmt.Printf("Frames: %d at %d fps, Workers: %d\n", n, cfg.FPS, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	w, err := batch.Start(batch.Config{
		OutputDir:   cfg.OutputDir,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Progress:    2 * time.Second,
	})
	if err != nil {
		return err
	}

	player := script.NewPlayer(tl)
	player.Advance(0, l)

	ticks := make(chan time.Time)
	go func() {
		defer close(ticks)
		for i := 1; i < n; i++ {
			select {
			case ticks <- time.Time{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	runErr := l.Run(ctx, ticks, func(f loop.Frame) error {
		w.Write(f)
		clock.T = float64(f.Index+1) * step
		player.Advance(clock.T, l)
		return nil
	})
	results := w.Close()

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	var failed []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failed), n)

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		for _, e := range failed[:min(len(failed), 20)] {
			fmt.Printf("  %s: %s\n", e.Image, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if runErr == nil {
		runErr = ctx.Err()
	}
	if runErr != nil {
		return fmt.Errorf("render interrupted after %d of %d frames: %w", len(results), n, runErr)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d frames failed", len(failed))
	}
	return nil
}
