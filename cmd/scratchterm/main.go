// Command scratchterm is an interactive scratch card in the terminal.
//
// Drag with the left mouse button to scratch; releasing the button checks
// progress. Each terminal cell shows two card pixels using half blocks.
// Press r for a fresh card, p to pause scratching and q or Esc to quit.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/scratch"
)

func main() {
	var (
		mask      = flag.String("mask", "", "mask image file or URL (default: generated foil)")
		radius    = flag.Float64("radius", 3, "brush radius in card pixels")
		scale     = flag.Int("scale", scratch.DefaultErasingCellScale, "coverage cells per brush radius")
		gap       = flag.Float64("gap", 1, "interpolation step along diagonal strokes")
		threshold = flag.Float64("threshold", scratch.DefaultClearThreshold, "erased fraction that clears the card")
		prize     = flag.String("prize", "You win!", "text revealed under the mask")
		logFile   = flag.String("log", "", "write debug logs to this file")
		mute      = flag.Bool("mute", false, "disable the chime")
	)
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(filepath.Clean(*logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer func() { _ = f.Close() }()
		scratch.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := scratch.Config{
		ErasePointRadius: *radius,
		ErasingCellScale: *scale,
		InterpolationGap: *gap,
		ClearThreshold:   *threshold,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	screen.EnableMouse()

	var ch *chime
	if !*mute {
		ch, err = newChime()
		if err != nil {
			// Non-fatal, the card works without sound.
			scratch.Logger().Warn("audio unavailable", "err", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &app{
		ctx:    ctx,
		screen: screen,
		cfg:    cfg,
		mask:   *mask,
		prize:  *prize,
		loader: scratch.NewCachingLoader(&scratch.SourceLoader{}, 0),
		chime:  ch,
	}
	err = a.run()

	cancel()
	screen.Fini()
	ch.Close()
	if err != nil {
		log.Fatal(err)
	}
}
