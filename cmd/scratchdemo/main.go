// Command scratchdemo scratches a card with a scripted zigzag stroke and
// saves the result.
//
// The stroke sweeps the card left to right and back, one pass per brush
// diameter, checking progress after every pass the way a host checks on
// pointer release. The output PNG shows the prize layer wherever the mask
// was erased.
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/scratch"
	xdraw "golang.org/x/image/draw"
)

//go:embed assets/mask.svg
var assets embed.FS

const defaultMask = "assets/mask.svg"

func main() {
	var (
		width     = flag.Int("width", 300, "card width")
		height    = flag.Int("height", 150, "card height")
		mask      = flag.String("mask", "", "mask image file or URL (default: built-in foil)")
		output    = flag.String("output", "scratch.png", "output file")
		radius    = flag.Float64("radius", scratch.DefaultErasePointRadius, "brush radius")
		scale     = flag.Int("scale", scratch.DefaultErasingCellScale, "coverage cells per brush radius")
		gap       = flag.Float64("gap", scratch.DefaultInterpolationGap, "interpolation step along diagonal strokes")
		threshold = flag.Float64("threshold", scratch.DefaultClearThreshold, "erased fraction that clears the card")
		step      = flag.Float64("step", 12, "distance between pointer samples")
		verbose   = flag.Bool("v", false, "log grid rebuilds and interpolation")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	scratch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := scratch.Config{
		ErasePointRadius: *radius,
		ErasingCellScale: *scale,
		InterpolationGap: *gap,
		ClearThreshold:   *threshold,
	}
	if *step <= 0 {
		log.Fatalf("invalid -step %v", *step)
	}

	surface := scratch.NewPixmap(*width, *height)
	loader := &scratch.SourceLoader{}
	source := *mask
	if source == "" {
		loader.FS = assets
		source = defaultMask
	}

	var truth float64
	sink := scratch.EventSinkFunc(func(ev scratch.Event) {
		if ev.Kind == scratch.EventScratch {
			// The surface is wiped right after a threshold crossing, so
			// sample the pixels while they still reflect the strokes.
			truth = surface.ClearedRatio()
		}
		slog.Info("event", "kind", ev.Kind, "scratched", ev.ScratchedPercentage)
	})

	session, err := scratch.NewSession(surface,
		scratch.WithConfig(cfg),
		scratch.WithEventSink(sink),
		scratch.WithImageLoader(loader),
	)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	if err := session.LoadMask(context.Background(), source); err != nil {
		log.Fatalf("Failed to load mask: %v", err)
	}

	passes := zigzag(session, *width, *height, *radius, *step)

	estimate, err := session.ErasedRatio()
	if err != nil {
		log.Fatalf("Failed to read progress: %v", err)
	}
	fmt.Printf("passes: %d  state: %s\n", passes, session.State())
	fmt.Printf("grid estimate: %.3f  pixels cleared: %.3f  (%d/%d cells)\n",
		estimate, truth, session.Grid().MarkedCount(), session.Grid().Len())

	card, err := composite(surface)
	if err != nil {
		log.Fatalf("Failed to render prize: %v", err)
	}
	if err := savePNG(*output, card); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Result saved to %s (%dx%d)\n", *output, *width, *height)
}

// zigzag sweeps the card in horizontal passes one brush diameter apart,
// alternating direction, and returns how many passes ran before the card
// cleared.
func zigzag(s *scratch.Session, w, h int, radius, step float64) int {
	passes := 0
	for y := radius; y-radius < float64(h); y += 2 * radius {
		passes++
		forward := passes%2 == 1
		for x := 0.0; x <= float64(w); x += step {
			px := x
			if !forward {
				px = float64(w) - x
			}
			s.OnPointerSample(scratch.Pt(px, y))
		}
		s.CheckProgress()
		if s.State() == scratch.StateScratched {
			break
		}
	}
	return passes
}

// composite lays the scratched surface over a prize card.
func composite(surface *scratch.Pixmap) (*image.NRGBA, error) {
	b := surface.Bounds()
	card, err := scratch.NewCaptionMask(b.Dx(), b.Dy(), "You win!", scratch.PrizeStyle)
	if err != nil {
		return nil, err
	}
	xdraw.Draw(card, b, surface, b.Min, xdraw.Over)
	return card, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
