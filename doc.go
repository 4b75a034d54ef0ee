// Package scratch implements the erasing engine of a scratch card.
//
// # Overview
//
// A Session owns a drawing Surface showing an opaque mask image. Pointer
// samples erase a round brush footprint from the mask, and consecutive
// samples of one stroke are joined so fast movement leaves no gaps. The
// erased fraction of the card is estimated on a coarse CoverageGrid rather
// than by reading pixels back. When a progress check finds it at or above
// the clear threshold, the whole surface is wiped and a single
// "cleared" event is emitted.
//
// # Quick Start
//
//	import "github.com/gogpu/scratch"
//
//	pm := scratch.NewPixmap(300, 150)
//	s, err := scratch.NewSession(pm, scratch.WithEventSink(
//		scratch.EventSinkFunc(func(ev scratch.Event) {
//			fmt.Println(ev.Kind, ev.ScratchedPercentage)
//		})))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := s.LoadMask(ctx, "foil.png"); err != nil {
//		log.Print(err) // the card is blank but still usable
//	}
//
//	// Pointer moves while a button is held.
//	s.OnPointerSample(scratch.Pt(40, 60))
//	s.OnPointerSample(scratch.Pt(90, 75))
//
//	// Pointer released.
//	s.CheckProgress()
//
// # Hosts
//
// The package does no input handling or presentation of its own. A host
// forwards pointer samples while a button is held, calls CheckProgress on
// release and draws the Surface. Pixmap is an in-memory Surface with a
// device scale factor; cmd/scratchterm drives a session from a terminal.
//
// # Coordinate System
//
// Coordinates are logical pixels of the surface:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Samples outside the surface are clipped, never rejected.
//
// # Concurrency
//
// A Session is not safe for concurrent use. Hosts serialize pointer
// samples, progress checks and mask loads on one goroutine; masks fetched
// elsewhere are handed back through PaintMask.
package scratch
