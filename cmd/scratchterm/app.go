package main

import (
	"context"
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/scratch"
)

// maskLoaded is posted back to the event loop when a fetch completes.
type maskLoaded struct {
	source string
	img    image.Image
	err    error
}

// maskChanged is posted by the file watcher.
type maskChanged struct{}

type app struct {
	ctx    context.Context
	screen tcell.Screen
	cfg    scratch.Config
	mask   string
	prize  string
	loader *scratch.CachingLoader
	chime  *chime

	session *scratch.Session
	surface *scratch.Pixmap
	under   *image.NRGBA

	pressed bool
	status  string
	quit    bool
}

func (a *app) run() error {
	var err error
	a.session, err = scratch.NewSession(scratch.NewPixmap(0, 0),
		scratch.WithConfig(a.cfg),
		scratch.WithEventSink(scratch.EventSinkFunc(a.onEvent)),
		scratch.WithImageLoader(a.loader),
	)
	if err != nil {
		return err
	}

	if a.mask != "" && !isURL(a.mask) {
		w, err := watchFile(a.mask, func() {
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(maskChanged{}))
		})
		if err != nil {
			scratch.Logger().Warn("mask will not reload on change", "mask", a.mask, "err", err)
		} else {
			defer func() { _ = w.Close() }()
		}
	}

	a.resize()
	for !a.quit {
		a.handle(a.screen.PollEvent())
		a.draw()
	}
	return nil
}

func (a *app) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case nil:
		a.quit = true

	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC,
			ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			a.quit = true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			a.reload()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
			a.session.SetDisabled(!a.session.Disabled())
			a.pressed = false
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		if ev.Buttons()&tcell.Button1 != 0 {
			a.pressed = true
			a.session.OnPointerSample(cellToCard(x, y))
			return
		}
		if a.pressed {
			a.pressed = false
			a.session.CheckProgress()
		}

	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()

	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case maskLoaded:
			a.applyMask(data)
		case maskChanged:
			a.status = "mask changed, reloading"
			a.loader.Forget(a.mask)
			a.reload()
		}
	}
}

// resize rebuilds the surface for the current terminal size. The bottom
// row is kept for the status line.
func (a *app) resize() {
	cols, rows := a.screen.Size()
	a.surface = scratch.NewPixmap(cols, 2*max(rows-1, 0))
	if err := a.session.SetSurface(a.surface); err != nil {
		a.status = "terminal too small"
		a.under = nil
		return
	}
	a.under, _ = scratch.NewCaptionMask(a.surface.Width(), a.surface.Height(), a.prize, scratch.PrizeStyle)
	a.reload()
}

// reload shows a fresh card. A generated foil is painted at once; a mask
// source is fetched in the background and painted when it arrives, so the
// card is blank but already scratchable until then.
func (a *app) reload() {
	a.pressed = false
	if a.mask == "" {
		foil, err := scratch.NewCaptionMask(a.surface.Width(), a.surface.Height(), "Scratch here", scratch.DefaultMaskStyle)
		if err != nil {
			a.status = err.Error()
			return
		}
		if err := a.session.SetImage(foil); err != nil {
			a.status = err.Error()
			return
		}
		a.status = "scratch the card"
		return
	}

	if err := a.session.Reset(); err != nil {
		a.status = err.Error()
		return
	}
	a.status = "loading " + a.mask
	go func(source string) {
		img, err := a.loader.Load(a.ctx, source)
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(maskLoaded{source: source, img: img, err: err}))
	}(a.mask)
}

// applyMask paints a fetched mask. Fetches are never cancelled, so with
// several in flight the last one to arrive is what stays on screen.
func (a *app) applyMask(m maskLoaded) {
	if m.err != nil {
		scratch.Logger().Warn("mask load failed", "source", m.source, "err", m.err)
		a.status = m.err.Error()
		return
	}
	if a.session.State() == scratch.StateIdle {
		return
	}
	a.session.PaintMask(m.img)
	a.status = "scratch the card"
}

func (a *app) onEvent(ev scratch.Event) {
	switch ev.Kind {
	case scratch.EventScratch:
		a.status = fmt.Sprintf("scratched %.0f%%", ev.ScratchedPercentage*100)
	case scratch.EventCleared:
		a.status = fmt.Sprintf("cleared at %.0f%%, press r for another card", ev.ScratchedPercentage*100)
		a.chime.Play()
	}
}

// cellToCard maps a terminal cell to the card pixel under it. Each cell
// holds two card rows; the sample sits on the lower one, the middle of the
// cell.
func cellToCard(x, y int) scratch.Point {
	return scratch.Pt(float64(x), float64(2*y+1))
}
