package main

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// upperHalf draws the top card pixel in the foreground color and the
// bottom one in the background color.
const upperHalf = '▀'

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)

func (a *app) draw() {
	a.screen.Clear()
	cols, rows := a.screen.Size()
	for y := 0; y < a.surface.Height()/2; y++ {
		for x := 0; x < cols && x < a.surface.Width(); x++ {
			top := a.pixel(x, 2*y)
			bottom := a.pixel(x, 2*y+1)
			a.screen.SetContent(x, y, upperHalf, nil,
				tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	a.drawStatus(cols, rows-1)
	a.screen.Show()
}

// pixel composites the card surface over the prize layer.
func (a *app) pixel(x, y int) tcell.Color {
	under := color.NRGBA{A: 0xff}
	if a.under != nil {
		under = a.under.NRGBAAt(x, y)
	}
	over := a.surface.At(x, y).(color.NRGBA)
	blend := func(o, u uint8) int32 {
		return int32((uint32(o)*uint32(over.A) + uint32(u)*(0xff-uint32(over.A))) / 0xff)
	}
	return tcell.NewRGBColor(blend(over.R, under.R), blend(over.G, under.G), blend(over.B, under.B))
}

func (a *app) drawStatus(cols, row int) {
	if row < 0 {
		return
	}
	status := a.status
	if a.session.Disabled() {
		status = "paused (p to resume) | " + status
	}
	text := []rune(" " + status)
	for x := range cols {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		a.screen.SetContent(x, row, r, nil, statusStyle)
	}
}
