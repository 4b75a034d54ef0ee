package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// chime plays a short two-note jingle when a card clears. A nil chime is
// silent.
type chime struct{}

func newChime() (*chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &chime{}, nil
}

func (c *chime) Play() {
	if c == nil {
		return
	}
	low, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		return
	}
	high, err := generators.SineTone(sampleRate, 1320)
	if err != nil {
		return
	}
	note := sampleRate.N(120 * time.Millisecond)
	speaker.Play(beep.Seq(beep.Take(note, low), beep.Take(note, high)))
}

func (c *chime) Close() {
	if c == nil {
		return
	}
	speaker.Close()
}
