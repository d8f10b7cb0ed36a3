package main

import (
	"hash/fnv"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/milk9111/petshow/pet"
)

const chimeLength = 80 * time.Millisecond

// pentatonic is one octave of C major pentatonic, in Hz.
var pentatonic = []float64{523.25, 587.33, 659.25, 783.99, 880.00}

// chimes plays a short tone whenever a user starts a pet animation.
type chimes struct {
	rate beep.SampleRate
	on   bool
}

func newChimes() (*chimes, error) {
	rate := beep.SampleRate(44100)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return &chimes{rate: rate}, err
	}
	return &chimes{rate: rate, on: true}, nil
}

func (c *chimes) observe(ev pet.Event) {
	if !c.on || ev.Kind != pet.EventStarted || !ev.User {
		return
	}
	c.play(toneFor(ev.Pet, ev.Animation))
}

func (c *chimes) play(freq float64) {
	sine, err := generators.SineTone(c.rate, freq)
	if err != nil {
		return
	}
	tone := beep.Take(c.rate.N(chimeLength), sine)
	speaker.Play(&effects.Volume{Streamer: tone, Base: 2, Volume: -2})
}

func (c *chimes) close() {
	if c.on {
		speaker.Close()
		c.on = false
	}
}

// toneFor picks a stable pitch for one pet animation.
func toneFor(petID, animation string) float64 {
	h := fnv.New32a()
	h.Write([]byte(petID))
	h.Write([]byte{0})
	h.Write([]byte(animation))
	return pentatonic[h.Sum32()%uint32(len(pentatonic))]
}
