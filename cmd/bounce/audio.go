package main

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/stencil/ecs/collision"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 40 * time.Millisecond
	maxVoices  = 4
)

// Tones mixes short blips for collision hits. The mixer is only connected to
// the speaker after Start, so a muted Tones still accepts and drops voices.
type Tones struct {
	mixer   *beep.Mixer
	started bool
}

func NewTones() *Tones {
	return &Tones{mixer: &beep.Mixer{}}
}

// Start opens the speaker and plays the mixer.
func (t *Tones) Start() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(t.mixer)
	t.started = true
	return nil
}

func (t *Tones) Close() {
	if t.started {
		speaker.Clear()
		speaker.Close()
		t.started = false
	}
}

// Voices returns the number of tones still sounding.
func (t *Tones) Voices() int {
	speaker.Lock()
	defer speaker.Unlock()
	return t.mixer.Len()
}

// Hit queues a blip whose pitch follows the side that was struck. Hits beyond
// maxVoices concurrent tones are dropped.
func (t *Tones) Hit(hit collision.Hit) error {
	speaker.Lock()
	defer speaker.Unlock()
	if t.mixer.Len() >= maxVoices {
		return nil
	}
	sine, err := generators.SineTone(sampleRate, pitchOf(hit.Contact.Side))
	if err != nil {
		return fmt.Errorf("tone for %s hit: %w", hit.Contact.Side, err)
	}
	t.mixer.Add(&effects.Volume{
		Streamer: beep.Take(sampleRate.N(toneLength), sine),
		Base:     2,
		Volume:   -2,
	})
	return nil
}

func pitchOf(side collision.Side) float64 {
	switch side {
	case collision.SideTop, collision.SideBottom:
		return 660
	case collision.SideLeft, collision.SideRight:
		return 440
	default:
		return 220
	}
}
