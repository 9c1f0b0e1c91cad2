// Package speaker plays audio cues as short synthesized tones through the
// default sound device.
package speaker

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/starfall/internal/audio"
)

const sampleRate = beep.SampleRate(44100)

// tone is one note of a cue.
type tone struct {
	freq     float64
	duration time.Duration
}

var (
	starTones     = []tone{{880, 40 * time.Millisecond}, {1320, 40 * time.Millisecond}}
	asteroidTones = []tone{{220, 120 * time.Millisecond}}
	gameOverTones = []tone{
		{440, 150 * time.Millisecond},
		{330, 150 * time.Millisecond},
		{220, 300 * time.Millisecond},
	}
)

// Cues plays cues through the default audio device.
type Cues struct {
	mu     sync.Mutex
	closed bool
}

var _ audio.Cues = (*Cues)(nil)

// New initializes the speaker.
func New() (*Cues, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Cues{}, nil
}

// StarCaught plays a short rising chirp.
func (c *Cues) StarCaught() { c.play(starTones) }

// AsteroidHit plays a low thud.
func (c *Cues) AsteroidHit() { c.play(asteroidTones) }

// GameOver plays a falling three-note phrase.
func (c *Cues) GameOver() { c.play(gameOverTones) }

// Close stops playback and releases the audio device.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	speaker.Clear()
	speaker.Close()
}

func (c *Cues) play(tones []tone) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	s, err := sequence(tones)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// sequence joins tones into one quiet streamer.
func sequence(tones []tone) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %v Hz: %w", t.freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(t.duration), sine))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   -2,
	}, nil
}
