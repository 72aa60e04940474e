// Package audio turns a live frequency spectrum into beats, tempo and a
// reactive hue, and supplies that spectrum from decoded audio files.
package audio

import (
	"fmt"
	"strings"
	"time"
)

// Config tunes beat detection and hue reactivity.
type Config struct {
	BeatThreshold  float64       // low-band average that counts as a beat
	MinBeatGap     time.Duration // refractory period between beats
	MinBPM         float64
	MaxBPM         float64
	Window         int // rolling BPM samples
	DefaultBPM     int
	SmoothStep     float64 // per-frame easing in smooth mode
	ChaosThreshold float64 // mid-band average that triggers a chaos jump
	ChaosJitter    float64 // +/- degrees
}

// DefaultConfig returns the tuning used by the visualizer.
func DefaultConfig() Config {
	return Config{
		BeatThreshold:  160,
		MinBeatGap:     250 * time.Millisecond,
		MinBPM:         60,
		MaxBPM:         240,
		Window:         8,
		DefaultBPM:     120,
		SmoothStep:     0.05,
		ChaosThreshold: 100,
		ChaosJitter:    20,
	}
}

// SpectrumConfig mirrors the knobs of a browser AnalyserNode.
type SpectrumConfig struct {
	FFTSize     int // power of two; bins = FFTSize/2
	MinDecibels float64
	MaxDecibels float64
	Smoothing   float64 // temporal smoothing constant in [0, 1)
}

// DefaultSpectrumConfig yields 128 byte bins.
func DefaultSpectrumConfig() SpectrumConfig {
	return SpectrumConfig{
		FFTSize:     256,
		MinDecibels: -100,
		MaxDecibels: -30,
		Smoothing:   0.8,
	}
}

// Mode selects how the reactive hue follows the spectral centroid.
type Mode int

const (
	ModeSmooth  Mode = iota // ease toward the target every frame
	ModeImpulse             // snap to the target on beats
	ModeChaos               // jitter around the target on loud mids
)

var modeNames = [...]string{"smooth", "impulse", "chaos"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Next cycles through the modes.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return ModeSmooth, fmt.Errorf("unknown reactive mode %q", s)
}
