package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/litescript/ls-orrery/internal/palette"
)

// Spectrum band layout, in bins.
const (
	lowBins      = 3
	midStart     = 4
	midEnd       = 46
	centroidBins = 120
	centroidSpan = 60  // bin index that maps to the top of the hue range
	maxHue       = 300 // degrees
)

// Frame is the result of analyzing one spectrum snapshot.
type Frame struct {
	Low    float64 `json:"low"`
	Mid    float64 `json:"mid"`
	Beat   bool    `json:"beat"`
	BPM    int     `json:"bpm"`
	Tonal  bool    `json:"tonal"` // spectrum had energy, so Target is meaningful
	Target float64 `json:"target"`
	Hue    float64 `json:"hue"`
	Color  string  `json:"color"`
}

// Analyzer tracks beats, tempo and the reactive hue across frames.
type Analyzer struct {
	cfg  Config
	rng  *rand.Rand
	mode Mode

	hue      float64
	lastBeat time.Duration
	beatSeen bool
	window   []float64
	bpm      int
}

// NewAnalyzer creates an analyzer. rng drives chaos jitter.
func NewAnalyzer(cfg Config, rng *rand.Rand) *Analyzer {
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Analyzer{
		cfg:    cfg,
		rng:    rng,
		bpm:    cfg.DefaultBPM,
		window: make([]float64, 0, cfg.Window),
	}
}

func (a *Analyzer) Mode() Mode       { return a.mode }
func (a *Analyzer) SetMode(m Mode)   { a.mode = m }
func (a *Analyzer) BPM() int         { return a.bpm }
func (a *Analyzer) Hue() float64     { return a.hue }
func (a *Analyzer) Samples() int     { return len(a.window) }
func (a *Analyzer) SetHue(h float64) { a.hue = h }

// ResetTempo clears the BPM window and beat timing. The last reported
// tempo is kept until new beats replace it.
func (a *Analyzer) ResetTempo() {
	a.window = a.window[:0]
	a.lastBeat = 0
	a.beatSeen = false
}

// Analyze consumes one spectrum snapshot taken at now, a monotonic offset.
func (a *Analyzer) Analyze(spectrum []byte, now time.Duration) Frame {
	f := Frame{
		Low: bandAverage(spectrum, 0, lowBins),
		Mid: bandAverage(spectrum, midStart, midEnd),
	}

	if f.Low > a.cfg.BeatThreshold && (!a.beatSeen || now-a.lastBeat > a.cfg.MinBeatGap) {
		f.Beat = true
		if a.beatSeen {
			a.observeInterval(now - a.lastBeat)
		}
		a.lastBeat = now
		a.beatSeen = true
	}
	f.BPM = a.bpm

	if target, ok := centroidHue(spectrum); ok {
		f.Tonal = true
		f.Target = target
		switch a.mode {
		case ModeSmooth:
			a.hue += (target - a.hue) * a.cfg.SmoothStep
		case ModeImpulse:
			if f.Beat {
				a.hue = target
			}
		case ModeChaos:
			if f.Mid > a.cfg.ChaosThreshold {
				jitter := a.rng.Float64()*2*a.cfg.ChaosJitter - a.cfg.ChaosJitter
				a.hue = math.Mod(target+jitter, 360)
			}
		}
	}
	f.Hue = a.hue
	f.Color = palette.HueToHex(a.hue)
	return f
}

// observeInterval folds an inter-beat interval into the tempo estimate.
// Implausible tempos are dropped.
func (a *Analyzer) observeInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	bpm := float64(time.Minute) / float64(interval)
	if bpm < a.cfg.MinBPM || bpm > a.cfg.MaxBPM {
		return
	}
	if len(a.window) == a.cfg.Window {
		copy(a.window, a.window[1:])
		a.window = a.window[:len(a.window)-1]
	}
	a.window = append(a.window, bpm)

	sum := 0.0
	for _, v := range a.window {
		sum += v
	}
	a.bpm = int(math.Round(sum / float64(len(a.window))))
}

// bandAverage averages bins [from, to). Bins past the end count as silence.
func bandAverage(spectrum []byte, from, to int) float64 {
	sum := 0
	for i := from; i < to && i < len(spectrum); i++ {
		sum += int(spectrum[i])
	}
	return float64(sum) / float64(to-from)
}

// centroidHue maps the magnitude-weighted mean bin to a hue in [0, 300].
// Reports false for a silent spectrum.
func centroidHue(spectrum []byte) (float64, bool) {
	var weighted, total float64
	for i := 0; i < centroidBins && i < len(spectrum); i++ {
		m := float64(spectrum[i])
		weighted += float64(i) * m
		total += m
	}
	if total == 0 {
		return 0, false
	}
	hue := weighted / total / centroidSpan * maxHue
	return math.Max(0, math.Min(maxHue, hue)), true
}
