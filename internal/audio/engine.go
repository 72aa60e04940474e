package audio

import (
	"time"

	"github.com/litescript/ls-orrery/internal/scene"
)

// Source supplies the latest frequency-magnitude snapshot, 0-255 per bin.
type Source interface {
	Spectrum() []byte
}

// Engine runs the Analyzer once per frame while playback is active and
// optionally pushes the reactive color onto the selection.
//
// Each Start begins a new generation. Frame loops carry the generation they
// were started under and stop rescheduling once Running reports false, so a
// Stop never leaves a loop behind.
type Engine struct {
	analyzer *Analyzer
	source   Source
	active   bool
	gen      uint64
	sync     bool
}

// NewEngine wraps a.
func NewEngine(a *Analyzer) *Engine {
	return &Engine{analyzer: a}
}

func (e *Engine) Analyzer() *Analyzer { return e.analyzer }
func (e *Engine) Active() bool        { return e.active }
func (e *Engine) TempoSync() bool     { return e.sync }
func (e *Engine) Generation() uint64  { return e.gen }

// Attach sets the spectrum source. nil detaches.
func (e *Engine) Attach(src Source) {
	e.source = src
}

// Attached reports whether a spectrum source is connected.
func (e *Engine) Attached() bool {
	return e.source != nil
}

// Start enters the active state and returns the new generation.
func (e *Engine) Start() uint64 {
	e.gen++
	e.active = true
	return e.gen
}

// Stop returns to idle. Loops from earlier generations stop on their next tick.
func (e *Engine) Stop() {
	e.gen++
	e.active = false
}

// Running reports whether a loop started under gen should keep going.
func (e *Engine) Running(gen uint64) bool {
	return e.active && gen == e.gen
}

// SetTempoSync toggles tempo sync. Every toggle restarts tempo tracking.
func (e *Engine) SetTempoSync(on bool) {
	e.sync = on
	e.analyzer.ResetTempo()
}

// Step analyzes one frame. It reports false when idle or detached, in which
// case nothing is mutated. With tempo sync on, the selected object and its
// direct children take the reactive color, and blinkers adopt the tempo.
func (e *Engine) Step(now time.Duration, s *scene.Scene, selected string) (Frame, bool) {
	if !e.active || e.source == nil {
		return Frame{}, false
	}
	f := e.analyzer.Analyze(e.source.Spectrum(), now)
	if e.sync && f.Tonal && selected != "" && s != nil {
		ApplyTempo(s, selected, f.Color, f.BPM)
	}
	return f, true
}

// ApplyTempo colors selected and its direct child objects, and sets blink
// rates to bpm on those already blinking. Returns the number touched.
func ApplyTempo(s *scene.Scene, selected, color string, bpm int) int {
	n := 0
	s.EachObject(func(o *scene.Object) {
		if o.ID != selected && o.ParentID != selected {
			return
		}
		o.Color = color
		if o.Visibility.Blink {
			o.Visibility = scene.BlinkAt(float64(bpm))
		}
		n++
	})
	return n
}
