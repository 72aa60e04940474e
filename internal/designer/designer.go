// Package designer generates randomized, tempo-synchronized visual presets
// and applies them to a selected object and one of its satellite rings.
package designer

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/scene"
)

// DefaultBPM is used when no tempo has been detected.
const DefaultBPM = 120

var (
	divisors    = []float64{1, 2, 4, 8}
	waveFreqs   = []float64{1, 2, 4, 8}
	designShape = []scene.Shape{
		scene.ShapeCircle, scene.ShapeSphere, scene.ShapePoint, scene.ShapeLine,
		scene.ShapeStar, scene.ShapeOutlineStar, scene.ShapeOutlineCircle,
	}
)

// CoreStyle is written onto the selected object.
type CoreStyle struct {
	Color      string           `json:"color"`
	Glow       float64          `json:"glow"`
	Visibility scene.Visibility `json:"visibility"`
	OrbitSpeed float64          `json:"orbitSpeed"`
	Size       float64          `json:"size"`
}

// SatelliteStyle is written onto every member of the active ring.
type SatelliteStyle struct {
	Shape      scene.Shape      `json:"type"`
	Color      string           `json:"color"`
	Glow       float64          `json:"glow"`
	OrbitSpeed float64          `json:"orbitSpeed"`
	TailLength float64          `json:"tailLength"`
	Visibility scene.Visibility `json:"visibility"`
	Size       float64          `json:"size"`
}

// Design is one generated preset.
type Design struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Accent     string         `json:"accent"`
	BPM        int            `json:"bpm"`
	Core       CoreStyle      `json:"core"`
	Satellites SatelliteStyle `json:"sats"`
	Wave       scene.Wave     `json:"wave"`
}

// Generator produces designs from a random source.
type Generator struct {
	rng  *rand.Rand
	lang Language
}

// NewGenerator creates a generator naming designs in lang.
func NewGenerator(rng *rand.Rand, lang Language) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, lang: lang}
}

func (g *Generator) Language() Language        { return g.lang }
func (g *Generator) SetLanguage(lang Language) { g.lang = lang }

// Generate builds a design for bpm, falling back to DefaultBPM when bpm is
// not positive. Playing audio widens the wave amplitude.
func (g *Generator) Generate(bpm int, playing bool) Design {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	tempo := float64(bpm)
	rhythm := tempo / 60 * 10

	baseHue := g.rng.Float64() * 360
	satHue := math.Mod(baseHue+180, 360)
	if g.rng.Float64() <= 0.5 {
		satHue = math.Mod(baseHue+g.rng.Float64()*60-30+360, 360)
	}
	shape := designShape[g.rng.Intn(len(designShape))]

	energy := 1.0
	if playing {
		energy = 1.5
	}

	list := g.lang.Names()
	name := fmt.Sprintf("%s %d", list[g.rng.Intn(len(list))], g.rng.Intn(99))

	core := CoreStyle{
		Color:      palette.HueToHex(baseHue),
		Glow:       150 + g.rng.Float64()*300,
		Visibility: scene.BlinkAt(tempo),
		Size:       5 + g.rng.Float64()*50,
	}

	sats := SatelliteStyle{
		Shape:      shape,
		Color:      palette.HueToHex(satHue),
		Glow:       40 + g.rng.Float64()*150,
		OrbitSpeed: g.rhythmicSpeed(rhythm),
		Visibility: scene.Opaque,
	}
	if g.rng.Float64() > 0.3 {
		sats.TailLength = 50 + g.rng.Float64()*200
	}
	if g.rng.Float64() > 0.7 {
		sats.Visibility = scene.BlinkAt(tempo)
	}
	if shape.Elongated() {
		sats.Size = 40 + g.rng.Float64()*120
	} else {
		sats.Size = 4 + g.rng.Float64()*25
	}

	return Design{
		ID:         scene.NewID(),
		Name:       name,
		Accent:     palette.HueToHex(baseHue),
		BPM:        bpm,
		Core:       core,
		Satellites: sats,
		Wave: scene.Wave{
			Amp:   (g.rng.Float64()*100 + 20) * energy,
			Freq:  waveFreqs[g.rng.Intn(len(waveFreqs))],
			Phase: g.rng.Float64() * 360,
		},
	}
}

// rhythmicSpeed divides the base speed by a random time signature and
// picks a random direction.
func (g *Generator) rhythmicSpeed(base float64) float64 {
	k := divisors[g.rng.Intn(len(divisors))]
	if g.rng.Float64() > 0.5 {
		return base / k
	}
	return -base / k
}

// Apply writes d onto selected and onto the members of ring, a ring of
// selected's children. Other rings are left alone. ring may be nil when the
// selection has no satellites. Reports false when selected is unknown.
func Apply(s *scene.Scene, selected string, ring *scene.Ring, d Design) bool {
	if selected == "" || !s.Has(selected) {
		return false
	}
	s.UpdateObject(selected, func(o *scene.Object) {
		o.Color = d.Core.Color
		o.Glow = d.Core.Glow
		o.Visibility = d.Core.Visibility
		o.OrbitSpeed = d.Core.OrbitSpeed
		o.Size = d.Core.Size
	})
	if ring == nil {
		return true
	}
	s.UpdateRing(selected, *ring, func(o *scene.Object) {
		sat := d.Satellites
		o.Shape = sat.Shape
		o.Color = sat.Color
		o.Glow = sat.Glow
		o.OrbitSpeed = sat.OrbitSpeed
		o.TailLength = sat.TailLength
		o.Visibility = sat.Visibility
		o.Size = sat.Size
		w := d.Wave
		o.Wave = &w
	})
	return true
}
