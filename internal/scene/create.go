package scene

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// NewObject builds an unparented object with the per-shape defaults.
// index is the number of objects already in the scene.
func NewObject(shape Shape, index int, rng *rand.Rand) Object {
	size, glow := 30.0, 0.0
	switch shape {
	case ShapeImage:
		size = 100
	case ShapePoint:
		size, glow = 1, 10
	case ShapeLine:
		size, glow = 80, 20
	case ShapeStar, ShapeOutlineStar:
		size, glow = 50, 15
	case ShapeOutlineCircle:
		size, glow = 50, 10
	}

	o := defaultObject()
	o.ID = NewID()
	o.Name = fmt.Sprintf("%s-%d", strings.ToUpper(string(shape)), index+1)
	o.Shape = shape
	o.Size = size
	o.Glow = glow
	o.OrbitRadius = 150 + float64(index)*5
	o.CurrentAngle = rng.Float64() * 2 * math.Pi
	return o
}

// DefaultCore is the pinned point synthesized when no state exists.
func DefaultCore(name string) Object {
	o := defaultObject()
	o.ID = NewID()
	o.Name = name
	o.Shape = ShapePoint
	o.Glow = 300
	o.Size = 1
	o.Pinned = true
	return o
}

// Seed builds a scene from persisted collections, synthesizing the default
// core when there are no objects. Reports whether the core was synthesized.
func Seed(objects []Object, groups []Group, coreName string) (*Scene, bool) {
	s := New(objects, groups)
	if len(s.objects) > 0 {
		return s, false
	}
	s.AddObject(DefaultCore(coreName))
	return s, true
}
