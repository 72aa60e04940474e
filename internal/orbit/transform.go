// Package orbit computes placement and motion for the entity hierarchy:
// absolute transforms, per-frame integration and tapered trails.
package orbit

import (
	"math"

	"github.com/litescript/ls-orrery/internal/scene"
)

// MaxDepth bounds hierarchy resolution. Deeper chains, which can only
// arise from a parent cycle, resolve as if parented to the origin.
const MaxDepth = 64

// State is an absolute placement: position in scene units and rotation
// in degrees.
type State struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// Rad returns the rotation in radians.
func (s State) Rad() float64 {
	return s.Rotation * math.Pi / 180
}

// RadiusAt returns the orbit radius at angle, perturbed by w when present.
func RadiusAt(radius float64, w *scene.Wave, angle float64) float64 {
	if w == nil {
		return radius
	}
	return radius + w.Amp*math.Sin(w.Freq*angle+w.Phase*math.Pi/180)
}

// EffectiveRadius is RadiusAt evaluated at the entity's current angle.
func EffectiveRadius(m scene.Motion, w *scene.Wave) float64 {
	return RadiusAt(m.OrbitRadius, w, m.CurrentAngle)
}

// Local returns a node's placement relative to its parent's frame.
// Lines point along their orbit, so their rotation comes from the angle.
func Local(n scene.Node) State {
	r := EffectiveRadius(n.Motion, n.Wave)
	st := State{
		X:        r * math.Cos(n.Motion.CurrentAngle),
		Y:        r * math.Sin(n.Motion.CurrentAngle),
		Rotation: n.Motion.CurrentRotation,
	}
	if n.Line {
		st.Rotation = n.Motion.CurrentAngle * 180 / math.Pi
	}
	return st
}

// Resolve returns the absolute placement of the object or group id.
// Unknown ids resolve to the origin.
func Resolve(s *scene.Scene, id string) State {
	return resolve(s, id, 0)
}

func resolve(s *scene.Scene, id string, depth int) State {
	if depth > MaxDepth {
		return State{}
	}
	n, ok := s.Node(id)
	if !ok {
		return State{}
	}
	local := Local(n)
	if n.ParentID == "" {
		return local
	}
	return Compose(resolve(s, n.ParentID, depth+1), local, n.Line)
}

// Compose places local inside parent's frame. Lines keep their own
// rotation instead of inheriting the parent's.
func Compose(parent, local State, line bool) State {
	rad := parent.Rad()
	sin, cos := math.Sincos(rad)
	out := State{
		X:        parent.X + local.X*cos - local.Y*sin,
		Y:        parent.Y + local.X*sin + local.Y*cos,
		Rotation: local.Rotation,
	}
	if !line {
		out.Rotation += parent.Rotation
	}
	return out
}
