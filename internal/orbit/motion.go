package orbit

import (
	"time"

	"github.com/litescript/ls-orrery/internal/scene"
)

// Motion scale factors from stored speed units.
const (
	RotationScale = 50  // degrees per second per unit rotation speed
	OrbitScale    = 0.3 // radians per second per unit orbit speed
)

// Step advances every object and group by dt seconds. Pinned objects keep
// their orbit angle but still spin.
func Step(s *scene.Scene, dt float64) {
	if dt <= 0 {
		return
	}
	s.EachObject(func(o *scene.Object) {
		o.CurrentRotation += o.RotationSpeed * o.RotationDirection * dt * RotationScale
		if !o.Pinned {
			o.CurrentAngle += o.OrbitSpeed * OrbitScale * dt
		}
	})
	s.EachGroup(func(g *scene.Group) {
		g.CurrentRotation += g.RotationSpeed * g.RotationDirection * dt * RotationScale
		g.CurrentAngle += g.OrbitSpeed * OrbitScale * dt
	})
}

// Clock turns successive frame timestamps into elapsed seconds.
type Clock struct {
	last    time.Time
	started bool
}

// Tick records now and returns the seconds since the previous tick.
// The first tick, and any tick that goes backwards, yields 0.
func (c *Clock) Tick(now time.Time) float64 {
	if !c.started {
		c.last, c.started = now, true
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset forgets the previous tick, so the next Tick yields 0.
func (c *Clock) Reset() {
	c.started = false
}
