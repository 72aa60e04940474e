package orbit

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-orrery/internal/scene"
)

const (
	trailSegments = 20
	trailSpan     = 0.6 // degrees of arc per unit of tail length
	minTrailSpeed = 0.01
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Trail is a tapered ribbon behind a moving object. Points are relative to
// Origin, the parent's absolute position.
type Trail struct {
	Origin Point
	Left   []Point
	Right  []Point
}

// Empty reports whether there is nothing to draw.
func (t Trail) Empty() bool {
	return len(t.Left) == 0
}

// Polygon returns the closed outline: forward along Left, back along Right.
func (t Trail) Polygon() []Point {
	if t.Empty() {
		return nil
	}
	out := make([]Point, 0, len(t.Left)+len(t.Right))
	out = append(out, t.Left...)
	for i := len(t.Right) - 1; i >= 0; i-- {
		out = append(out, t.Right[i])
	}
	return out
}

// World returns Polygon translated into absolute coordinates.
func (t Trail) World() []Point {
	poly := t.Polygon()
	for i := range poly {
		poly[i].X += t.Origin.X
		poly[i].Y += t.Origin.Y
	}
	return poly
}

// SVGPath renders the outline as path data relative to Origin.
func (t Trail) SVGPath() string {
	poly := t.Polygon()
	if len(poly) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range poly {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s %.2f %.2f ", cmd, p.X, p.Y)
	}
	b.WriteString("Z")
	return b.String()
}

// TrailFor builds the trail of o given its parent's absolute state. Slow
// objects and short tails produce an empty trail.
func TrailFor(o scene.Object, parent State) Trail {
	spanDeg := o.TailLength * trailSpan
	if math.Abs(o.OrbitSpeed) < minTrailSpeed || spanDeg < 1 {
		return Trail{}
	}

	dir := 1.0
	if o.OrbitSpeed < 0 {
		dir = -1
	}
	span := spanDeg * math.Pi / 180
	parentRad := parent.Rad()
	base := o.CurrentAngle + parentRad
	width := (o.Size + o.Glow) / 2

	t := Trail{
		Origin: Point{X: parent.X, Y: parent.Y},
		Left:   make([]Point, 0, trailSegments+1),
		Right:  make([]Point, 0, trailSegments+1),
	}
	for i := 0; i <= trailSegments; i++ {
		progress := float64(i) / trailSegments
		theta := base - dir*span*progress
		r := RadiusAt(o.OrbitRadius, o.Wave, theta-parentRad)
		sin, cos := math.Sincos(theta)
		x, y := r*cos, r*sin
		w := width * (1 - progress)
		t.Left = append(t.Left, Point{X: x + cos*w, Y: y + sin*w})
		t.Right = append(t.Right, Point{X: x - cos*w, Y: y - sin*w})
	}
	return t
}
