package orbit

import (
	"math"
	"strings"
	"testing"

	"github.com/litescript/ls-orrery/internal/scene"
)

func TestTrailDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		tail  float64
	}{
		{"no tail", 5, 0},
		{"no speed", 0, 100},
		{"tiny speed", 0.009, 100},
		{"tiny tail", 5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := body("o", "p", 100, 1)
			o.OrbitSpeed = tt.speed
			o.TailLength = tt.tail
			o.Size, o.Glow = 10, 40
			tr := TrailFor(o, State{X: 5, Y: 5, Rotation: 30})
			if !tr.Empty() || tr.SVGPath() != "" || tr.Polygon() != nil {
				t.Errorf("expected empty trail, got %d points", len(tr.Left))
			}
		})
	}
}

func TestTrailShape(t *testing.T) {
	o := body("o", "p", 100, 0)
	o.OrbitSpeed = 2
	o.TailLength = 150 // 90 degrees of arc
	o.Size, o.Glow = 10, 30

	tr := TrailFor(o, State{X: 7, Y: -3})
	if len(tr.Left) != trailSegments+1 || len(tr.Right) != trailSegments+1 {
		t.Fatalf("expected %d points per side", trailSegments+1)
	}
	if tr.Origin != (Point{X: 7, Y: -3}) {
		t.Errorf("origin = %+v", tr.Origin)
	}

	// Head sits at the object, offset by half width 20 on each side.
	if math.Abs(tr.Left[0].X-120) > tol || math.Abs(tr.Right[0].X-80) > tol {
		t.Errorf("head = %+v / %+v", tr.Left[0], tr.Right[0])
	}
	// Tail tapers to a point 90 degrees behind a forward-moving object.
	last := trailSegments
	if math.Abs(tr.Left[last].X-tr.Right[last].X) > tol || math.Abs(tr.Left[last].Y-tr.Right[last].Y) > tol {
		t.Error("tail should taper to zero width")
	}
	if math.Abs(tr.Left[last].X) > 1e-6 || math.Abs(tr.Left[last].Y+100) > 1e-6 {
		t.Errorf("tail = %+v, want (0, -100)", tr.Left[last])
	}

	poly := tr.Polygon()
	if len(poly) != 2*(trailSegments+1) {
		t.Fatalf("polygon has %d points", len(poly))
	}
	if poly[len(poly)-1] != tr.Right[0] {
		t.Error("polygon should end at the head of the right side")
	}

	path := tr.SVGPath()
	if !strings.HasPrefix(path, "M 120.00 0.00 ") || !strings.HasSuffix(path, "Z") {
		t.Errorf("path = %q", path)
	}

	world := tr.World()
	if math.Abs(world[0].X-127) > tol || math.Abs(world[0].Y+3) > tol {
		t.Errorf("world head = %+v", world[0])
	}
}

func TestTrailFollowsDirectionAndParentRotation(t *testing.T) {
	o := body("o", "p", 100, 0)
	o.OrbitSpeed = -1
	o.TailLength = 150
	tr := TrailFor(o, State{Rotation: 90})

	// Head is rotated into the parent's frame.
	if math.Abs(tr.Left[0].X) > 1e-6 || math.Abs(tr.Left[0].Y-100) > 1e-6 {
		t.Errorf("head = %+v, want (0, 100)", tr.Left[0])
	}
	// Reverse motion trails ahead in angle: 90+90 = 180 degrees.
	tail := tr.Left[trailSegments]
	if math.Abs(tail.X+100) > 1e-6 || math.Abs(tail.Y) > 1e-6 {
		t.Errorf("tail = %+v, want (-100, 0)", tail)
	}
}

func TestTrailUsesWaveInLocalFrame(t *testing.T) {
	o := body("o", "p", 100, 0)
	o.OrbitSpeed = 1
	o.TailLength = 150
	o.Wave = &scene.Wave{Amp: 10, Freq: 1, Phase: 90}
	tr := TrailFor(o, State{Rotation: 45})

	// At the head the local angle is 0, so r = 100 + 10*sin(90deg).
	head := tr.Left[0]
	if r := math.Hypot(head.X, head.Y); math.Abs(r-110) > 1e-6 {
		t.Errorf("head radius = %v, want 110", r)
	}
}
