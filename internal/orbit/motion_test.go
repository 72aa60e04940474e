package orbit

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/scene"
)

func TestStepAdvancesAngleAndRotation(t *testing.T) {
	o := body("o", "", 100, 1)
	o.OrbitSpeed = 2
	o.RotationSpeed = 3
	o.RotationDirection = -1
	g := scene.Group{ID: "g", Motion: scene.Motion{OrbitSpeed: 1, RotationSpeed: 1, RotationDirection: 1}}
	s := scene.New([]scene.Object{o}, []scene.Group{g})

	Step(s, 0.5)

	got, _ := s.Object("o")
	if want := 1 + 2*0.3*0.5; math.Abs(got.CurrentAngle-want) > tol {
		t.Errorf("angle = %v, want %v", got.CurrentAngle, want)
	}
	if want := -3 * 0.5 * 50.0; math.Abs(got.CurrentRotation-want) > tol {
		t.Errorf("rotation = %v, want %v", got.CurrentRotation, want)
	}
	gg, _ := s.Group("g")
	if math.Abs(gg.CurrentAngle-0.15) > tol || math.Abs(gg.CurrentRotation-25) > tol {
		t.Errorf("group = %+v", gg.Motion)
	}
}

func TestStepPinnedInvariance(t *testing.T) {
	for _, speed := range []float64{-50, -1, 0, 0.5, 7, 1000} {
		o := body("p", "", 0, 2.5)
		o.Pinned = true
		o.OrbitSpeed = speed
		o.RotationSpeed = 1
		s := scene.New([]scene.Object{o}, nil)
		for range 100 {
			Step(s, 1.0/60)
		}
		got, _ := s.Object("p")
		if got.CurrentAngle != 2.5 {
			t.Errorf("speed %v: pinned angle changed to %v", speed, got.CurrentAngle)
		}
		if got.CurrentRotation == 0 {
			t.Errorf("speed %v: pinned object should still spin", speed)
		}
	}
}

func TestStepIgnoresNonPositiveDt(t *testing.T) {
	o := body("o", "", 100, 1)
	o.OrbitSpeed = 5
	s := scene.New([]scene.Object{o}, nil)
	Step(s, 0)
	Step(s, -1)
	got, _ := s.Object("o")
	if got.CurrentAngle != 1 {
		t.Errorf("angle = %v, want 1", got.CurrentAngle)
	}
}

func TestClockIrregularTicks(t *testing.T) {
	var c Clock
	start := time.Unix(1000, 0)

	if dt := c.Tick(start); dt != 0 {
		t.Errorf("first tick = %v, want 0", dt)
	}
	ticks := []struct {
		at   time.Duration
		want float64
	}{
		{16 * time.Millisecond, 0.016},
		{50 * time.Millisecond, 0.034},
		{550 * time.Millisecond, 0.5},
		{500 * time.Millisecond, 0}, // backwards
		{520 * time.Millisecond, 0.02},
	}
	for _, tk := range ticks {
		if dt := c.Tick(start.Add(tk.at)); math.Abs(dt-tk.want) > 1e-9 {
			t.Errorf("tick at %v = %v, want %v", tk.at, dt, tk.want)
		}
	}

	c.Reset()
	if dt := c.Tick(start.Add(time.Hour)); dt != 0 {
		t.Errorf("tick after reset = %v, want 0", dt)
	}
}
