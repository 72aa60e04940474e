package scene

import (
	"math"
	"testing"
)

func satellite(id, parent, group string, radius float64) Object {
	o := testObject(id, parent)
	o.GroupID = group
	o.OrbitRadius = radius
	return o
}

func TestRingsGroupsAndLegacy(t *testing.T) {
	s := New([]Object{
		testObject("core", ""),
		satellite("a1", "core", "ga", 200),
		satellite("a2", "core", "ga", 200),
		satellite("l1", "core", "", 100.2),
		satellite("l2", "core", "", 99.9),
		satellite("x", "other", "gx", 50),
	}, nil)

	rings := s.Rings("core")
	if len(rings) != 2 {
		t.Fatalf("expected 2 rings, got %d: %+v", len(rings), rings)
	}
	if !rings[0].Legacy() || rings[0].Key != "legacy-100" || rings[0].Count != 2 {
		t.Errorf("first ring should be the legacy ring: %+v", rings[0])
	}
	if rings[1].GroupID != "ga" || rings[1].Count != 2 {
		t.Errorf("second ring should be ga: %+v", rings[1])
	}

	members := s.RingMembers("core", rings[0])
	if len(members) != 2 {
		t.Errorf("legacy ring members = %v", members)
	}
	if s.Rings("") != nil {
		t.Error("no parent means no rings")
	}
}

func TestUpdateRingIsolation(t *testing.T) {
	s := New([]Object{
		testObject("core", ""),
		satellite("a1", "core", "ga", 100),
		satellite("b1", "core", "gb", 150),
	}, nil)
	rings := s.Rings("core")

	n := s.UpdateRing("core", rings[1], func(o *Object) { o.Color = "#000000" })
	if n != 1 {
		t.Errorf("updated %d, want 1", n)
	}
	a, _ := s.Object("a1")
	b, _ := s.Object("b1")
	if a.Color == "#000000" || b.Color != "#000000" {
		t.Errorf("ring update leaked: a=%s b=%s", a.Color, b.Color)
	}
}

func TestAddRing(t *testing.T) {
	s := New([]Object{testObject("core", "")}, nil)
	tmpl := DefaultRingTemplate("#112233")

	g1 := s.AddRing("core", tmpl)
	if g1 == "" {
		t.Fatal("AddRing returned empty id")
	}
	rings := s.Rings("core")
	if len(rings) != 1 || rings[0].Radius != 100 || rings[0].Count != 5 {
		t.Fatalf("unexpected first ring: %+v", rings)
	}

	s.AddRing("core", tmpl)
	rings = s.Rings("core")
	if len(rings) != 2 || rings[1].Radius != 150 {
		t.Fatalf("second ring should sit at 150: %+v", rings)
	}

	if s.AddRing("missing", tmpl) != "" {
		t.Error("AddRing on unknown parent should fail")
	}
}

func TestSetRingCountRespaces(t *testing.T) {
	s := New([]Object{testObject("core", "")}, nil)
	s.AddRing("core", DefaultRingTemplate("#ffffff"))
	ring := s.Rings("core")[0]

	s.SetRingCount("core", ring, 8, DefaultRingTemplate("#ffffff"))
	ids := s.RingMembers("core", ring)
	if len(ids) != 8 {
		t.Fatalf("expected 8 members, got %d", len(ids))
	}
	for i, id := range ids {
		o, _ := s.Object(id)
		want := float64(i) / 8 * 2 * math.Pi
		if math.Abs(o.CurrentAngle-want) > 1e-9 {
			t.Errorf("member %d angle = %v, want %v", i, o.CurrentAngle, want)
		}
		if o.GroupID != ring.GroupID {
			t.Errorf("member %d lost group id", i)
		}
	}

	s.SetRingCount("core", ring, 2, DefaultRingTemplate("#ffffff"))
	if got := len(s.RingMembers("core", ring)); got != 2 {
		t.Errorf("expected 2 members after shrink, got %d", got)
	}
	if !s.Has("core") {
		t.Error("core must survive ring resize")
	}
}

func TestSetRingShapeSizes(t *testing.T) {
	tests := []struct {
		shape    Shape
		before   float64
		expected float64
	}{
		{ShapePoint, 30, 1},
		{ShapeLine, 30, 80},
		{ShapeLine, 60, 60},
		{ShapeStar, 5, 40},
		{ShapeCircle, 1, 10},
		{ShapeSphere, 25, 25},
	}
	for _, tt := range tests {
		o := satellite("s", "core", "g", 100)
		o.Size = tt.before
		s := New([]Object{testObject("core", ""), o}, nil)
		ring := s.Rings("core")[0]
		s.SetRingShape("core", ring, tt.shape, "")
		got, _ := s.Object("s")
		if got.Shape != tt.shape || got.Size != tt.expected {
			t.Errorf("%s from %v: got %s/%v, want size %v", tt.shape, tt.before, got.Shape, got.Size, tt.expected)
		}
	}
}
