package scene

import (
	"fmt"
	"math"
	"sort"
)

// legacyTolerance is how close two radii must be to share a legacy ring.
const legacyTolerance = 0.5

// Ring is a set of siblings sharing one orbit: either an explicit group id
// or, for legacy data without one, a common orbit radius.
type Ring struct {
	Key     string  // group id, or "legacy-<radius>"
	GroupID string  // empty for legacy rings
	Radius  float64 // radius of the first member seen
	Count   int
	Sample  Object
}

// Legacy reports whether the ring is identified by radius.
func (r Ring) Legacy() bool {
	return r.GroupID == ""
}

// legacyRadius is the rounded radius that legacy membership compares against.
func (r Ring) legacyRadius() float64 {
	return math.Round(r.Radius)
}

// Contains reports whether o, a child of the ring's parent, is a member.
func (r Ring) Contains(o *Object) bool {
	if !r.Legacy() {
		return o.GroupID == r.GroupID
	}
	return o.GroupID == "" && math.Abs(o.OrbitRadius-r.legacyRadius()) < legacyTolerance
}

// Rings lists the distinct rings among parentID's direct object children,
// sorted by radius.
func (s *Scene) Rings(parentID string) []Ring {
	if parentID == "" {
		return nil
	}
	byKey := make(map[string]int)
	var rings []Ring
	for i := range s.objects {
		o := &s.objects[i]
		if o.ParentID != parentID {
			continue
		}
		key := o.GroupID
		if key == "" {
			key = fmt.Sprintf("legacy-%d", int(math.Round(o.OrbitRadius)))
		}
		idx, ok := byKey[key]
		if !ok {
			rings = append(rings, Ring{Key: key, GroupID: o.GroupID, Radius: o.OrbitRadius, Sample: o.clone()})
			idx = len(rings) - 1
			byKey[key] = idx
		}
		rings[idx].Count++
	}
	sort.SliceStable(rings, func(i, j int) bool { return rings[i].Radius < rings[j].Radius })
	return rings
}

// RingMembers returns the ids of parentID's children that belong to ring.
func (s *Scene) RingMembers(parentID string, ring Ring) []string {
	var ids []string
	for i := range s.objects {
		o := &s.objects[i]
		if o.ParentID == parentID && ring.Contains(o) {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// UpdateRing applies fn to every member of ring. Returns the member count.
func (s *Scene) UpdateRing(parentID string, ring Ring, fn func(*Object)) int {
	n := 0
	for i := range s.objects {
		o := &s.objects[i]
		if o.ParentID == parentID && ring.Contains(o) {
			id := o.ID
			fn(o)
			o.ID = id
			n++
		}
	}
	return n
}

// RingTemplate seeds new satellites when a ring has no sample.
type RingTemplate struct {
	Color      string
	Size       float64
	Glow       float64
	Speed      float64
	Visibility Visibility
	TailLength float64
}

// DefaultRingTemplate mirrors the satellite editor's initial values.
func DefaultRingTemplate(color string) RingTemplate {
	return RingTemplate{Color: color, Size: 10, Visibility: Opaque}
}

func (t RingTemplate) satellite(parentID, groupID string, radius float64) Object {
	o := defaultObject()
	o.ID = NewID()
	o.Color = t.Color
	o.Size = t.Size
	o.Glow = t.Glow
	o.OrbitRadius = radius
	o.OrbitSpeed = t.Speed
	o.Visibility = t.Visibility
	o.TailLength = t.TailLength
	o.ParentID = parentID
	o.GroupID = groupID
	return o
}

// AddRing creates five evenly spaced satellites on a new ring outside the
// existing ones. Returns the new ring's group id, or "" if parentID is unknown.
func (s *Scene) AddRing(parentID string, tmpl RingTemplate) string {
	if !s.Has(parentID) {
		return ""
	}
	radius := 100.0
	if rings := s.Rings(parentID); len(rings) > 0 {
		maxR := rings[0].Radius
		for _, r := range rings[1:] {
			maxR = math.Max(maxR, r.Radius)
		}
		radius = maxR + 50
	}

	const count = 5
	groupID := NewID()
	base := len(s.objects)
	for i := range count {
		o := tmpl.satellite(parentID, groupID, radius)
		o.Name = fmt.Sprintf("S-%d", base+i+1)
		o.CurrentAngle = float64(i) / count * 2 * math.Pi
		s.AddObject(o)
	}
	return groupID
}

// SetRingCount grows or shrinks ring to n members, then spaces all members
// evenly. New members copy the ring sample, or tmpl for an empty ring.
func (s *Scene) SetRingCount(parentID string, ring Ring, n int, tmpl RingTemplate) {
	if n < 0 {
		n = 0
	}
	var members, others []Object
	for i := range s.objects {
		o := s.objects[i]
		if o.ParentID == parentID && ring.Contains(&o) {
			members = append(members, o)
		} else {
			others = append(others, o)
		}
	}

	if n > len(members) {
		sample := tmpl.satellite(parentID, ring.GroupID, ring.Radius)
		if len(members) > 0 {
			sample = members[0].clone()
		}
		for i := len(members); i < n; i++ {
			o := sample.clone()
			o.ID = NewID()
			o.Name = fmt.Sprintf("S-%d", len(s.objects)+i+1)
			o.Motion = Motion{
				OrbitRadius:       sample.OrbitRadius,
				OrbitSpeed:        sample.OrbitSpeed,
				OrbitDirection:    1,
				RotationDirection: 1,
			}
			o.ParentID = parentID
			o.GroupID = ring.GroupID
			o.Pinned = false
			members = append(members, o)
		}
	} else {
		members = members[:n]
	}

	for i := range members {
		members[i].CurrentAngle = float64(i) / float64(len(members)) * 2 * math.Pi
	}

	s.objects = append(others, members...)
	s.reindex()
}

// SetRingShape changes every member's shape, fixing up sizes that would not
// read well in the new shape.
func (s *Scene) SetRingShape(parentID string, ring Ring, shape Shape, image string) int {
	return s.UpdateRing(parentID, ring, func(o *Object) {
		size := o.Size
		switch {
		case shape == ShapePoint:
			size = 1
		case shape == ShapeLine && o.Size < 50:
			size = 80
		case (shape == ShapeStar || shape == ShapeOutlineStar || shape == ShapeOutlineCircle) && o.Size < 10:
			size = 40
		case o.Size == 1:
			size = 10
		}
		o.Shape = shape
		o.Image = image
		o.Size = size
	})
}
