package scene

import (
	"github.com/google/uuid"
)

// Scene is an id-indexed arena of objects and groups.
//
// Parent references are plain ids. Callers must keep the parent graph
// acyclic; nothing here validates it.
type Scene struct {
	objects []Object
	groups  []Group

	objIdx map[string]int
	grpIdx map[string]int
}

// New creates a scene from existing collections. The slices are copied.
func New(objects []Object, groups []Group) *Scene {
	s := &Scene{
		objects: make([]Object, 0, len(objects)),
		groups:  make([]Group, 0, len(groups)),
	}
	for i := range objects {
		s.objects = append(s.objects, objects[i].clone())
	}
	for i := range groups {
		s.groups = append(s.groups, groups[i].clone())
	}
	s.reindex()
	return s
}

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.NewString()
}

func (s *Scene) reindex() {
	s.objIdx = make(map[string]int, len(s.objects))
	for i := range s.objects {
		s.objIdx[s.objects[i].ID] = i
	}
	s.grpIdx = make(map[string]int, len(s.groups))
	for i := range s.groups {
		s.grpIdx[s.groups[i].ID] = i
	}
}

// Clone returns a deep copy.
func (s *Scene) Clone() *Scene {
	return New(s.objects, s.groups)
}

// Objects returns a deep copy of all objects in creation order.
func (s *Scene) Objects() []Object {
	out := make([]Object, len(s.objects))
	for i := range s.objects {
		out[i] = s.objects[i].clone()
	}
	return out
}

// Groups returns a deep copy of all groups in creation order.
func (s *Scene) Groups() []Group {
	out := make([]Group, len(s.groups))
	for i := range s.groups {
		out[i] = s.groups[i].clone()
	}
	return out
}

// Len returns the number of objects and groups.
func (s *Scene) Len() (objects, groups int) {
	return len(s.objects), len(s.groups)
}

// Object returns a copy of the object with the given id.
func (s *Scene) Object(id string) (Object, bool) {
	i, ok := s.objIdx[id]
	if !ok {
		return Object{}, false
	}
	return s.objects[i].clone(), true
}

// Group returns a copy of the group with the given id.
func (s *Scene) Group(id string) (Group, bool) {
	i, ok := s.grpIdx[id]
	if !ok {
		return Group{}, false
	}
	return s.groups[i].clone(), true
}

// Has reports whether id names an object or a group.
func (s *Scene) Has(id string) bool {
	_, o := s.objIdx[id]
	_, g := s.grpIdx[id]
	return o || g
}

// Node returns the hierarchy view of an object or group. Objects win on
// id collisions.
func (s *Scene) Node(id string) (Node, bool) {
	if i, ok := s.objIdx[id]; ok {
		o := &s.objects[i]
		return Node{Motion: o.Motion, Wave: o.Wave, ParentID: o.ParentID, Line: o.Shape == ShapeLine}, true
	}
	if i, ok := s.grpIdx[id]; ok {
		g := &s.groups[i]
		return Node{Motion: g.Motion, ParentID: g.ParentID}, true
	}
	return Node{}, false
}

// AddObject appends an object, assigning an id when empty. Returns the id.
func (s *Scene) AddObject(o Object) string {
	if o.ID == "" {
		o.ID = NewID()
	}
	s.objects = append(s.objects, o.clone())
	s.objIdx[o.ID] = len(s.objects) - 1
	return o.ID
}

// AddGroup appends a group, assigning an id when empty. Returns the id.
func (s *Scene) AddGroup(g Group) string {
	if g.ID == "" {
		g.ID = NewID()
	}
	s.groups = append(s.groups, g.clone())
	s.grpIdx[g.ID] = len(s.groups) - 1
	return g.ID
}

// UpdateObject applies fn to the stored object. The id is preserved.
func (s *Scene) UpdateObject(id string, fn func(*Object)) bool {
	i, ok := s.objIdx[id]
	if !ok {
		return false
	}
	fn(&s.objects[i])
	s.objects[i].ID = id
	return true
}

// UpdateGroup applies fn to the stored group. The id is preserved.
func (s *Scene) UpdateGroup(id string, fn func(*Group)) bool {
	i, ok := s.grpIdx[id]
	if !ok {
		return false
	}
	fn(&s.groups[i])
	s.groups[i].ID = id
	return true
}

// EachObject calls fn with a pointer to every object, in order.
func (s *Scene) EachObject(fn func(*Object)) {
	for i := range s.objects {
		fn(&s.objects[i])
	}
}

// EachGroup calls fn with a pointer to every group, in order.
func (s *Scene) EachGroup(fn func(*Group)) {
	for i := range s.groups {
		fn(&s.groups[i])
	}
}

// Children returns the ids of objects whose parent is parentID.
func (s *Scene) Children(parentID string) []string {
	var ids []string
	for i := range s.objects {
		if s.objects[i].ParentID == parentID {
			ids = append(ids, s.objects[i].ID)
		}
	}
	return ids
}

// Delete removes the entity and every descendant reachable through
// parent ids. Returns the removed ids, or nil when id is unknown.
func (s *Scene) Delete(id string) []string {
	if !s.Has(id) {
		return nil
	}

	doomed := map[string]bool{id: true}
	for grew := true; grew; {
		grew = false
		for i := range s.objects {
			o := &s.objects[i]
			if !doomed[o.ID] && o.ParentID != "" && doomed[o.ParentID] {
				doomed[o.ID] = true
				grew = true
			}
		}
		for i := range s.groups {
			g := &s.groups[i]
			if !doomed[g.ID] && g.ParentID != "" && doomed[g.ParentID] {
				doomed[g.ID] = true
				grew = true
			}
		}
	}

	removed := make([]string, 0, len(doomed))
	objects := s.objects[:0]
	for _, o := range s.objects {
		if doomed[o.ID] {
			removed = append(removed, o.ID)
			continue
		}
		objects = append(objects, o)
	}
	s.objects = objects

	groups := s.groups[:0]
	for _, g := range s.groups {
		if doomed[g.ID] {
			removed = append(removed, g.ID)
			continue
		}
		kept := g.ChildIDs[:0]
		for _, cid := range g.ChildIDs {
			if !doomed[cid] {
				kept = append(kept, cid)
			}
		}
		g.ChildIDs = kept
		groups = append(groups, g)
	}
	s.groups = groups

	s.reindex()
	return removed
}
