// Package scene holds the orbital entity graph: objects, groups and their
// parent/child and ring relations.
package scene

import "encoding/json"

// Shape is the visual variant of a CelestialObject.
type Shape string

const (
	ShapeCircle        Shape = "circle"
	ShapeSphere        Shape = "sphere"
	ShapeImage         Shape = "image"
	ShapePoint         Shape = "point"
	ShapeLine          Shape = "line"
	ShapeStar          Shape = "star"
	ShapeOutlineStar   Shape = "outlineStar"
	ShapeOutlineCircle Shape = "outlineCircle"
)

// Shapes lists every shape in display order.
var Shapes = []Shape{
	ShapeCircle, ShapeSphere, ShapeImage, ShapePoint,
	ShapeLine, ShapeStar, ShapeOutlineStar, ShapeOutlineCircle,
}

// Elongated reports whether the shape is drawn large (lines, stars, rings).
func (s Shape) Elongated() bool {
	switch s {
	case ShapeLine, ShapeStar, ShapeOutlineStar, ShapeOutlineCircle:
		return true
	}
	return false
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	for _, known := range Shapes {
		if s == known {
			return true
		}
	}
	return false
}

// Motion is the orbital state shared by objects and groups.
// Angles are unbounded; only trigonometric functions consume them.
type Motion struct {
	OrbitRadius       float64 `json:"orbitRadius"`
	OrbitSpeed        float64 `json:"orbitSpeed"`
	OrbitDirection    float64 `json:"orbitDirection"`
	CurrentAngle      float64 `json:"currentAngle"` // radians
	RotationSpeed     float64 `json:"rotationSpeed"`
	RotationDirection float64 `json:"rotationDirection"`
	CurrentRotation   float64 `json:"currentRotation"` // degrees
}

// Wave perturbs the orbit radius sinusoidally as a function of angle.
type Wave struct {
	Amp   float64 `json:"amp"`
	Freq  float64 `json:"freq"`
	Phase float64 `json:"phase"` // degrees
}

// Object is a single visual entity (CelestialObject).
type Object struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Glow        float64    `json:"glow"`
	Opacity     float64    `json:"opacity"`
	Size        float64    `json:"size"`
	Visibility  Visibility `json:"visibility"`
	Image       string     `json:"image,omitempty"`
	Shape       Shape      `json:"type"`

	Motion

	ParentID   string  `json:"parentId"`
	GroupID    string  `json:"groupId,omitempty"`
	Pinned     bool    `json:"isPinned"`
	TailLength float64 `json:"tailLength"`
	Wave       *Wave   `json:"waveParams,omitempty"`
}

// Group is a positionable container with motion but no visual shape.
type Group struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Visibility  Visibility `json:"visibility"`

	Motion

	ChildIDs []string `json:"childIds"`
	ParentID string   `json:"parentId"`
}

// Node is the hierarchy-relevant view of either entity kind.
type Node struct {
	Motion   Motion
	Wave     *Wave
	ParentID string
	Line     bool
}

func (o *Object) clone() Object {
	c := *o
	if o.Wave != nil {
		w := *o.Wave
		c.Wave = &w
	}
	return c
}

func (g *Group) clone() Group {
	c := *g
	if g.ChildIDs != nil {
		c.ChildIDs = append([]string(nil), g.ChildIDs...)
	}
	return c
}

func defaultObject() Object {
	return Object{
		Color:      "#ffffff",
		Opacity:    1,
		Visibility: Opaque,
		Shape:      ShapeCircle,
		Motion:     Motion{OrbitDirection: 1, RotationDirection: 1},
	}
}

func defaultGroup() Group {
	return Group{
		Color:      "#ffffff",
		Visibility: Opaque,
		Motion:     Motion{OrbitDirection: 1, RotationDirection: 1},
	}
}

// UnmarshalJSON fills fields missing from older documents with defaults.
func (o *Object) UnmarshalJSON(data []byte) error {
	type plain Object
	p := plain(defaultObject())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Object(p)
	return nil
}

// UnmarshalJSON fills fields missing from older documents with defaults.
func (g *Group) UnmarshalJSON(data []byte) error {
	type plain Group
	p := plain(defaultGroup())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*g = Group(p)
	return nil
}
