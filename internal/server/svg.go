package server

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

// viewSize is the world extent shown at zoom 1.
const viewSize = 1000.0

// RenderSVG draws a frame: background, trails, then objects in creation
// order. Fully transparent objects are skipped.
func RenderSVG(snap state.Snapshot) string {
	zoom := snap.Settings.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	size := viewSize / zoom
	half := size / 2

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
		formatFloat(viewSize), formatFloat(viewSize),
		formatFloat(-half), formatFloat(-half), formatFloat(size), formatFloat(size)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
		formatFloat(-half), formatFloat(-half), formatFloat(size), formatFloat(size), snap.Settings.BackgroundColor))
	b.WriteString("\n")

	for _, p := range snap.Objects {
		if p.Opacity <= 0 || p.Trail.Empty() {
			continue
		}
		b.WriteString(fmt.Sprintf(`  <path d="%s" transform="translate(%s %s)" fill="%s" opacity="%s"/>`,
			p.Trail.SVGPath(), formatFloat(p.Trail.Origin.X), formatFloat(p.Trail.Origin.Y),
			p.Color, formatFloat(p.Opacity*0.5)))
		b.WriteString("\n")
	}

	for _, p := range snap.Objects {
		if p.Opacity <= 0 {
			continue
		}
		b.WriteString("  ")
		b.WriteString(renderObject(p))
		b.WriteString("\n")
	}

	b.WriteString(`</svg>`)
	return b.String()
}

func renderObject(p state.Placement) string {
	x, y := p.State.X, p.State.Y
	r := math.Max(p.Size/2, 0.5)
	attrs := fmt.Sprintf(`opacity="%s"`, formatFloat(p.Opacity))
	if p.Glow > 0 {
		attrs += fmt.Sprintf(` style="filter:drop-shadow(0 0 %spx %s)"`, formatFloat(p.Glow), p.Color)
	}
	if p.Selected {
		attrs += ` data-selected="true"`
	}

	switch p.Shape {
	case scene.ShapeLine:
		dx := math.Cos(p.State.Rad()) * r
		dy := math.Sin(p.State.Rad()) * r
		return fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2" %s/>`,
			formatFloat(x-dx), formatFloat(y-dy), formatFloat(x+dx), formatFloat(y+dy), p.Color, attrs)
	case scene.ShapeStar, scene.ShapeOutlineStar:
		fill := p.Color
		stroke := "none"
		if p.Shape == scene.ShapeOutlineStar {
			fill, stroke = "none", p.Color
		}
		return fmt.Sprintf(`<polygon points="%s" fill="%s" stroke="%s" %s/>`,
			starPoints(x, y, r, p.State.Rad()), fill, stroke, attrs)
	case scene.ShapeOutlineCircle:
		return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="2" %s/>`,
			formatFloat(x), formatFloat(y), formatFloat(r), p.Color, attrs)
	default:
		return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s" %s/>`,
			formatFloat(x), formatFloat(y), formatFloat(r), p.Color, attrs)
	}
}

// starPoints returns a five-pointed star with inner radius r/2 rotated by
// rot radians.
func starPoints(x, y, r, rot float64) string {
	pts := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		radius := r
		if i%2 == 1 {
			radius = r / 2
		}
		a := rot - math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, formatFloat(x+math.Cos(a)*radius)+","+formatFloat(y+math.Sin(a)*radius))
	}
	return strings.Join(pts, " ")
}

func formatFloat(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
