package raster

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/benoitkugler/okscene/scene"
)

// This file implements the draw routines, one per element tag.

// Style holds the renderer wide defaults used by draw routines.
type Style struct {
	Fill      string  // fill color for elements without `fill`
	Stroke    string  // stroke color for strokes without `stroke`
	LineWidth float64 // stroke width for elements without `stroke-width`
}

// DefaultStyle fills in black and strokes 1 unit wide black lines.
var DefaultStyle = Style{Fill: "black", Stroke: "black", LineWidth: 1}

// DrawFunc paints one element through `p`.
// Missing attributes must not cause a failure: they produce
// degenerate output instead.
type DrawFunc func(p Painter, attrs scene.Attrs, style Style)

// defaultShapes is the vocabulary of a new Renderer.
// Other routines are registered with WithShape.
var defaultShapes = map[string]DrawFunc{
	"rect": Rect,
}

// Rect fills the rectangle (x, y, width, height), and strokes it
// if `stroke` is set. A `fill` of "none" disables filling.
func Rect(p Painter, attrs scene.Attrs, style Style) {
	x, y := attrs.Float("x"), attrs.Float("y")
	w, h := attrs.Float("width"), attrs.Float("height")
	if fill, ok := fillStyle(attrs, style); ok {
		p.SetFillStyle(fill)
		p.FillRect(x, y, w, h)
	}
	if stroke, ok := strokeStyle(attrs); ok {
		p.SetStrokeStyle(stroke)
		p.SetLineWidth(attrs.FloatOr("stroke-width", style.LineWidth))
		p.StrokeRect(x, y, w, h)
	}
}

// Circle paints the circle of center (cx, cy) and radius r.
func Circle(p Painter, attrs scene.Attrs, style Style) {
	r := attrs.Float("r")
	p.BeginPath()
	p.Ellipse(attrs.Float("cx"), attrs.Float("cy"), r, r)
	paintPath(p, attrs, style)
}

// Ellipse paints the ellipse of center (cx, cy) and radii (rx, ry).
func Ellipse(p Painter, attrs scene.Attrs, style Style) {
	p.BeginPath()
	p.Ellipse(attrs.Float("cx"), attrs.Float("cy"), attrs.Float("rx"), attrs.Float("ry"))
	paintPath(p, attrs, style)
}

// Line strokes the segment from (x1, y1) to (x2, y2), using the
// default stroke color when `stroke` is not set.
func Line(p Painter, attrs scene.Attrs, style Style) {
	stroke := attrs.String("stroke")
	if stroke == "none" {
		return
	}
	if stroke == "" {
		stroke = style.Stroke
	}
	p.BeginPath()
	p.MoveTo(attrs.Float("x1"), attrs.Float("y1"))
	p.LineTo(attrs.Float("x2"), attrs.Float("y2"))
	p.SetStrokeStyle(stroke)
	p.SetLineWidth(attrs.FloatOr("stroke-width", style.LineWidth))
	p.Stroke()
}

// Polyline paints the open path joining `points`, given either as a list
// of numbers or as a string "x1,y1 x2,y2 ...". An odd trailing
// coordinate is ignored, as are invalid numbers.
func Polyline(p Painter, attrs scene.Attrs, style Style) {
	if tracePoints(p, attrs) {
		paintPath(p, attrs, style)
	}
}

// Polygon is like Polyline, but closes the path.
func Polygon(p Painter, attrs scene.Attrs, style Style) {
	if tracePoints(p, attrs) {
		p.ClosePath()
		paintPath(p, attrs, style)
	}
}

// tracePoints builds the path of `points`, returning false
// if there are less than two points
func tracePoints(p Painter, attrs scene.Attrs) bool {
	v, _ := attrs.Lookup("points")
	points := parsePoints(v)
	if len(points) < 4 {
		return false
	}
	p.BeginPath()
	p.MoveTo(points[0], points[1])
	for i := 2; i+1 < len(points); i += 2 {
		p.LineTo(points[i], points[i+1])
	}
	return true
}

func parsePoints(v any) []float64 {
	var out []float64
	switch v := v.(type) {
	case string:
		fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
		for _, f := range fields {
			if x, err := strconv.ParseFloat(f, 64); err == nil {
				out = append(out, x)
			}
		}
	case []any:
		for _, item := range v {
			if x, ok := scene.Number(item); ok {
				out = append(out, x)
			}
		}
	case []float64:
		out = v
	}
	return out
}

// paintPath fills then strokes the current path
func paintPath(p Painter, attrs scene.Attrs, style Style) {
	if fill, ok := fillStyle(attrs, style); ok {
		p.SetFillStyle(fill)
		p.Fill()
	}
	if stroke, ok := strokeStyle(attrs); ok {
		p.SetStrokeStyle(stroke)
		p.SetLineWidth(attrs.FloatOr("stroke-width", style.LineWidth))
		p.Stroke()
	}
}

func fillStyle(attrs scene.Attrs, style Style) (string, bool) {
	fill := attrs.String("fill")
	if fill == "" {
		fill = style.Fill
	}
	return fill, fill != "none"
}

func strokeStyle(attrs scene.Attrs) (string, bool) {
	stroke := attrs.String("stroke")
	return stroke, stroke != "" && stroke != "none"
}
