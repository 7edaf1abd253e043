// Implements an immediate-mode 2D paint context, in the manner of
// the HTML canvas API, by wrapping rasterx.
// Commands are painted directly into an RGBA pixel buffer; the only
// state kept between commands is the paint state (transform, styles),
// which may be saved and restored on a stack.
package canvas2d

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// paintState is the part of the context saved by Save and restored by Restore
type paintState struct {
	matrix    rasterx.Matrix2D
	fill      color.Color
	stroke    color.Color
	lineWidth float64
}

var defaultState = paintState{
	matrix:    rasterx.Identity,
	fill:      color.Black,
	stroke:    color.Black,
	lineWidth: 1,
}

// canvas defaults for line caps and joins
const miterLimit = 10

// kappa places the control points of a cubic Bézier
// approximating a quarter of an ellipse
const kappa = 0.5522847498307936

// Context paints into an *image.RGBA.
// The zero value is not usable; see NewContext.
// A Context is not safe for concurrent use.
type Context struct {
	img    *image.RGBA
	filler *rasterx.Filler // we use separated instances
	dasher *rasterx.Dasher // to avoid shared state

	state paintState
	stack []paintState
	path  path
}

// NewContext returns a context painting into a transparent
// buffer of the given size, in pixels.
func NewContext(width, height int) *Context {
	c := new(Context)
	c.Resize(width, height)
	return c
}

// Resize replaces the pixel buffer by a transparent one of the given size,
// and resets the paint state and the current path.
// Negative dimensions are read as 0.
func (c *Context) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.filler = rasterx.NewFiller(width, height, rasterx.NewScannerGV(width, height, c.img, c.img.Bounds()))
	c.dasher = rasterx.NewDasher(width, height, rasterx.NewScannerGV(width, height, c.img, c.img.Bounds()))
	c.state = defaultState
	c.stack = c.stack[:0]
	c.path.Clear()
}

// Width returns the width of the buffer, in pixels.
func (c *Context) Width() int { return c.img.Rect.Dx() }

// Height returns the height of the buffer, in pixels.
func (c *Context) Height() int { return c.img.Rect.Dy() }

// Image returns the pixel buffer. It is updated by subsequent paint commands.
func (c *Context) Image() *image.RGBA { return c.img }

// EncodePNG writes the buffer as a PNG image.
func (c *Context) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// Clear sets every pixel of the buffer to transparent,
// regardless of the current transform.
func (c *Context) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Save pushes a copy of the paint state on the stack.
func (c *Context) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the last saved paint state.
// It does nothing if the stack is empty.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Matrix returns the current transform.
func (c *Context) Matrix() rasterx.Matrix2D { return c.state.matrix }

// Translate adds a translation to the current transform.
func (c *Context) Translate(x, y float64) {
	if !finite(x, y) {
		return
	}
	c.state.matrix = c.state.matrix.Translate(x, y)
}

// Scale adds a scaling to the current transform.
func (c *Context) Scale(x, y float64) {
	if !finite(x, y) {
		return
	}
	c.state.matrix = c.state.matrix.Scale(x, y)
}

// SetFillStyle sets the fill color from a CSS color string.
// As for a canvas, a string which is not a valid color is ignored.
func (c *Context) SetFillStyle(style string) {
	if col, err := ParseColor(style); err == nil {
		c.state.fill = col
	}
}

// SetStrokeStyle sets the stroke color from a CSS color string.
// A string which is not a valid color is ignored.
func (c *Context) SetStrokeStyle(style string) {
	if col, err := ParseColor(style); err == nil {
		c.state.stroke = col
	}
}

// SetLineWidth sets the stroke width, in user units.
// Values which are not positive and finite are ignored.
func (c *Context) SetLineWidth(w float64) {
	if w <= 0 || !finite(w) {
		return
	}
	c.state.lineWidth = w
}

// FillRect fills the given rectangle, without using or
// modifying the current path.
func (c *Context) FillRect(x, y, w, h float64) {
	if !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	c.fill(c.rect(x, y, w, h))
}

// StrokeRect strokes the outline of the given rectangle, without using or
// modifying the current path.
func (c *Context) StrokeRect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	c.stroke(c.rect(x, y, w, h))
}

// BeginPath empties the current path.
func (c *Context) BeginPath() { c.path.Clear() }

// MoveTo starts a new sub-path at (x, y).
func (c *Context) MoveTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	c.path.Start(c.device(x, y))
}

// LineTo adds a line segment to (x, y).
func (c *Context) LineTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	if len(c.path) == 0 {
		c.path.Start(c.device(x, y))
		return
	}
	c.path.Line(c.device(x, y))
}

// Ellipse adds a closed, axis aligned ellipse centered on (cx, cy) as a new sub-path.
// Negative radii are ignored.
func (c *Context) Ellipse(cx, cy, rx, ry float64) {
	if !finite(cx, cy, rx, ry) || rx < 0 || ry < 0 {
		return
	}
	// four cubic arcs, starting at angle 0
	kx, ky := rx*kappa, ry*kappa
	c.path.Start(c.device(cx+rx, cy))
	c.path.CubeBezier(c.device(cx+rx, cy+ky), c.device(cx+kx, cy+ry), c.device(cx, cy+ry))
	c.path.CubeBezier(c.device(cx-kx, cy+ry), c.device(cx-rx, cy+ky), c.device(cx-rx, cy))
	c.path.CubeBezier(c.device(cx-rx, cy-ky), c.device(cx-kx, cy-ry), c.device(cx, cy-ry))
	c.path.CubeBezier(c.device(cx+kx, cy-ry), c.device(cx+rx, cy-ky), c.device(cx+rx, cy))
	c.path.Stop(true)
}

// rect returns the closed outline of the given rectangle.
// Corners are transformed before the fixed point conversion, so
// that rectangles far larger than the buffer are still clipped correctly.
func (c *Context) rect(x, y, w, h float64) path {
	var p path
	p.Start(c.device(x, y))
	p.Line(c.device(x+w, y))
	p.Line(c.device(x+w, y+h))
	p.Line(c.device(x, y+h))
	p.Stop(true)
	return p
}

// ClosePath closes the current sub-path.
func (c *Context) ClosePath() { c.path.Stop(true) }

// Fill fills the current path with the fill color, using the non-zero winding rule.
func (c *Context) Fill() { c.fill(c.path) }

// Stroke strokes the current path with the stroke color and line width.
func (c *Context) Stroke() { c.stroke(c.path) }

func (c *Context) fill(p path) {
	if len(p) == 0 || c.img.Rect.Empty() {
		return
	}
	c.filler.Clear()
	c.filler.SetWinding(true)
	p.addTo(c.filler)
	c.filler.SetColor(c.state.fill)
	c.filler.Draw()
}

func (c *Context) stroke(p path) {
	if len(p) == 0 || c.img.Rect.Empty() {
		return
	}
	m := c.state.matrix
	// line width follows the transform
	width := c.state.lineWidth * math.Sqrt(math.Abs(m.A*m.D-m.B*m.C))
	c.dasher.Clear()
	c.dasher.SetStroke(fixed.Int26_6(clampDevice(width)*64), fixed.Int26_6(miterLimit*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, nil, 0)
	p.addTo(c.dasher)
	c.dasher.SetColor(c.state.stroke)
	c.dasher.Draw()
}

// device converts user coordinates to pixel coordinates
func (c *Context) device(x, y float64) fixed.Point26_6 {
	return toFixed(c.state.matrix.Transform(x, y))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
