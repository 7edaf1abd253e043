// Implements the immediate-mode backend: scenes are painted
// into the pixel buffer of a <canvas> element through a stateful
// paint context (see okscene/canvas2d).
package raster

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/benoitkugler/okscene/canvas2d"
	"github.com/benoitkugler/okscene/dom"
	"github.com/benoitkugler/okscene/scene"
	"golang.org/x/net/html"
)

var _ scene.Renderer = (*Renderer)(nil) // assert interface conformance

// canvas element defaults, in pixels
const (
	defaultWidth  = 300
	defaultHeight = 150

	// maxDimension bounds the physical size of the buffer
	maxDimension = 1 << 14
)

// Painter is the stateful command stream draw routines paint through.
// Coordinates are user units, mapped to pixels by the current transform.
type Painter interface {
	Save()
	Restore()
	Translate(x, y float64)
	Scale(x, y float64)

	SetFillStyle(style string)
	SetStrokeStyle(style string)
	SetLineWidth(w float64)

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Ellipse(cx, cy, rx, ry float64)
	ClosePath()
	Fill()
	Stroke()
}

// Surface is the pixel addressed target owned by a Renderer.
type Surface interface {
	Painter

	// Clear erases every pixel, regardless of the transform.
	Clear()

	// Resize replaces the content by a blank buffer of the given
	// size in pixels, and resets the paint state.
	Resize(width, height int)
}

var _ Surface = (*canvas2d.Context)(nil)

// Renderer paints scenes into a <canvas> element.
// It is not safe for concurrent use.
type Renderer struct {
	canvas  *html.Node
	surface Surface
	host    scene.Host
	style   Style
	shapes  map[string]DrawFunc
}

// New returns a renderer bound to the first <canvas> element found in
// `container`, creating and appending one if needed.
// Renderers built on the same element share its surface, with the size
// and scale of the last SetSize. A new surface starts with the size given
// by the element attributes (300x150 by default). WithSurface binds the
// given surface to the element instead, resized from its attributes.
// An error wrapping scene.ErrInvalidContainer is returned if `container`
// can't host a canvas.
func New(container *html.Node, opts ...Option) (*Renderer, error) {
	if err := dom.CanHost(container); err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	canvas := dom.QuerySelector(container, "canvas")
	if canvas == nil {
		canvas = dom.CreateElement("canvas")
		container.AppendChild(canvas)
		scene.Logger().Debug("raster: created canvas element")
	}

	surface := options.surface
	if surface != nil {
		surface.Resize(intAttr(canvas, "width", defaultWidth), intAttr(canvas, "height", defaultHeight))
		surfaces.bind(canvas, surface)
	} else if bound, ok := surfaces.lookup(canvas); ok {
		// size and scale set by a previous renderer persist
		surface = bound
	} else {
		surface = canvas2d.NewContext(intAttr(canvas, "width", defaultWidth), intAttr(canvas, "height", defaultHeight))
		surfaces.bind(canvas, surface)
	}

	return &Renderer{
		canvas:  canvas,
		surface: surface,
		host:    options.host,
		style:   options.style,
		shapes:  options.shapes,
	}, nil
}

// Canvas returns the <canvas> element.
func (r *Renderer) Canvas() *html.Node { return r.canvas }

// Surface returns the target painted by the renderer.
func (r *Renderer) Surface() Surface { return r.surface }

// Image returns the pixel buffer, or nil if the surface
// does not expose one.
func (r *Renderer) Image() *image.RGBA {
	if s, ok := r.surface.(interface{ Image() *image.RGBA }); ok {
		return s.Image()
	}
	return nil
}

// SetSize sets the logical size of the canvas. The pixel buffer is
// scaled by the device pixel ratio of the host, and a matching scale
// is applied so that drawing still uses logical units.
func (r *Renderer) SetSize(width, height float64) {
	dpr := scene.PixelRatio(r.host)
	pw, ph := physical(width*dpr), physical(height*dpr)

	dom.SetAttribute(r.canvas, "width", strconv.Itoa(pw))
	dom.SetAttribute(r.canvas, "height", strconv.Itoa(ph))
	style, _ := dom.GetAttribute(r.canvas, "style")
	style = setStyleProperty(style, "width", cssPixels(width))
	style = setStyleProperty(style, "height", cssPixels(height))
	dom.SetAttribute(r.canvas, "style", style)

	// resizing resets the paint state, so the scale is applied once
	r.surface.Resize(pw, ph)
	r.surface.Scale(dpr, dpr)

	scene.Logger().Debug("raster: resized", "width", width, "height", height, "dpr", dpr, "pixels", [2]int{pw, ph})
}

// Render clears the canvas and paints `elements` in order, translated by
// (transform.X, transform.Y). transform.Expr is not supported and ignored.
// Elements whose tag has no draw routine are skipped.
func (r *Renderer) Render(elements []scene.Element, transform scene.Transform) {
	r.surface.Clear()
	withState(r.surface, func() {
		r.surface.Translate(transform.X, transform.Y)
		r.surface.SetFillStyle(r.style.Fill)
		for _, el := range elements {
			draw, ok := r.shapes[el.Tag]
			if !ok {
				scene.Logger().Debug("raster: skipping element", "tag", el.Tag)
				continue
			}
			draw(r.surface, el.Attrs, r.style)
		}
	})
}

// withState runs `paint` between Save and Restore.
// Restore is deferred, so that it also runs if `paint` panics.
func withState(p Painter, paint func()) {
	p.Save()
	defer p.Restore()
	paint()
}

// physical converts a scaled dimension to a pixel count
func physical(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > maxDimension {
		return maxDimension
	}
	return int(v)
}

// intAttr parses a non negative integer attribute, returning `def` if
// it is missing or invalid
func intAttr(n *html.Node, key string, def int) int {
	v, ok := dom.GetAttribute(n, key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i < 0 {
		return def
	}
	return min(i, maxDimension)
}

func cssPixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// setStyleProperty sets one declaration of an inline style attribute,
// keeping the others. A style which can't be parsed is replaced.
func setStyleProperty(style, property, value string) string {
	var decls []*css.Declaration
	if style = strings.TrimSpace(style); style != "" {
		// the parser requires terminated declarations
		if !strings.HasSuffix(style, ";") {
			style += ";"
		}
		var err error
		decls, err = parser.ParseDeclarations(style)
		if err != nil {
			scene.Logger().Debug("raster: discarding invalid style", "style", style, "err", err)
			decls = nil
		}
	}

	var (
		chunks []string
		found  bool
	)
	for _, decl := range decls {
		chunk := decl.Property + ": " + decl.Value
		if strings.EqualFold(decl.Property, property) {
			chunk, found = property+": "+value, true
		} else if decl.Important {
			chunk += " !important"
		}
		chunks = append(chunks, chunk)
	}
	if !found {
		chunks = append(chunks, property+": "+value)
	}
	return strings.Join(chunks, "; ") + ";"
}
