package canvas2d

import (
	"fmt"
	"math"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// This file defines the path accumulated between BeginPath and Fill/Stroke.
// Points are stored in device space: the transform active when a
// segment is added applies to it, as for an HTML canvas.

// operation is one path command, replayed on a rasterx.Adder
type operation interface {
	addTo(a rasterx.Adder)
}

type moveTo fixed.Point26_6

type lineTo fixed.Point26_6

type quadTo [2]fixed.Point26_6

type cubicTo [3]fixed.Point26_6

type closePath struct{}

func (op moveTo) addTo(a rasterx.Adder) {
	a.Stop(false) // implicit end of the current sub-path
	a.Start(fixed.Point26_6(op))
}

func (op lineTo) addTo(a rasterx.Adder) { a.Line(fixed.Point26_6(op)) }

func (op quadTo) addTo(a rasterx.Adder) { a.QuadBezier(op[0], op[1]) }

func (op cubicTo) addTo(a rasterx.Adder) { a.CubeBezier(op[0], op[1], op[2]) }

func (closePath) addTo(a rasterx.Adder) { a.Stop(true) }

// path is a sequence of device space commands.
// It implements rasterx.Adder.
type path []operation

var _ rasterx.Adder = (*path)(nil)

// String returns an SVG path data representation of the path.
func (p path) String() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case moveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case lineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case quadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64)
		case cubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64, float32(op[2].X)/64, float32(op[2].Y)/64)
		case closePath:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// Clear zeros the path slice
func (p *path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new sub-path at the given point.
func (p *path) Start(a fixed.Point26_6) {
	*p = append(*p, moveTo(a))
}

// Line adds a linear segment to the current sub-path.
func (p *path) Line(b fixed.Point26_6) {
	*p = append(*p, lineTo(b))
}

// QuadBezier adds a quadratic segment to the current sub-path.
func (p *path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, quadTo{b, c})
}

// CubeBezier adds a cubic segment to the current sub-path.
func (p *path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, cubicTo{b, c, d})
}

// Stop closes the current sub-path if closeLoop is true
func (p *path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, closePath{})
	}
}

// addTo replays the path, ending the last sub-path.
func (p path) addTo(a rasterx.Adder) {
	for _, op := range p {
		op.addTo(a)
	}
	a.Stop(false)
}

// deviceLimit bounds device coordinates, in pixels, so that they stay
// well inside the 26.6 fixed point range used by the rasterizer.
// Points further away are clamped: geometry beyond the limit is not
// visible anyway, but slanted edges crossing it are slightly shifted.
const deviceLimit = 1 << 20

func toFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(clampDevice(x) * 64), Y: fixed.Int26_6(clampDevice(y) * 64)}
}

func clampDevice(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(-deviceLimit, min(deviceLimit, v))
}
