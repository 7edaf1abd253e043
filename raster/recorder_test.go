package raster

import (
	"fmt"
	"strings"
)

// recorder is a Surface logging the commands it receives
type recorder struct {
	commands []string
	depth    int // current Save/Restore nesting
}

var _ Surface = (*recorder)(nil)

func (r *recorder) log(format string, args ...any) {
	r.commands = append(r.commands, fmt.Sprintf(format, args...))
}

// drawn returns the commands which produce pixels
func (r *recorder) drawn() []string {
	var out []string
	for _, c := range r.commands {
		for _, prefix := range []string{"fillRect", "strokeRect", "fill(", "stroke("} {
			if strings.HasPrefix(c, prefix) {
				out = append(out, c)
			}
		}
	}
	return out
}

func (r *recorder) reset() { r.commands = nil }

func (r *recorder) Save() {
	r.depth++
	r.log("save")
}

func (r *recorder) Restore() {
	r.depth--
	r.log("restore")
}

func (r *recorder) Translate(x, y float64)      { r.log("translate(%g,%g)", x, y) }
func (r *recorder) Scale(x, y float64)          { r.log("scale(%g,%g)", x, y) }
func (r *recorder) SetFillStyle(style string)   { r.log("fillStyle=%s", style) }
func (r *recorder) SetStrokeStyle(style string) { r.log("strokeStyle=%s", style) }
func (r *recorder) SetLineWidth(w float64)      { r.log("lineWidth=%g", w) }
func (r *recorder) FillRect(x, y, w, h float64) { r.log("fillRect(%g,%g,%g,%g)", x, y, w, h) }
func (r *recorder) StrokeRect(x, y, w, h float64) {
	r.log("strokeRect(%g,%g,%g,%g)", x, y, w, h)
}
func (r *recorder) BeginPath()          { r.log("beginPath") }
func (r *recorder) MoveTo(x, y float64) { r.log("moveTo(%g,%g)", x, y) }
func (r *recorder) LineTo(x, y float64) { r.log("lineTo(%g,%g)", x, y) }
func (r *recorder) Ellipse(cx, cy, rx, ry float64) {
	r.log("ellipse(%g,%g,%g,%g)", cx, cy, rx, ry)
}
func (r *recorder) ClosePath()               { r.log("closePath") }
func (r *recorder) Fill()                    { r.log("fill()") }
func (r *recorder) Stroke()                  { r.log("stroke()") }
func (r *recorder) Clear()                   { r.log("clear") }
func (r *recorder) Resize(width, height int) {
	r.depth = 0
	r.log("resize(%d,%d)", width, height)
}
