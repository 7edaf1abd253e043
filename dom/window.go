package dom

import "github.com/benoitkugler/okscene/scene"

var _ scene.Host = Window{} // assert interface conformance

// Window describes the display hosting the document.
type Window struct {
	// PixelRatio is the number of physical pixels per logical unit.
	// Zero means unknown, and is read as 1.
	PixelRatio float64
}

// DevicePixelRatio returns PixelRatio, or 1 if it is not set.
func (w Window) DevicePixelRatio() float64 {
	if w.PixelRatio == 0 {
		return 1
	}
	return w.PixelRatio
}
