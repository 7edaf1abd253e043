package raster

import "github.com/benoitkugler/okscene/scene"

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := raster.New(container,
//		raster.WithHost(dom.Window{PixelRatio: 2}),
//		raster.WithShape("circle", raster.Circle),
//	)
type Option func(*options)

type options struct {
	host    scene.Host
	style   Style
	shapes  map[string]DrawFunc
	surface Surface
}

func defaultOptions() options {
	shapes := make(map[string]DrawFunc, len(defaultShapes))
	for tag, fn := range defaultShapes {
		shapes[tag] = fn
	}
	return options{
		style:  DefaultStyle,
		shapes: shapes,
	}
}

// WithHost sets the environment providing the device pixel ratio.
// Without host, the ratio is 1.
func WithHost(h scene.Host) Option {
	return func(o *options) {
		o.host = h
	}
}

// WithDefaultFill sets the fill color used by elements
// without a `fill` attribute. It defaults to black.
func WithDefaultFill(style string) Option {
	return func(o *options) {
		o.style.Fill = style
	}
}

// WithShape registers the draw routine for elements tagged `tag`,
// replacing any previous one. A nil `fn` removes the tag, so that
// such elements are skipped.
func WithShape(tag string, fn DrawFunc) Option {
	return func(o *options) {
		if fn == nil {
			delete(o.shapes, tag)
			return
		}
		o.shapes[tag] = fn
	}
}

// WithSurface makes the renderer paint into `s` instead of
// a new canvas2d.Context.
func WithSurface(s Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}
