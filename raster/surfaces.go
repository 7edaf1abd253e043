package raster

import (
	"runtime"
	"sync"
	"weak"

	"golang.org/x/net/html"
)

// surfaces binds each <canvas> element to the surface painting it,
// so that every renderer built on the same element shares its buffer
// and its size and scale state, as getContext returns the same context.
// Entries are dropped once the element is garbage collected.
var surfaces = surfaceRegistry{bound: map[weak.Pointer[html.Node]]Surface{}}

type surfaceRegistry struct {
	mu    sync.Mutex
	bound map[weak.Pointer[html.Node]]Surface
}

func (sr *surfaceRegistry) lookup(canvas *html.Node) (Surface, bool) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	s, ok := sr.bound[weak.Make(canvas)]
	return s, ok
}

// bind registers `s` for `canvas`, replacing any previous surface.
// `s` must not reference `canvas`, or the entry is never released.
func (sr *surfaceRegistry) bind(canvas *html.Node, s Surface) {
	key := weak.Make(canvas)
	sr.mu.Lock()
	defer sr.mu.Unlock()
	if _, ok := sr.bound[key]; !ok {
		runtime.AddCleanup(canvas, sr.release, key)
	}
	sr.bound[key] = s
}

func (sr *surfaceRegistry) release(key weak.Pointer[html.Node]) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	delete(sr.bound, key)
}
