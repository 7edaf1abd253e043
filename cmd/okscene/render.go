package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/benoitkugler/okscene/canvas2d"
	"github.com/benoitkugler/okscene/dom"
	"github.com/benoitkugler/okscene/raster"
	"github.com/benoitkugler/okscene/scene"
	"github.com/benoitkugler/okscene/vector"
)

// output file names, in the output directory
const (
	pngName  = "scene.png"
	htmlName = "scene.html"
)

type config struct {
	scenePath string
	backend   string // raster, vector or both
	outDir    string
	dpr       float64
}

// the driver paints the whole basic shape vocabulary
var extraShapes = []raster.Option{
	raster.WithShape("circle", raster.Circle),
	raster.WithShape("ellipse", raster.Ellipse),
	raster.WithShape("line", raster.Line),
	raster.WithShape("polyline", raster.Polyline),
	raster.WithShape("polygon", raster.Polygon),
}

var errBackend = errors.New("invalid backend")

func (cfg config) validate() error {
	switch cfg.backend {
	case "raster", "vector", "both":
	default:
		return fmt.Errorf("%w %q (expected raster, vector or both)", errBackend, cfg.backend)
	}
	if cfg.dpr <= 0 {
		return fmt.Errorf("invalid device pixel ratio %g", cfg.dpr)
	}
	return nil
}

func (cfg config) useRaster() bool { return cfg.backend != "vector" }
func (cfg config) useVector() bool { return cfg.backend != "raster" }

// render reads the scene file and writes the outputs of the selected backends.
func (cfg config) render() error {
	sc, err := scene.ReadScene(cfg.scenePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
		return err
	}

	doc := dom.NewDocument()
	body := dom.Body(doc)

	var renderers []scene.Renderer
	var pixels *canvas2d.Context
	if cfg.useRaster() {
		pixels = canvas2d.NewContext(0, 0)
		opts := append([]raster.Option{
			raster.WithHost(dom.Window{PixelRatio: cfg.dpr}),
			raster.WithSurface(pixels),
		}, extraShapes...)
		r, err := raster.New(body, opts...)
		if err != nil {
			return err
		}
		renderers = append(renderers, r)
	}
	if cfg.useVector() {
		r, err := vector.New(body)
		if err != nil {
			return err
		}
		renderers = append(renderers, r)
	}

	for _, r := range renderers {
		// without explicit size, backends keep their defaults
		if sc.Width > 0 && sc.Height > 0 {
			r.SetSize(sc.Width, sc.Height)
		}
		r.Render(sc.Elements, sc.Transform)
	}

	if pixels != nil {
		if err := writeFile(filepath.Join(cfg.outDir, pngName), pixels.EncodePNG); err != nil {
			return err
		}
	}
	if cfg.useVector() {
		err := writeFile(filepath.Join(cfg.outDir, htmlName), func(w io.Writer) error {
			return dom.Render(w, doc)
		})
		if err != nil {
			return err
		}
	}

	scene.Logger().Info("scene rendered", "scene", cfg.scenePath, "elements", len(sc.Elements), "backend", cfg.backend)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
