// Command okscene renders a scene file with the raster backend (to a PNG
// image), the vector backend (to an HTML document holding an <svg>), or both.
//
// Usage:
//
//	okscene -scene shapes.yaml -backend both -dpr 2 -out build
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/benoitkugler/okscene/scene"
)

func main() {
	var cfg config
	flag.StringVar(&cfg.scenePath, "scene", "scene.yaml", "scene file (.yaml, .yml or .toml)")
	flag.StringVar(&cfg.backend, "backend", "both", "backend to use: raster, vector or both")
	flag.StringVar(&cfg.outDir, "out", ".", "output directory")
	flag.Float64Var(&cfg.dpr, "dpr", 1, "device pixel ratio of the raster output")
	watch := flag.Bool("watch", false, "render again each time the scene file changes")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	scene.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}

	if err := cfg.render(); err != nil {
		log.Fatal(err)
	}
	if !*watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cfg.watch(ctx); err != nil {
		log.Fatal(err)
	}
}
