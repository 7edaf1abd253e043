package main

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
width: 40
height: 20
transform: {x: 5, y: 5}
elements:
  - tag: rect
    attrs: {x: 0, y: 0, width: 10, height: 10, fill: red}
  - tag: circle
    attrs: {cx: 20, cy: 5, r: 3}
`

func writeScene(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	assert.NoError(t, config{backend: "both", dpr: 1}.validate())
	assert.NoError(t, config{backend: "raster", dpr: 2}.validate())

	err := config{backend: "pdf", dpr: 1}.validate()
	assert.True(t, errors.Is(err, errBackend))
	assert.Error(t, config{backend: "vector", dpr: 0}.validate())
}

func TestRenderBoth(t *testing.T) {
	cfg := config{
		scenePath: writeScene(t, "shapes.yaml", sceneYAML),
		backend:   "both",
		outDir:    filepath.Join(t.TempDir(), "out"),
		dpr:       2,
	}
	require.NoError(t, cfg.render())

	f, err := os.Open(filepath.Join(cfg.outDir, pngName))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	// (5, 5) translated, at density 2
	_, _, _, a := img.At(20, 20).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	_, _, _, a = img.At(2, 2).RGBA()
	assert.Equal(t, uint32(0), a)

	page, err := os.ReadFile(filepath.Join(cfg.outDir, htmlName))
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, `<canvas width="80" height="40"`)
	assert.Contains(t, html, `<g data-role="scene" transform="translate(5,5)">`)
	assert.Contains(t, html, `<rect fill="red" height="10" width="10" x="0" y="0"></rect>`)
	assert.Contains(t, html, `<circle cx="20" cy="5" r="3"></circle>`)
}

func TestRenderSingleBackend(t *testing.T) {
	scenePath := writeScene(t, "shapes.yaml", sceneYAML)

	out := t.TempDir()
	require.NoError(t, config{scenePath: scenePath, backend: "raster", outDir: out, dpr: 1}.render())
	assert.FileExists(t, filepath.Join(out, pngName))
	assert.NoFileExists(t, filepath.Join(out, htmlName))

	out = t.TempDir()
	require.NoError(t, config{scenePath: scenePath, backend: "vector", outDir: out, dpr: 1}.render())
	assert.NoFileExists(t, filepath.Join(out, pngName))
	page, err := os.ReadFile(filepath.Join(out, htmlName))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(page), "<canvas"))
}

func TestRenderTOML(t *testing.T) {
	scenePath := writeScene(t, "shapes.toml", `
width = 10.0
height = 10.0

[[elements]]
tag = "rect"
[elements.attrs]
width = 4.0
height = 4.0
`)
	out := t.TempDir()
	require.NoError(t, config{scenePath: scenePath, backend: "vector", outDir: out, dpr: 1}.render())
	page, err := os.ReadFile(filepath.Join(out, htmlName))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<svg width="10" height="10">`)
}

func TestRenderErrors(t *testing.T) {
	out := t.TempDir()
	err := config{scenePath: writeScene(t, "shapes.json", "{}"), backend: "both", outDir: out, dpr: 1}.render()
	assert.Error(t, err)

	err = config{scenePath: filepath.Join(out, "missing.yaml"), backend: "both", outDir: out, dpr: 1}.render()
	assert.Error(t, err)

	err = config{scenePath: writeScene(t, "bad.yaml", "elements: 3"), backend: "both", outDir: out, dpr: 1}.render()
	assert.Error(t, err)
}

func TestIsSceneUpdate(t *testing.T) {
	target := filepath.Join("dir", "scene.yaml")
	assert.True(t, isSceneUpdate(fsnotify.Event{Name: "dir/./scene.yaml", Op: fsnotify.Write}, target))
	assert.True(t, isSceneUpdate(fsnotify.Event{Name: target, Op: fsnotify.Create}, target))
	assert.False(t, isSceneUpdate(fsnotify.Event{Name: target, Op: fsnotify.Chmod}, target))
	assert.False(t, isSceneUpdate(fsnotify.Event{Name: "dir/other.yaml", Op: fsnotify.Write}, target))
}
