package scene

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Scene is the content of a scene file: the logical size
// of the drawing area, the transform and the elements to draw.
type Scene struct {
	Width     float64   `yaml:"width" toml:"width"`
	Height    float64   `yaml:"height" toml:"height"`
	Transform Transform `yaml:"transform" toml:"transform"`
	Elements  []Element `yaml:"elements" toml:"elements"`
}

// Format identifies a scene file encoding.
type Format uint8

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "<unknown Format>"
	}
}

// FormatFromPath returns the format matching the extension of `path`.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// ReadSceneStream decodes a scene from the given io.Reader.
func ReadSceneStream(stream io.Reader, format Format) (*Scene, error) {
	var (
		s   Scene
		err error
	)
	switch format {
	case YAML:
		err = yaml.NewDecoder(stream).Decode(&s)
	case TOML:
		err = toml.NewDecoder(stream).Decode(&s)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s scene: %w", format, err)
	}
	return &s, nil
}

// ReadScene reads the scene from the named file,
// choosing the decoder from its extension.
func ReadScene(sceneFile string) (*Scene, error) {
	format, err := FormatFromPath(sceneFile)
	if err != nil {
		return nil, err
	}
	fin, err := os.Open(sceneFile)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadSceneStream(fin, format)
}
