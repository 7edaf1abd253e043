// Provides the data model shared by the rendering backends:
// a scene is a flat list of tagged, attributed elements drawn
// under a single transform. See okscene/raster and okscene/vector
// for the backends consuming it.
package scene

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Attrs holds the geometry and style fields of an element.
// Values are numbers, strings or booleans.
type Attrs map[string]any

// Element is one shape descriptor of a scene.
// `Tag` selects the shape kind ("rect", ...).
type Element struct {
	Tag   string `yaml:"tag" toml:"tag"`
	Attrs Attrs  `yaml:"attrs" toml:"attrs"`
}

// Transform is applied once per render call to every element.
// The raster backend only uses the (X, Y) translation.
// The vector backend uses Expr verbatim when it is set.
type Transform struct {
	X    float64 `yaml:"x" toml:"x"`
	Y    float64 `yaml:"y" toml:"y"`
	Expr string  `yaml:"expr" toml:"expr"`
}

// String returns the transform as an SVG transform expression.
func (t Transform) String() string {
	if t.Expr != "" {
		return t.Expr
	}
	return "translate(" + formatFloat(t.X) + "," + formatFloat(t.Y) + ")"
}

// Renderer is implemented by every backend.
//
// SetSize sets the logical drawing area to width x height units,
// overriding any previous size.
//
// Render replaces the visible output: previous content is cleared, the
// transform applied and the elements drawn in order. Tags a backend does
// not know are never an error: the raster backend skips them, the vector
// backend passes them through as nodes.
type Renderer interface {
	SetSize(width, height float64)
	Render(elements []Element, transform Transform)
}

// Host is the environment providing the pixel density of the display.
type Host interface {
	// DevicePixelRatio maps logical units to physical pixels.
	DevicePixelRatio() float64
}

// PixelRatio returns the device pixel ratio of `h`, or 1 if `h` is nil
// or reports a ratio which is not a positive finite number.
func PixelRatio(h Host) float64 {
	if h == nil {
		return 1
	}
	dpr := h.DevicePixelRatio()
	if dpr <= 0 || math.IsInf(dpr, 0) || math.IsNaN(dpr) {
		return 1
	}
	return dpr
}

// Lookup returns the raw value stored for `key`.
func (a Attrs) Lookup(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Float returns the numeric value of `key`.
// Missing or non numeric values are read as 0.
func (a Attrs) Float(key string) float64 {
	v, ok := a[key]
	if !ok {
		return 0
	}
	f, ok := Number(v)
	if !ok {
		return 0
	}
	return f
}

// FloatOr is like Float, but returns `def` when the value is missing
// or not numeric.
func (a Attrs) FloatOr(key string, def float64) float64 {
	v, ok := a[key]
	if !ok {
		return def
	}
	f, ok := Number(v)
	if !ok {
		return def
	}
	return f
}

// String returns the value of `key` formatted as text,
// or an empty string if it is missing.
func (a Attrs) String(key string) string {
	v, ok := a[key]
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Keys returns the attribute names, sorted.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Number converts an attribute value to a float: any Go numeric
// type is accepted, as well as strings holding a decimal number.
func Number(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// FormatValue returns the textual form of an attribute value:
// strings are returned verbatim, numbers use their shortest
// representation, booleans are "true" or "false" and nil is "null".
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatFloat(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
