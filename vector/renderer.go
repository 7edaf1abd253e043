// Implements the retained-mode backend: scenes are rendered as
// child nodes of an <svg> element, under a single layer group
// carrying the transform. The layer is rebuilt from scratch on
// every Render call.
package vector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/okscene/dom"
	"github.com/benoitkugler/okscene/scene"
	"golang.org/x/net/html"
)

var _ scene.Renderer = (*Renderer)(nil) // assert interface conformance

// layerAttr marks the group hosting the scene nodes
const layerAttr = "data-role"

// DefaultLayerRole is the value of the attribute marking the layer group.
const DefaultLayerRole = "scene"

// Option configures a Renderer during creation.
type Option func(*options)

type options struct {
	layerRole string
}

// WithLayerRole changes the value of the data-role attribute identifying
// the layer group, so that several renderers may share one <svg>.
func WithLayerRole(role string) Option {
	return func(o *options) {
		o.layerRole = role
	}
}

// Renderer renders scenes as nodes of an <svg> element.
// It is not safe for concurrent use.
type Renderer struct {
	svg   *html.Node
	layer *html.Node // <g> hosting the transform
}

// New returns a renderer bound to the first <svg> element found in
// `container`, creating and appending one if needed. Inside it, the
// layer group is also located or created, so that constructing
// several renderers against the same container never duplicates nodes.
// An error wrapping scene.ErrInvalidContainer is returned if `container`
// can't host an <svg> element.
func New(container *html.Node, opts ...Option) (*Renderer, error) {
	if err := dom.CanHost(container); err != nil {
		return nil, fmt.Errorf("vector: %w", err)
	}
	o := options{layerRole: DefaultLayerRole}
	for _, opt := range opts {
		opt(&o)
	}

	svg := dom.QuerySelector(container, "svg")
	if svg == nil {
		svg = dom.CreateElementNS(dom.SVGNamespace, "svg")
		container.AppendChild(svg)
		scene.Logger().Debug("vector: created svg element")
	}

	layer := findLayer(svg, o.layerRole)
	if layer == nil {
		layer = dom.CreateElementNS(dom.SVGNamespace, "g")
		dom.SetAttribute(layer, layerAttr, o.layerRole)
		svg.AppendChild(layer)
	}
	return &Renderer{svg: svg, layer: layer}, nil
}

func findLayer(svg *html.Node, role string) *html.Node {
	for _, child := range dom.Children(svg) {
		if child.Data != "g" {
			continue
		}
		if v, ok := dom.GetAttribute(child, layerAttr); ok && v == role {
			return child
		}
	}
	return nil
}

// Root returns the <svg> element.
func (r *Renderer) Root() *html.Node { return r.svg }

// Layer returns the group node hosting the rendered elements.
func (r *Renderer) Layer() *html.Node { return r.layer }

// SetSize sets the width and height attributes of the <svg> element.
// The vector surface is resolution independent: the device
// pixel ratio plays no role.
func (r *Renderer) SetSize(width, height float64) {
	dom.SetAttribute(r.svg, "width", strconv.FormatFloat(width, 'f', -1, 64))
	dom.SetAttribute(r.svg, "height", strconv.FormatFloat(height, 'f', -1, 64))
	scene.Logger().Debug("vector: resized", "width", width, "height", height)
}

// Render removes the previous nodes, sets the layer transform to
// `transform.String()` and appends one node per element, in order.
//
// The tag vocabulary is not validated: any tag which is an XML name
// becomes a node of that name, other elements are skipped.
// Attribute keys are lowercased, and copied in sorted order; when two keys
// are equal once lowercased, the one already lowercase wins. Keys which
// are not XML names are dropped.
func (r *Renderer) Render(elements []scene.Element, transform scene.Transform) {
	dom.RemoveChildren(r.layer)
	dom.SetAttribute(r.layer, "transform", transform.String())

	for _, el := range elements {
		if !dom.IsName(el.Tag) { // can't name a node
			scene.Logger().Debug("vector: skipping element with invalid tag", "tag", el.Tag)
			continue
		}
		r.layer.AppendChild(newNode(el))
	}
}

func newNode(el scene.Element) *html.Node {
	node := dom.CreateElementNS(dom.SVGNamespace, el.Tag)
	// uppercase letters sort first: exact lowercase keys are set last
	for _, key := range el.Attrs.Keys() {
		name := strings.ToLower(key)
		if !dom.IsName(name) {
			scene.Logger().Debug("vector: skipping invalid attribute", "tag", el.Tag, "key", key)
			continue
		}
		dom.SetAttribute(node, name, scene.FormatValue(el.Attrs[key]))
	}
	return node
}
