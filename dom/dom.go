// Package dom provides the glue between the renderers and the host document,
// represented as a golang.org/x/net/html node tree: locating or creating
// drawing surfaces inside a container, reading and writing attributes,
// parsing and serializing documents.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/okscene/scene"
	"github.com/ericchiang/css"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// SVGNamespace is the namespace x/net/html uses for nodes of an <svg> subtree.
const SVGNamespace = "svg"

// elements whose content model can't hold a drawing surface
var noChildren = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
	// raw text elements
	"script": true, "style": true, "textarea": true, "title": true,
	"xmp": true, "iframe": true, "noembed": true, "noframes": true, "plaintext": true,
}

// NewDocument returns an empty document with html, head and body elements.
func NewDocument() *html.Node {
	doc, err := html.Parse(strings.NewReader(""))
	if err != nil { // html.Parse only fails on reader errors
		panic(err)
	}
	return doc
}

// ParseDocument reads an HTML document, converting it to UTF-8
// according to `contentType` (which may be empty) and the document content.
func ParseDocument(r io.Reader, contentType string) (*html.Node, error) {
	utf8, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting document charset: %w", err)
	}
	doc, err := html.Parse(utf8)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// Render writes the HTML serialization of `n`.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// Body returns the <body> element of `doc`, or nil.
func Body(doc *html.Node) *html.Node {
	return QuerySelector(doc, "body")
}

// CanHost returns an error wrapping scene.ErrInvalidContainer if
// `container` can't have a drawing surface appended to it.
func CanHost(container *html.Node) error {
	switch {
	case container == nil:
		return fmt.Errorf("%w: nil container", scene.ErrInvalidContainer)
	case container.Type != html.ElementNode:
		return fmt.Errorf("%w: node of type %d is not an element", scene.ErrInvalidContainer, container.Type)
	case container.Namespace == "" && noChildren[container.Data]:
		return fmt.Errorf("%w: <%s> can't have child elements", scene.ErrInvalidContainer, container.Data)
	}
	return nil
}

// QuerySelector returns the first descendant element of `n`
// (in document order) matching the CSS `selector`, or nil.
// An invalid selector matches nothing.
func QuerySelector(n *html.Node, selector string) *html.Node {
	matches, err := QuerySelectorAll(n, selector)
	if err != nil {
		scene.Logger().Debug("dom: query failed", "err", err)
		return nil
	}
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// QuerySelectorAll returns the descendant elements of `n` matching
// the CSS `selector`, in document order.
func QuerySelectorAll(n *html.Node, selector string) ([]*html.Node, error) {
	sel, err := css.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	var out []*html.Node
	for _, match := range sel.Select(n) {
		if match != n {
			out = append(out, match)
		}
	}
	return out, nil
}

// Children returns the element children of `n`.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// RemoveChildren detaches every child of `n`.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// CreateElement returns a new, detached HTML element.
func CreateElement(tag string) *html.Node {
	return CreateElementNS("", tag)
}

// CreateElementNS returns a new, detached element of the given namespace.
func CreateElementNS(namespace, tag string) *html.Node {
	return &html.Node{
		Type:      html.ElementNode,
		Data:      tag,
		DataAtom:  atom.Lookup([]byte(tag)),
		Namespace: namespace,
	}
}

// GetAttribute returns the value of the attribute `key` of `n`.
func GetAttribute(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttribute sets the attribute `key` of `n`, replacing
// a previous value in place or appending a new attribute.
func SetAttribute(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
