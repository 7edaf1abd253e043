package dom

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/benoitkugler/okscene/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	body := Body(doc)
	require.NotNil(t, body)
	assert.Equal(t, atom.Body, body.DataAtom)
	assert.NoError(t, CanHost(body))
}

func TestParseDocumentCharset(t *testing.T) {
	// "café" encoded in latin-1
	src := []byte("<html><body><div id=\"c\">caf\xe9</div><canvas width=\"40\"></canvas></body></html>")
	doc, err := ParseDocument(bytes.NewReader(src), "text/html; charset=iso-8859-1")
	require.NoError(t, err)

	div := QuerySelector(doc, "div")
	require.NotNil(t, div)
	id, ok := GetAttribute(div, "id")
	assert.True(t, ok)
	assert.Equal(t, "c", id)
	assert.Equal(t, "café", div.FirstChild.Data)

	canvas := QuerySelector(doc, "canvas")
	require.NotNil(t, canvas)
	w, _ := GetAttribute(canvas, "width")
	assert.Equal(t, "40", w)
}

func TestQuerySelectorOrder(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(
		`<div><section><svg id="first"></svg></section><svg id="second"></svg></div>`), "")
	require.NoError(t, err)
	div := QuerySelector(doc, "div")
	svg := QuerySelector(div, "svg")
	require.NotNil(t, svg)
	id, _ := GetAttribute(svg, "id")
	assert.Equal(t, "first", id)
	assert.Equal(t, SVGNamespace, svg.Namespace)

	assert.Nil(t, QuerySelector(div, "canvas"))
	// the node itself is not a candidate
	assert.Nil(t, QuerySelector(svg, "svg"))
}

func TestQuerySelectorAll(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(
		`<div id="a"><p class="x">1</p><span><p class="x">2</p></span><p>3</p></div>`), "")
	require.NoError(t, err)

	all, err := QuerySelectorAll(doc, "p.x")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].FirstChild.Data)
	assert.Equal(t, "2", all[1].FirstChild.Data)

	child := QuerySelector(doc, "div#a > p")
	require.NotNil(t, child)
	assert.Equal(t, "1", child.FirstChild.Data)

	_, err = QuerySelectorAll(doc, "p[")
	assert.Error(t, err)
	assert.Nil(t, QuerySelector(doc, "p["))
}

func TestCanHost(t *testing.T) {
	img := CreateElement("img")
	text := &html.Node{Type: html.TextNode, Data: "hello"}
	for _, n := range []*html.Node{nil, img, text, CreateElement("script")} {
		err := CanHost(n)
		assert.True(t, errors.Is(err, scene.ErrInvalidContainer), "%v", err)
	}
	assert.NoError(t, CanHost(CreateElement("div")))
	// <image> in the SVG namespace is not the HTML void element
	assert.NoError(t, CanHost(CreateElementNS(SVGNamespace, "g")))
}

func TestAttributes(t *testing.T) {
	assert.Equal(t, atom.Canvas, CreateElement("canvas").DataAtom)
	assert.Equal(t, atom.Svg, CreateElementNS(SVGNamespace, "svg").DataAtom)

	n := CreateElementNS(SVGNamespace, "rect")

	SetAttribute(n, "x", "1")
	SetAttribute(n, "fill", "red")
	SetAttribute(n, "x", "2")
	require.Len(t, n.Attr, 2)
	v, ok := GetAttribute(n, "x")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = GetAttribute(n, "missing")
	assert.False(t, ok)
}

func TestChildren(t *testing.T) {
	g := CreateElementNS(SVGNamespace, "g")
	g.AppendChild(CreateElementNS(SVGNamespace, "rect"))
	g.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
	g.AppendChild(CreateElementNS(SVGNamespace, "circle"))
	assert.Len(t, Children(g), 2)

	RemoveChildren(g)
	assert.Nil(t, g.FirstChild)
	assert.Nil(t, g.LastChild)
	assert.Empty(t, Children(g))
}

func TestRender(t *testing.T) {
	div := CreateElement("div")
	svg := CreateElementNS(SVGNamespace, "svg")
	SetAttribute(svg, "width", "10")
	div.AppendChild(svg)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, div))
	assert.Equal(t, `<div><svg width="10"></svg></div>`, buf.String())
}

func TestWindow(t *testing.T) {
	assert.Equal(t, 1.0, Window{}.DevicePixelRatio())
	assert.Equal(t, 2.0, Window{PixelRatio: 2}.DevicePixelRatio())
	assert.Equal(t, 1.0, scene.PixelRatio(Window{PixelRatio: -1}))
}
