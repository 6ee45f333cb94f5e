package svg

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/flighttree/pkg/layout"
	"github.com/matzehuels/flighttree/pkg/render"
)

const (
	defaultRadius    = 24.0
	defaultRowHeight = 90.0
	defaultUnit      = 120.0
	minNodeGap       = 8.0
	margin           = 30.0
	titleHeight      = 40.0
)

const style = `
    .edge { stroke: #888888; stroke-width: 1.5; }
    .edge.highlight { stroke: #1b5e20; stroke-width: 4; }
    .node circle { fill: lightblue; stroke: #37474f; stroke-width: 1.5; }
    .node.highlight circle { fill: lightgreen; stroke: #1b5e20; stroke-width: 2.5; }
    .node text { font: bold 11px sans-serif; text-anchor: middle; dominant-baseline: central; }
    .title { font: bold 18px sans-serif; text-anchor: middle; }`

// Option configures an Adapter.
type Option func(*Adapter)

// WithRadius sets the node radius in pixels.
func WithRadius(r float64) Option {
	return func(a *Adapter) {
		if r > 0 {
			a.radius = r
		}
	}
}

// WithRowHeight sets the vertical distance between depths in pixels.
func WithRowHeight(h float64) Option {
	return func(a *Adapter) {
		if h > 0 {
			a.rowHeight = h
		}
	}
}

// Adapter draws SVG. Use a new Adapter for every drawing.
type Adapter struct {
	render.Canvas
	radius    float64
	rowHeight float64
}

// New creates an SVG adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{radius: defaultRadius, rowHeight: defaultRowHeight}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Render produces the SVG document.
func (a *Adapter) Render(title string) ([]byte, error) {
	b := a.Bounds()
	xScale := a.horizontalScale()
	pad := margin + a.radius

	width := math.Max(b.Width()*xScale+2*pad, 200)
	height := b.Height()*a.rowHeight + 2*pad + titleHeight

	// Center narrow trees in the minimum width.
	offsetX := (width - b.Width()*xScale) / 2
	toPx := func(p layout.Point) (float64, float64) {
		return offsetX + (p.X-b.Left)*xScale, titleHeight + pad + (b.Top-p.Y)*a.rowHeight
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", style)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")
	if title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%.1f" y="%.1f">%s</text>`+"\n", width/2, titleHeight*0.7, html.EscapeString(title))
	}

	hl := a.Highlighted()

	buf.WriteString("  <g class=\"edges\">\n")
	for _, e := range a.Edges() {
		from, okF := a.Position(e.From)
		to, okT := a.Position(e.To)
		if !okF || !okT {
			continue
		}
		x1, y1 := toPx(from)
		x2, y2 := toPx(to)
		fmt.Fprintf(&buf, `    <line class="%s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			class("edge", hl.Edge(e.From, e.To)), x1, y1, x2, y2)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("  <g class=\"nodes\">\n")
	for _, id := range a.Nodes() {
		p, ok := a.Position(id)
		if !ok {
			continue
		}
		cx, cy := toPx(p)
		label := html.EscapeString(id)
		fmt.Fprintf(&buf, `    <g class="%s" id="node-%s">`, class("node", hl.Node(id)), label)
		fmt.Fprintf(&buf, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`, cx, cy, a.radius)
		fmt.Fprintf(&buf, `<text x="%.1f" y="%.1f">%s</text></g>`+"\n", cx, cy, label)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// horizontalScale returns pixels per layout unit such that neighbouring
// nodes on the same row do not overlap.
func (a *Adapter) horizontalScale() float64 {
	gap := a.MinRowGap()
	if math.IsInf(gap, 1) || gap <= 0 {
		return defaultUnit
	}
	return math.Max(defaultUnit, (2*a.radius+minNodeGap)/gap)
}

func class(base string, highlighted bool) string {
	if highlighted {
		return base + " highlight"
	}
	return base
}

var _ render.Adapter = (*Adapter)(nil)
