package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flighttree/pkg/render"
)

const (
	nodeWidth   = 0.8 // inches
	rowHeight   = 1.2 // inches
	defaultUnit = 1.6 // inches per layout unit
	nodeGap     = 0.1 // inches
)

// Adapter renders a tree through Graphviz. Use a new Adapter for every
// drawing.
type Adapter struct {
	render.Canvas
	ctx     context.Context
	dotOnly bool
}

// New creates an adapter whose Render returns SVG produced by Graphviz.
func New() *Adapter { return &Adapter{ctx: context.Background()} }

// NewDOT creates an adapter whose Render returns the DOT source.
func NewDOT() *Adapter { return &Adapter{ctx: context.Background(), dotOnly: true} }

// WithContext sets the context used for Graphviz rendering.
func (a *Adapter) WithContext(ctx context.Context) *Adapter {
	a.ctx = ctx
	return a
}

// Render returns DOT source or SVG depending on how the adapter was created.
func (a *Adapter) Render(title string) ([]byte, error) {
	dot := a.DOT(title)
	if a.dotOnly {
		return []byte(dot), nil
	}
	return RenderSVG(a.ctx, dot)
}

// DOT returns Graphviz source for the recorded tree.
func (a *Adapter) DOT(title string) string {
	hl := a.Highlighted()
	scale := a.horizontalScale()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  splines=false;\n")
	if title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", title)
		buf.WriteString("  labelloc=t;\n")
		buf.WriteString("  fontsize=20;\n")
		buf.WriteString("  fontname=\"Helvetica-Bold\";\n")
	}
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=lightblue, fixedsize=true, width=%.2f, fontsize=10, fontname=\"Helvetica-Bold\"];\n", nodeWidth)
	buf.WriteString("  edge [arrowhead=none, color=gray40, penwidth=1.2];\n")
	buf.WriteString("\n")

	for _, id := range a.Nodes() {
		attrs := ""
		if p, ok := a.Position(id); ok {
			attrs = fmt.Sprintf("pos=\"%.3f,%.3f!\"", p.X*scale, p.Y*rowHeight)
		}
		if hl.Node(id) {
			attrs = join(attrs, "fillcolor=lightgreen")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, attrs)
	}

	buf.WriteString("\n")
	for _, e := range a.Edges() {
		if hl.Edge(e.From, e.To) {
			fmt.Fprintf(&buf, "  %q -> %q [color=darkgreen, penwidth=3];\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func (a *Adapter) horizontalScale() float64 {
	gap := a.MinRowGap()
	if math.IsInf(gap, 1) || gap <= 0 {
		return defaultUnit
	}
	return math.Max(defaultUnit, (nodeWidth+nodeGap)/gap)
}

func join(attrs, attr string) string {
	if attrs == "" {
		return attr
	}
	return attrs + ", " + attr
}

// RenderSVG renders DOT source to SVG with the neato engine, which keeps
// pinned node positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

var _ render.Adapter = (*Adapter)(nil)
