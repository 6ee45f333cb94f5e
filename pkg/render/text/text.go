// Package text renders a tree for the terminal.
//
// The tree is printed top-down with box-drawing connectors. Each child is
// tagged L or R for its side, derived from the layout coordinates.
// Highlighted nodes carry a trailing marker and, on color terminals, are
// drawn in green with lipgloss.
//
//	Search Path to 'GA010'
//	GA100 *
//	├─L GA039 *
//	│   └─L GA010 *
//	└─R GA305
//	    └─L GA201
package text

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flighttree/pkg/render"
)

// Marker follows every highlighted node.
const Marker = " *"

// Adapter draws a text tree. Use a new Adapter for every drawing.
type Adapter struct {
	render.Canvas

	title     lipgloss.Style
	node      lipgloss.Style
	highlight lipgloss.Style
	branch    lipgloss.Style
	path      lipgloss.Style
}

// New creates a text adapter that styles output for r. A nil renderer uses
// lipgloss's default, which detects the terminal of standard output.
func New(r *lipgloss.Renderer) *Adapter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Adapter{
		title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		node:      r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		highlight: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E")),
		branch:    r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		path:      r.NewStyle().Foreground(lipgloss.Color("#22C55E")),
	}
}

// Render returns the tree, one node per line, followed by a newline.
func (a *Adapter) Render(title string) ([]byte, error) {
	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	for _, e := range a.Edges() {
		children[e.From] = append(children[e.From], e.To)
		hasParent[e.To] = true
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(a.title.Render(title))
		sb.WriteByte('\n')
	}
	for _, id := range a.Nodes() {
		if !hasParent[id] {
			sb.WriteString(a.label(id))
			sb.WriteByte('\n')
			a.writeChildren(&sb, id, children, "")
		}
	}
	return []byte(sb.String()), nil
}

func (a *Adapter) writeChildren(sb *strings.Builder, parent string, children map[string][]string, indent string) {
	kids := children[parent]
	hl := a.Highlighted()
	for i, child := range kids {
		last := i == len(kids)-1
		connector, next := "├─", "│   "
		if last {
			connector, next = "└─", "    "
		}

		style := a.branch
		if hl.Edge(parent, child) {
			style = a.path
		}
		sb.WriteString(indent)
		sb.WriteString(style.Render(connector + a.side(parent, child)))
		sb.WriteByte(' ')
		sb.WriteString(a.label(child))
		sb.WriteByte('\n')

		a.writeChildren(sb, child, children, indent+next)
	}
}

func (a *Adapter) label(id string) string {
	if a.Highlighted().Node(id) {
		return a.highlight.Render(id + Marker)
	}
	return a.node.Render(id)
}

// side reports which side of parent child hangs on.
func (a *Adapter) side(parent, child string) string {
	p, okP := a.Position(parent)
	c, okC := a.Position(child)
	switch {
	case !okP || !okC:
		return "─"
	case c.X < p.X:
		return "L"
	default:
		return "R"
	}
}

var _ render.Adapter = (*Adapter)(nil)
