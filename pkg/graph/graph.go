package graph

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/flighttree/pkg/render"
)

// =============================================================================
// Serialization API
// =============================================================================

// Marshal converts a render scene to indented JSON.
func Marshal(s render.Scene) ([]byte, error) {
	return render.Draw(NewAdapter(), s)
}

// Write writes a render scene as JSON to w.
func Write(w io.Writer, s render.Scene) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read decodes a JSON scene from r.
func Read(r io.Reader) (Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Scene{}, fmt.Errorf("decode: %w", err)
	}
	return s, nil
}

// ReadFile decodes a JSON scene from the file at path.
func ReadFile(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// =============================================================================
// Adapter
// =============================================================================

// Adapter builds a [Scene] from drawing calls and renders it as JSON.
type Adapter struct {
	render.Canvas
	path []string
}

// NewAdapter creates a JSON adapter.
func NewAdapter() *Adapter { return &Adapter{} }

// SetHighlight records the path to highlight.
func (a *Adapter) SetHighlight(path []string) {
	a.path = slices.Clone(path)
	a.Canvas.SetHighlight(path)
}

// Scene returns the recorded drawing as a serializable scene.
func (a *Adapter) Scene(title string) Scene {
	hl := a.Highlighted()
	depth := a.depths()

	s := Scene{
		Title: title,
		Nodes: make([]Node, 0, len(a.Nodes())),
		Edges: make([]Edge, 0, len(a.Edges())),
		Path:  a.path,
	}
	if s.Path == nil {
		s.Path = []string{}
	}
	for _, id := range a.Nodes() {
		p, _ := a.Position(id)
		s.Nodes = append(s.Nodes, Node{
			ID:          id,
			X:           p.X,
			Y:           p.Y,
			Depth:       depth[id],
			Highlighted: hl.Node(id),
		})
	}
	for _, e := range a.Edges() {
		s.Edges = append(s.Edges, Edge{From: e.From, To: e.To, Highlighted: hl.Edge(e.From, e.To)})
	}

	slices.SortFunc(s.Nodes, func(x, y Node) int { return cmp.Compare(x.ID, y.ID) })
	slices.SortFunc(s.Edges, func(x, y Edge) int {
		return cmp.Or(cmp.Compare(x.From, y.From), cmp.Compare(x.To, y.To))
	})
	return s
}

// Render returns the scene as indented JSON.
func (a *Adapter) Render(title string) ([]byte, error) {
	data, err := json.MarshalIndent(a.Scene(title), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return append(data, '\n'), nil
}

// depths derives node depths from the recorded edges.
func (a *Adapter) depths() map[string]int {
	parent := make(map[string]string, len(a.Edges()))
	for _, e := range a.Edges() {
		parent[e.To] = e.From
	}

	depth := make(map[string]int, len(a.Nodes()))
	var resolve func(id string) int
	resolve = func(id string) int {
		if d, ok := depth[id]; ok {
			return d
		}
		d := 0
		if p, ok := parent[id]; ok {
			d = resolve(p) + 1
		}
		depth[id] = d
		return d
	}
	for _, id := range a.Nodes() {
		resolve(id)
	}
	return depth
}

var _ render.Adapter = (*Adapter)(nil)
