package svg

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/flighttree/pkg/bst"
	"github.com/matzehuels/flighttree/pkg/layout"
	"github.com/matzehuels/flighttree/pkg/render"
)

var flightCodes = []string{"GA010", "GA039", "GA100", "GA201", "GA305"}

func draw(t *testing.T, codes, path []string, title string, opts ...Option) string {
	t.Helper()
	res := layout.Compute(bst.Build(codes))
	out, err := render.Draw(New(opts...), render.NewScene(res, path, title))
	if err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	return string(out)
}

func TestRenderWellFormed(t *testing.T) {
	out := draw(t, flightCodes, nil, "Initial Tree Structure")

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v", err)
		}
	}

	if !strings.HasPrefix(out, "<svg ") {
		t.Error("output should start with <svg")
	}
	if !strings.Contains(out, ">Initial Tree Structure</text>") {
		t.Error("title missing")
	}
	for _, code := range flightCodes {
		if !strings.Contains(out, `id="node-`+code+`"`) {
			t.Errorf("node %s missing", code)
		}
	}
	if got := strings.Count(out, "<line "); got != 4 {
		t.Errorf("got %d edges, want 4", got)
	}
	if strings.Contains(out, "highlight\"") {
		t.Error("nil path should not highlight anything")
	}
}

func TestRenderHighlightsSearchPath(t *testing.T) {
	out := draw(t, flightCodes, []string{"GA100", "GA039", "GA010"}, "Search Path to 'GA010'")

	for _, code := range []string{"GA100", "GA039", "GA010"} {
		if !strings.Contains(out, `<g class="node highlight" id="node-`+code+`">`) {
			t.Errorf("node %s should be highlighted", code)
		}
	}
	for _, code := range []string{"GA305", "GA201"} {
		if !strings.Contains(out, `<g class="node" id="node-`+code+`">`) {
			t.Errorf("node %s should not be highlighted", code)
		}
	}
	if got := strings.Count(out, `class="edge highlight"`); got != 2 {
		t.Errorf("got %d highlighted edges, want 2", got)
	}
	if !strings.Contains(out, "Search Path to &#39;GA010&#39;") {
		t.Error("title should be escaped")
	}
}

func TestRenderEmptyTree(t *testing.T) {
	out := draw(t, nil, nil, "")
	if strings.Contains(out, "<circle") || strings.Contains(out, "<line ") {
		t.Error("empty tree should draw no shapes")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("document should be closed")
	}
}

func TestHorizontalScaleAvoidsOverlap(t *testing.T) {
	codes := make([]string, 50)
	for i := range codes {
		codes[i] = string(rune('A'+i/26)) + string(rune('a'+i%26))
	}

	res := layout.Compute(bst.Build(codes))
	a := New(WithRadius(20))
	if _, err := render.Draw(a, render.NewScene(res, nil, "")); err != nil {
		t.Fatal(err)
	}

	scale := a.horizontalScale()
	rows := map[float64][]float64{}
	for _, p := range res.Positions {
		rows[p.Y] = append(rows[p.Y], p.X)
	}
	for y, xs := range rows {
		for i := range xs {
			for j := i + 1; j < len(xs); j++ {
				d := xs[i] - xs[j]
				if d < 0 {
					d = -d
				}
				if d*scale < 2*20 {
					t.Fatalf("row %v: nodes %v and %v overlap at scale %v", y, xs[i], xs[j], scale)
				}
			}
		}
	}
}

func TestOptionsIgnoreNonPositive(t *testing.T) {
	a := New(WithRadius(0), WithRowHeight(-1))
	if a.radius != defaultRadius || a.rowHeight != defaultRowHeight {
		t.Errorf("got radius %v row height %v", a.radius, a.rowHeight)
	}
}
