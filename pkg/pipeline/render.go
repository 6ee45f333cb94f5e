package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/flighttree/pkg/graph"
	"github.com/matzehuels/flighttree/pkg/render"
	"github.com/matzehuels/flighttree/pkg/render/nodelink"
	"github.com/matzehuels/flighttree/pkg/render/svg"
	"github.com/matzehuels/flighttree/pkg/render/text"
)

// pngScale renders PNGs at 2x for high-DPI displays.
const pngScale = 2.0

// renderArtifacts renders every requested format concurrently. Each
// goroutine draws from the same scene with its own adapter.
func (r *Runner) renderArtifacts(ctx context.Context, scene render.Scene, req Request) (map[string][]byte, error) {
	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(req.Formats))
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range req.Formats {
		g.Go(func() error {
			data, err := r.renderFormat(ctx, scene, format, req.Graphviz)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (r *Runner) renderFormat(ctx context.Context, scene render.Scene, format string, graphviz bool) ([]byte, error) {
	switch format {
	case FormatSVG:
		return r.renderSVG(ctx, scene, graphviz)
	case FormatPNG:
		data, err := r.renderSVG(ctx, scene, graphviz)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, data, pngScale)
	case FormatPDF:
		data, err := r.renderSVG(ctx, scene, graphviz)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, data)
	case FormatDOT:
		return render.Draw(nodelink.NewDOT(), scene)
	case FormatText:
		return render.Draw(text.New(r.textRenderer()), scene)
	case FormatJSON:
		return graph.Marshal(scene)
	default:
		return nil, ValidateFormat(format)
	}
}

func (r *Runner) renderSVG(ctx context.Context, scene render.Scene, graphviz bool) ([]byte, error) {
	if graphviz {
		return render.Draw(nodelink.New().WithContext(ctx), scene)
	}
	return render.Draw(svg.New(), scene)
}

func (r *Runner) textRenderer() *lipgloss.Renderer {
	if r.Text != nil {
		return r.Text
	}
	return lipgloss.NewRenderer(io.Discard)
}
