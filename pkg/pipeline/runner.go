package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flighttree/pkg/bst"
	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/errors"
	"github.com/matzehuels/flighttree/pkg/layout"
	"github.com/matzehuels/flighttree/pkg/observability"
	"github.com/matzehuels/flighttree/pkg/render"
)

// Runner executes requests. It holds no per-request state, so one Runner
// may serve concurrent requests.
type Runner struct {
	Logger *log.Logger
	Limits Limits

	// Text styles the txt format. Nil produces plain text.
	Text *lipgloss.Renderer
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger, limits Limits) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger, Limits: limits}
}

// Execute runs req against ds. A search that misses is not an error: the
// result has Found false and the plain structure is rendered.
func (r *Runner) Execute(ctx context.Context, ds *dataset.Dataset, req Request) (*Result, error) {
	if ds == nil {
		return nil, errors.New(errors.ErrCodeNoInput, "upload a flight schedule to build a tree")
	}
	if err := req.Normalize(r.Limits); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	codes := ds.Prefix(req.Count)
	result := &Result{Codes: codes}

	// Stage 1: Build
	start := time.Now()
	hooks.OnBuildStart(ctx, len(codes))
	root := bst.Build(codes)
	result.Height = bst.Height(root)
	result.Stats.BuildTime = time.Since(start)
	hooks.OnBuildComplete(ctx, result.Height, result.Stats.BuildTime)

	r.Logger.Debug("built tree",
		"codes", len(codes),
		"height", result.Height,
		"duration", result.Stats.BuildTime)

	// Stage 2: Layout
	start = time.Now()
	hooks.OnLayoutStart(ctx, len(codes))
	res := layout.Compute(root, layout.WithSpread(req.Spread))
	result.Stats.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, result.Stats.LayoutTime)

	r.Logger.Debug("computed layout",
		"nodes", res.Graph.NodeCount(),
		"edges", res.Graph.EdgeCount(),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Action
	switch req.Action {
	case ActionStructure:
		result.Title = TitleStructure
		result.Message = fmt.Sprintf("Built a tree of height %d from the first %d flight codes", result.Height, len(codes))
	case ActionInOrder:
		result.Traversal = bst.Collect(root)
		result.Path = result.Traversal
		result.Title = TitleInOrder
		result.Message = fmt.Sprintf("In-order traversal visited %d codes in sorted order", len(result.Traversal))
	case ActionSearch:
		path, found := bst.SearchPath(root, req.Query)
		result.Path, result.Found = path, found
		result.Title = SearchTitle(req.Query)
		if found {
			result.Message = fmt.Sprintf("Code '%s' found after visiting %d nodes", req.Query, len(path))
		} else {
			result.Message = fmt.Sprintf("Code '%s' not found", req.Query)
		}
		hooks.OnSearch(ctx, req.Query, found, len(path))
		r.Logger.Debug("searched", "code", req.Query, "found", found, "visited", len(path))
	}
	if req.Title != "" {
		result.Title = req.Title
	}

	// Stage 4: Render
	if len(req.Formats) == 0 {
		return result, nil
	}
	start = time.Now()
	hooks.OnRenderStart(ctx, req.Formats)
	scene := render.NewScene(res, result.Path, result.Title)
	artifacts, err := r.renderArtifacts(ctx, scene, req)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, req.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	r.Logger.Debug("rendered outputs",
		"formats", req.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}
