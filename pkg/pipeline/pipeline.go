// Package pipeline turns a flight schedule into rendered trees.
//
// Every user action is a stateless [Request] handled by [Runner.Execute].
// The CLI, the HTTP server and the terminal browser all go through it, so
// they behave identically. Nothing is cached between requests: each run
// takes a prefix of the schedule's codes, builds the balanced tree, lays it
// out, performs the action and renders the requested formats.
//
// # Actions
//
//   - structure: draw the tree without highlighting
//   - inorder: traverse in order and highlight the whole sequence
//   - search: look up Query and highlight the root-to-target path
//
// # Usage
//
//	runner := pipeline.NewRunner(logger, pipeline.DefaultLimits())
//	res, err := runner.Execute(ctx, ds, pipeline.Request{
//	    Action:  pipeline.ActionSearch,
//	    Count:   10,
//	    Query:   "GA039",
//	    Formats: []string{"svg", "txt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !res.Found {
//	    fmt.Println(res.Message)
//	}
//	svg := res.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/matzehuels/flighttree/pkg/errors"
	"github.com/matzehuels/flighttree/pkg/layout"
)

// Actions.
const (
	ActionStructure = "structure"
	ActionInOrder   = "inorder"
	ActionSearch    = "search"
)

// ValidActions is the set of supported actions.
var ValidActions = map[string]bool{
	ActionStructure: true,
	ActionInOrder:   true,
	ActionSearch:    true,
}

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatText = "txt"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatText: true,
	FormatJSON: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatText: "text/plain; charset=utf-8",
	FormatJSON: "application/json",
}

// Titles drawn above each action's rendering.
const (
	TitleStructure = "Initial Tree Structure"
	TitleInOrder   = "In-order Traversal Path"
)

// SearchTitle returns the title of a search rendering.
func SearchTitle(code string) string { return fmt.Sprintf("Search Path to '%s'", code) }

// =============================================================================
// Limits
// =============================================================================

// Limits bounds the number of codes a tree is built from.
type Limits struct {
	MinCount     int
	MaxCount     int
	DefaultCount int
	Spread       float64
}

// DefaultLimits returns the limits of the interactive application: between
// 5 and 50 codes, 10 by default.
func DefaultLimits() Limits {
	return Limits{MinCount: 5, MaxCount: 50, DefaultCount: 10, Spread: layout.DefaultSpread}
}

// =============================================================================
// Request and Result
// =============================================================================

// Request describes one user action. The zero value of every field selects
// its default.
type Request struct {
	Action   string   `json:"action,omitempty"`
	Count    int      `json:"count,omitempty"`
	Query    string   `json:"query,omitempty"`
	Spread   float64  `json:"spread,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	Graphviz bool     `json:"graphviz,omitempty"` // draw SVG, PNG and PDF through Graphviz
}

// Normalize validates r against limits and fills in defaults. Search
// queries are trimmed; a blank query yields ErrCodeEmptyQuery.
func (r *Request) Normalize(limits Limits) error {
	if r.Action == "" {
		r.Action = ActionStructure
	}
	if !ValidActions[r.Action] {
		return errors.New(errors.ErrCodeInvalidAction, "unknown action %q", r.Action)
	}

	if r.Count == 0 {
		r.Count = limits.DefaultCount
	}
	if err := errors.ValidateCount(r.Count, limits.MinCount, limits.MaxCount); err != nil {
		return err
	}

	if r.Spread == 0 {
		r.Spread = limits.Spread
	}
	if r.Spread < 0 || math.IsNaN(r.Spread) || math.IsInf(r.Spread, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "spread must be a positive finite number")
	}

	if err := ValidateFormats(r.Formats); err != nil {
		return err
	}
	r.Formats = slices.Compact(slices.Sorted(slices.Values(r.Formats)))

	if r.Action == ActionSearch {
		q, err := errors.ValidateQuery(r.Query)
		if err != nil {
			return err
		}
		r.Query = q
	}
	return nil
}

// Result is the outcome of a request.
type Result struct {
	// Codes are the codes the tree was built from, ascending.
	Codes []string `json:"codes"`

	// Traversal is the in-order sequence (inorder action only).
	Traversal []string `json:"traversal,omitempty"`

	// Path is the highlighted path: the search path, the traversal, or nil.
	Path []string `json:"path,omitempty"`

	// Found reports whether the search target is in the tree.
	Found bool `json:"found"`

	Title   string `json:"title"`
	Message string `json:"message"`
	Height  int    `json:"height"`

	// Artifacts holds the rendered outputs keyed by format.
	Artifacts map[string][]byte `json:"-"`

	Stats Stats `json:"-"`
}

// Formats returns the formats present in Artifacts, sorted.
func (r *Result) Formats() []string {
	return slices.Sorted(maps.Keys(r.Artifacts))
}

// Stats contains pipeline execution timings.
type Stats struct {
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}

// ValidateFormats checks every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
