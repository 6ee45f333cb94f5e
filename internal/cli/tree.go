package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flighttree/pkg/errors"
	"github.com/matzehuels/flighttree/pkg/pipeline"
)

// treeOpts holds the flags shared by the tree, inorder and search commands.
type treeOpts struct {
	source   sourceOpts
	count    int
	formats  string
	output   string
	spread   float64
	title    string
	graphviz bool
}

func (o *treeOpts) register(cmd *cobra.Command) {
	o.source.register(cmd)
	cmd.Flags().IntVarP(&o.count, "count", "n", 0, "number of codes to build the tree from (default from config)")
	cmd.Flags().StringVar(&o.formats, "format", pipeline.FormatText, "output formats, comma-separated: svg,png,pdf,dot,txt,json")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file base path (extension added per format)")
	cmd.Flags().Float64Var(&o.spread, "spread", 0, "horizontal distance between the root's children (default from config)")
	cmd.Flags().StringVar(&o.title, "title", "", "override the drawing title")
	cmd.Flags().BoolVar(&o.graphviz, "graphviz", false, "draw svg, png and pdf through Graphviz")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatDOT, pipeline.FormatText, pipeline.FormatJSON},
		cobra.ShellCompDirectiveNoFileComp))
}

// request converts the flags into a pipeline request.
func (o *treeOpts) request(action, query string) pipeline.Request {
	return pipeline.Request{
		Action:   action,
		Count:    o.count,
		Query:    query,
		Spread:   o.spread,
		Formats:  parseFormats(o.formats),
		Title:    o.title,
		Graphviz: o.graphviz,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatText}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{pipeline.FormatText}
	}
	return out
}

func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts
	cmd := &cobra.Command{
		Use:     "tree",
		Short:   "Draw the tree built from the first codes of a schedule",
		Args:    cobra.NoArgs,
		PreRunE: positiveCount,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), cmd.OutOrStdout(), opts, opts.request(pipeline.ActionStructure, ""), "tree")
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) inorderCommand() *cobra.Command {
	var opts treeOpts
	cmd := &cobra.Command{
		Use:     "inorder",
		Short:   "Draw the tree with its in-order traversal highlighted",
		Args:    cobra.NoArgs,
		PreRunE: positiveCount,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), cmd.OutOrStdout(), opts, opts.request(pipeline.ActionInOrder, ""), "inorder")
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) searchCommand() *cobra.Command {
	var opts treeOpts
	cmd := &cobra.Command{
		Use:   "search <code>",
		Short: "Draw the path a search for a flight code takes",
		Example: `  flighttree search GA100
  flighttree search GA201 -n 20 --format svg,png -o search`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return c.completeCodes(cmd.Context(), opts.source, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		PreRunE: positiveCount,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(args[0])
			return c.runTree(cmd.Context(), cmd.OutOrStdout(), opts, opts.request(pipeline.ActionSearch, query), "search-"+query)
		},
	}
	opts.register(cmd)
	return cmd
}

// runTree executes req and writes its artifacts. A single textual format
// without --output is written to out; everything else goes to files named
// after base.
func (c *CLI) runTree(ctx context.Context, out io.Writer, opts treeOpts, req pipeline.Request, base string) error {
	ds, name, err := c.loadDataset(ctx, opts.source)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded schedule", "source", name, "codes", ds.Len())

	toStdout := opts.output == "" && len(req.Formats) == 1 && isTextFormat(req.Formats[0])
	if toStdout {
		result, err := c.newRunner().Execute(ctx, ds, req)
		if err != nil {
			return err
		}
		_, err = out.Write(result.Artifacts[req.Formats[0]])
		return err
	}

	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(ctx, "Rendering "+strings.Join(req.Formats, ", ")+"...")
	spin.Start()
	result, err := c.newRunner().Execute(ctx, ds, req)
	spin.Stop()
	if spin.Cancelled() {
		return ctx.Err()
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		base = opts.output
	}
	if err := errors.ValidatePath(base); err != nil {
		return err
	}
	paths, err := writeArtifacts(result.Artifacts, result.Formats(), base)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d files", len(paths)))

	reportResult(req.Action, result)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// reportResult summarizes result on stdout.
func reportResult(action string, result *pipeline.Result) {
	switch {
	case action == pipeline.ActionSearch && !result.Found:
		printWarning("%s", result.Message)
	case action == pipeline.ActionSearch:
		printSuccess("%s", result.Message)
		printDetail("path: %s", strings.Join(result.Path, " → "))
	default:
		printSuccess("%s", result.Title)
	}
	printStats(len(result.Codes), result.Height)
}

func isTextFormat(format string) bool {
	switch format {
	case pipeline.FormatText, pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatSVG:
		return true
	}
	return false
}

// writeArtifacts writes one file per format and returns the paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// completeCodes offers the codes of the selected schedule for shell
// completion. Errors yield no suggestions.
func (c *CLI) completeCodes(ctx context.Context, src sourceOpts, prefix string) []string {
	if err := c.loadConfig(); err != nil {
		return nil
	}
	ds, _, err := c.loadDataset(ctx, src)
	if err != nil {
		return nil
	}
	var out []string
	for _, code := range ds.Codes() {
		if strings.HasPrefix(code, prefix) {
			out = append(out, code)
		}
	}
	return out
}
