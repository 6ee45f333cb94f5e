package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flighttree/pkg/buildinfo"
	"github.com/matzehuels/flighttree/pkg/config"
	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/errors"
	"github.com/matzehuels/flighttree/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded configuration.
func (c *CLI) Config() config.Config { return c.cfg }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "flighttree",
		Short: "Flighttree arranges flight codes in a balanced search tree",
		Long: `Flighttree builds a balanced binary search tree from the flight codes of a
schedule (a CSV file with a Kode column) and draws it: the plain structure,
the in-order traversal, or the path a search takes to a code.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $"+config.EnvPath+")")

	// Register all subcommands
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.inorderCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.codesCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.datasetCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "backend", cfg.Store.Backend, "min", cfg.Tree.MinCount, "max", cfg.Tree.MaxCount)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Text output is styled
// only when stdout is a terminal.
func (c *CLI) newRunner() *pipeline.Runner {
	r := pipeline.NewRunner(c.Logger, c.limits())
	if isatty.IsTerminal(os.Stdout.Fd()) {
		r.Text = lipgloss.NewRenderer(os.Stdout)
	}
	return r
}

// positiveCount rejects a --count given explicitly as zero or less. An
// unset flag falls back to the configured default.
func positiveCount(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("count") {
		return nil
	}
	n, err := cmd.Flags().GetInt("count")
	if err != nil {
		return err
	}
	if n <= 0 {
		return errors.New(errors.ErrCodeInvalidCount, "--count must be a positive integer, got %d", n)
	}
	return nil
}

func (c *CLI) limits() pipeline.Limits {
	t := c.cfg.Tree
	return pipeline.Limits{
		MinCount:     t.MinCount,
		MaxCount:     t.MaxCount,
		DefaultCount: t.DefaultCount,
		Spread:       t.Spread,
	}
}

// openStore opens the configured dataset store. The returned function
// releases the backend.
func (c *CLI) openStore(ctx context.Context) (*dataset.Store, func(), error) {
	store, backend, err := c.cfg.Store.OpenStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := backend.Close(); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}, nil
}

// =============================================================================
// Dataset Selection
// =============================================================================

// sourceOpts selects the schedule a command works on: a CSV file, a stored
// dataset, or the bundled sample when neither is given.
type sourceOpts struct {
	file    string
	dataset string
}

func (o *sourceOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "CSV schedule with a Kode column")
	cmd.Flags().StringVarP(&o.dataset, "dataset", "d", "", "ID of a stored dataset")
	cmd.MarkFlagsMutuallyExclusive("file", "dataset")
}

// loadDataset resolves o to a dataset and a display name for it.
func (c *CLI) loadDataset(ctx context.Context, o sourceOpts) (*dataset.Dataset, string, error) {
	switch {
	case o.file != "":
		ds, err := dataset.LoadFile(o.file)
		return ds, o.file, err
	case o.dataset != "":
		store, release, err := c.openStore(ctx)
		if err != nil {
			return nil, "", err
		}
		defer release()
		ds, err := store.Get(ctx, o.dataset)
		return ds, o.dataset, err
	default:
		ds, err := dataset.Sample(c.cfg.Sample.Path)
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			return nil, "", errors.Wrap(errors.ErrCodeNoInput, err, "no schedule given: pass --file or --dataset")
		}
		return ds, dataset.SampleName, err
	}
}
