package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flighttree/pkg/config"
	"github.com/matzehuels/flighttree/pkg/errors"
)

// storeCommand inspects and clears the dataset store.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the dataset store",
	}

	cmd.AddCommand(c.storeClearCommand())
	cmd.AddCommand(c.storePathCommand())

	return cmd
}

// storeClearCommand creates the "store clear" subcommand.
func (c *CLI) storeClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, release, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer release()

			infos, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("Store is empty")
				return nil
			}

			count := 0
			for _, info := range infos {
				if err := store.Delete(ctx, info.ID); err != nil {
					if errors.Is(err, errors.ErrCodeDatasetNotFound) {
						continue
					}
					return err
				}
				count++
			}
			printSuccess("Cleared %d stored schedules", count)
			printDetail("Backend: %s", c.cfg.Store.Backend)
			return nil
		},
	}
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the file backend keeps schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Store.Backend != config.BackendFile {
				return errors.New(errors.ErrCodeUnsupported, "store backend %q has no directory", c.cfg.Store.Backend)
			}
			dir, err := c.cfg.Store.DatasetDir()
			if err != nil {
				return fmt.Errorf("get dataset dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
