package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/errors"
)

// codesCommand lists the codes a tree would be built from.
func (c *CLI) codesCommand() *cobra.Command {
	var (
		source sourceOpts
		count  int
		all    bool
	)
	cmd := &cobra.Command{
		Use:     "codes",
		Short:   "List the flight codes of a schedule in sorted order",
		Args:    cobra.NoArgs,
		PreRunE: positiveCount,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, _, err := c.loadDataset(cmd.Context(), source)
			if err != nil {
				return err
			}
			n := ds.Len()
			if !all {
				if count == 0 {
					count = c.cfg.Tree.DefaultCount
				}
				if err := errors.ValidateCount(count, c.cfg.Tree.MinCount, c.cfg.Tree.MaxCount); err != nil {
					return err
				}
				n = count
			}
			w := cmd.OutOrStdout()
			for _, code := range ds.Prefix(n) {
				fmt.Fprintln(w, code)
			}
			return nil
		},
	}
	source.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of codes to list (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "list every code in the schedule")
	return cmd
}

// sampleCommand writes the bundled sample schedule to disk.
func (c *CLI) sampleCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Save the bundled example schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := dataset.ReadSample(c.cfg.Sample.Path)
			if err != nil {
				if errors.IsWarning(err) {
					printWarning("%s", errors.UserMessage(err))
					return nil
				}
				return err
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write sample: %w", err)
			}
			printSuccess("Saved sample schedule")
			printFile(output)
			printNextStep("Build a tree from it", "flighttree tree -f "+output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", dataset.SampleName, "destination file, or - for stdout")
	return cmd
}
