package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/errors"
)

// datasetCommand manages stored schedules.
func (c *CLI) datasetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dataset",
		Aliases: []string{"ds"},
		Short:   "Manage stored flight schedules",
	}

	cmd.AddCommand(c.datasetAddCommand())
	cmd.AddCommand(c.datasetListCommand())
	cmd.AddCommand(c.datasetRemoveCommand())

	return cmd
}

func (c *CLI) datasetAddCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add <file.csv>",
		Short: "Validate a CSV schedule and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return errors.Wrap(errors.ErrCodeFileNotFound, err, "schedule %q not found", args[0])
				}
				return err
			}
			if name == "" {
				name = filepath.Base(args[0])
			}

			store, release, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			info, _, err := store.Put(cmd.Context(), name, raw)
			if err != nil {
				return err
			}
			printSuccess("Stored %s", name)
			printKeyValue("ID", info.ID)
			printKeyValue("Codes", strconv.Itoa(info.Codes))
			printNextStep("Draw it", "flighttree tree -d "+info.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (default file name)")
	return cmd
}

func (c *CLI) datasetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored schedules",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			infos, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("No stored schedules")
				printNextStep("Add one", "flighttree dataset add schedule.csv")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), datasetTable(infos))
			return nil
		},
	}
}

func datasetTable(infos []dataset.Info) string {
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{
			info.ID,
			info.Name,
			strconv.Itoa(info.Codes),
			info.Created.Local().Format("2006-01-02 15:04"),
		}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Codes", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func (c *CLI) datasetRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Delete stored schedules",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			for _, id := range args {
				if err := store.Delete(cmd.Context(), id); err != nil {
					return err
				}
				printSuccess("Deleted %s", id)
			}
			return nil
		},
	}
}
