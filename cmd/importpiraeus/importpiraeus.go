// Package importpiraeus contains the command importing a Piraeus Bank
// transaction export.
package importpiraeus

import (
	"context"
	"fmt"
	"io"

	"fjacquet/firefly-importer/cmd/root"
	"fjacquet/firefly-importer/internal/container"
	"fjacquet/firefly-importer/internal/importer"

	"github.com/spf13/cobra"
)

// Flags of the import-piraeus-data command.
var (
	DryRun     bool
	OutputFile string
)

// Cmd is the import-piraeus-data command
var Cmd = &cobra.Command{
	Use:   "import-piraeus-data <data-file>",
	Short: "Prepare Firefly III transactions from a Piraeus Bank export.",
	Long: `Reads a tab-separated Piraeus Bank transaction export, resolves each
product number to a Firefly III account and prepares deposits, withdrawals
and transfers. Paired redistribution rows become a single transfer.

Use --output to write the prepared transactions to a .csv or .yaml file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		opts := importer.Options{
			DataFile:   args[0],
			OutputFile: OutputFile,
			DryRun:     DryRun,
		}
		return Run(cmd.Context(), c, opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().BoolVar(&DryRun, "dry-run", false, "Prepare transactions without submitting them")
	Cmd.Flags().StringVarP(&OutputFile, "output", "o", "", "Write prepared transactions to a .csv or .yaml file")
}

// Run performs one import and prints a summary line to out.
func Run(ctx context.Context, c *container.Container, opts importer.Options, out io.Writer) error {
	if err := c.GetConfig().RequireFirefly(); err != nil {
		return err
	}

	result, err := c.NewImporter().Run(ctx, opts)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Run %s: %d data rows, %d transactions prepared, %d skipped, %d unmatched\n",
		result.RunID, result.DataRows, len(result.Transactions), result.Skipped, result.Unmatched)
	return err
}
