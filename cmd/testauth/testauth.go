// Package testauth contains the command verifying Firefly III credentials.
package testauth

import (
	"context"
	"fmt"
	"io"

	"fjacquet/firefly-importer/cmd/root"
	"fjacquet/firefly-importer/internal/container"
	"fjacquet/firefly-importer/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd is the test-auth command
var Cmd = &cobra.Command{
	Use:   "test-auth",
	Short: "Check the Firefly III URL and token.",
	Long: `Calls the Firefly III about endpoint with the configured URL and token
and prints the instance version, API version, PHP version and OS.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c, cmd.OutOrStdout())
	},
}

// Run queries the instance through c and writes its details to out.
func Run(ctx context.Context, c *container.Container, out io.Writer) error {
	if err := c.GetConfig().RequireFirefly(); err != nil {
		return err
	}

	client := c.GetFireflyClient()
	info, err := client.About(ctx)
	if err != nil {
		c.GetLogger().WithError(err).Error("Authentication check failed",
			logging.F(logging.FieldURL, client.BaseURL()))
		return fmt.Errorf("authentication against %s failed: %w", client.BaseURL(), err)
	}

	_, err = fmt.Fprintf(out, "Firefly III version: %s\nAPI version: %s\nPHP version: %s\nOS: %s\n",
		info.Version, info.APIVersion, info.PHPVersion, info.OS)
	return err
}
