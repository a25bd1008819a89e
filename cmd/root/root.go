// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/firefly-importer/internal/config"
	"fjacquet/firefly-importer/internal/container"
	"fjacquet/firefly-importer/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags are the persistent flags shared by every command.
type GlobalFlags struct {
	URL      string
	Token    string
	LogLevel string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "firefly-importer",
		Short: "Import bank exports into Firefly III.",
		Long: `firefly-importer reads Piraeus Bank transaction exports, resolves each
product number to a Firefly III account and prepares deposits, withdrawals
and transfers for the ledger.`,
		SilenceUsage:      true,
		PersistentPreRunE: initialize,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Flags holds the values of the persistent flags.
	Flags = GlobalFlags{}

	// AppContainer is built before any subcommand runs.
	AppContainer *container.Container
)

// flagKeys maps persistent flag names to configuration keys.
var flagKeys = map[string]string{
	"url":       config.KeyFireflyURL,
	"token":     config.KeyFireflyToken,
	"log-level": config.KeyLogLevel,
}

func init() {
	Cmd.PersistentFlags().StringVarP(&Flags.URL, "url", "u", "", "Firefly III instance URL (env FIREFLY_URL)")
	Cmd.PersistentFlags().StringVarP(&Flags.Token, "token", "t", "", "Firefly III personal access token (env FIREFLY_TOKEN)")
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
}

// initialize loads the configuration, applying flags over file and
// environment values, and builds AppContainer.
func initialize(cmd *cobra.Command, args []string) error {
	v, err := config.NewViper()
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppContainer = c
	return nil
}

// GetContainer returns the application container. It fails when called
// before the root command initialized it.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return AppContainer, nil
}

// GetLogger returns the container's logger, or a default one when the
// container is not initialized.
func GetLogger() logging.Logger {
	if AppContainer != nil {
		return AppContainer.GetLogger()
	}
	return logging.NewLogrusAdapter("info", "text")
}
