// Package container wires the importer's dependencies from a loaded
// configuration, so commands receive them through constructors.
package container

import (
	"fmt"

	"fjacquet/firefly-importer/internal/config"
	"fjacquet/firefly-importer/internal/export"
	"fjacquet/firefly-importer/internal/firefly"
	"fjacquet/firefly-importer/internal/importer"
	"fjacquet/firefly-importer/internal/logging"
)

// Container holds the application dependencies. It is immutable after
// creation; fields are reached through getters.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	client   *firefly.Client
	exporter *export.Writer
}

// NewContainer creates a container logging through a logrus adapter built
// from cfg.Log.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger creates a container around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	client := firefly.NewClient(cfg.Firefly.URL, cfg.Firefly.Token,
		firefly.WithTimeout(cfg.Firefly.Timeout()),
		firefly.WithLogger(logger))

	logger.Debug("Container initialized",
		logging.F(logging.FieldURL, client.BaseURL()))

	return &Container{
		logger:   logger,
		config:   cfg,
		client:   client,
		exporter: export.NewWriter(cfg.Export.DelimiterRune(), logger),
	}, nil
}

// NewImporter returns an importer over the Firefly III account directory.
// Every run it performs starts from an empty account cache.
func (c *Container) NewImporter() *importer.Importer {
	return importer.New(c.client, c.exporter, c.logger)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetFireflyClient returns the Firefly III API client.
func (c *Container) GetFireflyClient() *firefly.Client {
	return c.client
}

// GetExporter returns the export file writer.
func (c *Container) GetExporter() *export.Writer {
	return c.exporter
}

// Close releases container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
