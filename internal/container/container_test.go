package container

import (
	"testing"
	"time"

	"fjacquet/firefly-importer/internal/config"
	"fjacquet/firefly-importer/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Log: config.LogConfig{Level: "info", Format: "text"},
		Firefly: config.FireflyConfig{
			URL:            "https://firefly.example.com/",
			Token:          "secret",
			TimeoutSeconds: 10,
		},
		Export: config.ExportConfig{Delimiter: ";"},
	}
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config",
			config: testConfig(),
		},
		{
			name:   "json logging",
			config: func() *config.Config {
				cfg := testConfig()
				cfg.Log = config.LogConfig{Level: "debug", Format: "json"}
				return cfg
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainerWithLogger_NilLogger(t *testing.T) {
	_, err := NewContainerWithLogger(testConfig(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger cannot be nil")
}

func TestContainer_Wiring(t *testing.T) {
	mockLog := logging.NewMockLogger()
	cfg := testConfig()

	c, err := NewContainerWithLogger(cfg, mockLog)
	require.NoError(t, err)

	assert.Same(t, cfg, c.GetConfig())
	assert.Same(t, mockLog, c.GetLogger())
	assert.Equal(t, "https://firefly.example.com", c.GetFireflyClient().BaseURL())
	assert.Equal(t, 10*time.Second, cfg.Firefly.Timeout())
	assert.NotNil(t, c.GetExporter())

	first := c.NewImporter()
	second := c.NewImporter()
	assert.NotNil(t, first)
	assert.NotSame(t, first, second)

	assert.True(t, mockLog.HasEntry("DEBUG", "Container initialized"))
}
