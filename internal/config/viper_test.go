package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	isolateEnv(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "", config.Firefly.URL)
	assert.Equal(t, "", config.Firefly.Token)
	assert.Equal(t, 30, config.Firefly.TimeoutSeconds)
	assert.Equal(t, 30*time.Second, config.Firefly.Timeout())
	assert.Equal(t, ",", config.Export.Delimiter)
	assert.Equal(t, ',', config.Export.DelimiterRune())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolateEnv(t)

	t.Setenv("FIREFLY_IMPORTER_LOG_FORMAT", "json")
	t.Setenv("FIREFLY_IMPORTER_FIREFLY_TIMEOUT_SECONDS", "5")
	t.Setenv("FIREFLY_IMPORTER_EXPORT_DELIMITER", ";")
	t.Setenv("FIREFLY_URL", "https://firefly.example.com")
	t.Setenv("FIREFLY_TOKEN", "secret")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 5, config.Firefly.TimeoutSeconds)
	assert.Equal(t, ";", config.Export.Delimiter)
	assert.Equal(t, "https://firefly.example.com", config.Firefly.URL)
	assert.Equal(t, "secret", config.Firefly.Token)
}

func TestInitializeConfig_PrefixedURLWinsOverPlain(t *testing.T) {
	isolateEnv(t)

	t.Setenv("FIREFLY_IMPORTER_FIREFLY_URL", "https://prefixed.example.com")
	t.Setenv("FIREFLY_URL", "https://plain.example.com")

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://prefixed.example.com", config.Firefly.URL)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	isolateEnv(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
  format: "json"
firefly:
  url: "https://file.example.com"
  timeout_seconds: 12
export:
  delimiter: "|"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "https://file.example.com", config.Firefly.URL)
	assert.Equal(t, 12, config.Firefly.TimeoutSeconds)
	assert.Equal(t, "|", config.Export.Delimiter)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	isolateEnv(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
firefly:
  url: "https://file.example.com"
export:
  delimiter: "|"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))
	chdir(t, tempDir)

	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("FIREFLY_URL", "https://env.example.com")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "https://env.example.com", config.Firefly.URL)
	assert.Equal(t, "|", config.Export.Delimiter)
}

func TestInitializeConfig_InvalidFileFails(t *testing.T) {
	isolateEnv(t)

	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte("log: [unclosed"), 0600))
	chdir(t, tempDir)

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_ExplicitOverride(t *testing.T) {
	isolateEnv(t)

	v, err := NewViper()
	require.NoError(t, err)
	v.Set(KeyFireflyToken, "from-flag")

	config, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", config.Firefly.Token)
}

func TestNewViper_BindsPlainEnvNames(t *testing.T) {
	isolateEnv(t)
	t.Setenv(EnvURL, "https://plain.example.com")
	t.Setenv(EnvToken, "plain-token")
	t.Setenv(EnvLogLevel, "debug")

	v, err := NewViper()
	require.NoError(t, err)
	assert.Equal(t, "https://plain.example.com", v.GetString(KeyFireflyURL))
	assert.Equal(t, "plain-token", v.GetString(KeyFireflyToken))
	assert.Equal(t, "debug", v.GetString(KeyLogLevel))
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "zero timeout",
			modifyConfig: func(c *Config) { c.Firefly.TimeoutSeconds = 0 },
			expectError:  "firefly.timeout_seconds must be positive",
		},
		{
			name:         "multi character delimiter",
			modifyConfig: func(c *Config) { c.Export.Delimiter = "ab" },
			expectError:  "export delimiter must be a single character",
		},
		{
			name:         "empty delimiter",
			modifyConfig: func(c *Config) { c.Export.Delimiter = "" },
			expectError:  "export delimiter must be a single character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	config := validConfig()
	config.Export.Delimiter = "\t"
	assert.NoError(t, validateConfig(config))
	assert.Equal(t, '\t', config.Export.DelimiterRune())
}

func TestRequireFirefly(t *testing.T) {
	config := validConfig()
	err := config.RequireFirefly()
	require.ErrorIs(t, err, ErrFireflyNotConfigured)
	assert.Contains(t, err.Error(), "url, token")

	config.Firefly.URL = "https://firefly.example.com"
	err = config.RequireFirefly()
	require.ErrorIs(t, err, ErrFireflyNotConfigured)
	assert.Contains(t, err.Error(), "missing token")

	config.Firefly.Token = "secret"
	assert.NoError(t, config.RequireFirefly())
}

func TestLoadEnv(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".env"),
		[]byte("FIREFLY_IMPORTER_TEST_MARKER=loaded\n"), 0600))
	chdir(t, tempDir)
	t.Cleanup(func() { _ = os.Unsetenv("FIREFLY_IMPORTER_TEST_MARKER") })

	assert.Equal(t, ".env", LoadEnv())
	assert.Equal(t, "loaded", os.Getenv("FIREFLY_IMPORTER_TEST_MARKER"))
}

func TestLoadEnv_NoFile(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "nested")
	require.NoError(t, os.Mkdir(tempDir, 0750))
	chdir(t, tempDir)

	assert.Equal(t, "", LoadEnv())
}

func validConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Format: "text"},
		Firefly: FireflyConfig{TimeoutSeconds: 30},
		Export:  ExportConfig{Delimiter: ","},
	}
}

// isolateEnv blanks every variable the loader reads and points HOME at an
// empty directory so no user config file is picked up.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	for _, key := range []string{
		"FIREFLY_IMPORTER_LOG_LEVEL",
		"FIREFLY_IMPORTER_LOG_FORMAT",
		"FIREFLY_IMPORTER_FIREFLY_URL",
		"FIREFLY_IMPORTER_FIREFLY_TOKEN",
		"FIREFLY_IMPORTER_FIREFLY_TIMEOUT_SECONDS",
		"FIREFLY_IMPORTER_EXPORT_DELIMITER",
		EnvURL,
		EnvToken,
		EnvLogLevel,
	} {
		t.Setenv(key, "")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if filepath.IsAbs(dir) {
		t.Setenv("PWD", dir)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testing: chdir: " + err.Error())
		}
	})
}
