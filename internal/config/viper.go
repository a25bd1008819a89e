package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Environment variables.
const (
	EnvPrefix   = "FIREFLY_IMPORTER"
	EnvURL      = "FIREFLY_URL"
	EnvToken    = "FIREFLY_TOKEN"
	EnvLogLevel = "LOG_LEVEL"
)

// Configuration keys.
const (
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyFireflyURL     = "firefly.url"
	KeyFireflyToken   = "firefly.token"
	KeyFireflyTimeout = "firefly.timeout_seconds"
	KeyExportDelim    = "export.delimiter"
)

// ErrFireflyNotConfigured is returned by RequireFirefly when the instance URL
// or the access token is missing.
var ErrFireflyNotConfigured = errors.New("firefly III url and token must be configured")

// Config is the complete importer configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Firefly FireflyConfig `mapstructure:"firefly" yaml:"firefly"`
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`
}

// LogConfig selects the log level and the formatter ("text" or "json").
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// FireflyConfig points at the Firefly III instance.
type FireflyConfig struct {
	URL            string `mapstructure:"url" yaml:"url"`
	Token          string `mapstructure:"token" yaml:"-"` // Never serialize the token
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns the HTTP client timeout.
func (f FireflyConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// ExportConfig controls the prepared-transactions export file.
type ExportConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// DelimiterRune returns the CSV delimiter as a rune.
func (e ExportConfig) DelimiterRune() rune {
	if e.Delimiter == "" {
		return ','
	}
	return []rune(e.Delimiter)[0]
}

// InitializeConfig loads the configuration without command line flags.
func InitializeConfig() (*Config, error) {
	v, err := NewViper()
	if err != nil {
		return nil, err
	}
	return Load(v)
}

// NewViper returns a viper instance with defaults, config file locations and
// environment bindings set. Callers may bind flags on it before Load.
func NewViper() (*viper.Viper, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.firefly-importer")
	v.AddConfigPath(".firefly-importer")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Prefixed names win over the plain ones.
	bindings := []struct {
		key   string
		plain string
	}{
		{KeyFireflyURL, EnvURL},
		{KeyFireflyToken, EnvToken},
		{KeyLogLevel, EnvLogLevel},
	}
	for _, b := range bindings {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(b.key, ".", "_"))
		if err := v.BindEnv(b.key, prefixed, b.plain); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", b.plain, err)
		}
	}

	return v, nil
}

// Load reads the optional config file into v, unmarshals and validates.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetDefault(KeyFireflyURL, "")
	v.SetDefault(KeyFireflyToken, "")
	v.SetDefault(KeyFireflyTimeout, 30)

	v.SetDefault(KeyExportDelim, ",")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Firefly.TimeoutSeconds < 1 {
		return fmt.Errorf("firefly.timeout_seconds must be positive, got: %d", config.Firefly.TimeoutSeconds)
	}

	if len([]rune(config.Export.Delimiter)) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %q", config.Export.Delimiter)
	}

	return nil
}

// RequireFirefly checks that the instance URL and token are set.
func (c *Config) RequireFirefly() error {
	var missing []string
	if strings.TrimSpace(c.Firefly.URL) == "" {
		missing = append(missing, "url")
	}
	if strings.TrimSpace(c.Firefly.Token) == "" {
		missing = append(missing, "token")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrFireflyNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}
