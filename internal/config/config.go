package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-filemeta/internal/fileanalyzer"
)

// Config holds the application configuration
type Config struct {
	// Extraction settings
	Mode string `mapstructure:"mode"` // basic, specialized, both; empty means prompt

	// Batch settings
	Output  string `mapstructure:"output"`
	Format  string `mapstructure:"format"`
	Workers int    `mapstructure:"workers"`
	Hash    bool   `mapstructure:"hash"`

	// Logging settings
	Verbose bool   `mapstructure:"verbose"`
	NoColor bool   `mapstructure:"no_color"`
	LogFile string `mapstructure:"log_file"`
}

var validFormats = []string{"json", "plist"}

// flagKeys maps command line flag names to configuration keys
var flagKeys = map[string]string{
	"mode":     "mode",
	"output":   "output",
	"format":   "format",
	"workers":  "workers",
	"hash":     "hash",
	"verbose":  "verbose",
	"no-color": "no_color",
	"log-file": "log_file",
}

// Load reads configuration from an optional config file, FILEMETA_* environment
// variables and the given flag set, in increasing order of precedence.
// An empty cfgFile searches for filemeta.yaml in the working directory and in
// $HOME/.config/filemeta.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("mode", "")
	v.SetDefault("format", "json")
	v.SetDefault("workers", 4)
	v.SetDefault("hash", false)
	v.SetDefault("verbose", false)
	v.SetDefault("no_color", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("filemeta")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "filemeta"))
		}
	}

	// Enable environment variable support
	v.SetEnvPrefix("FILEMETA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for unsupported values
func (c *Config) Validate() error {
	if c.Mode != "" {
		if _, err := fileanalyzer.ParseMode(c.Mode); err != nil {
			return fmt.Errorf("invalid mode %q: must be one of basic, specialized, both", c.Mode)
		}
	}
	if !contains(validFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %s", c.Format, strings.Join(validFormats, ", "))
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid worker count %d: must be at least 1", c.Workers)
	}
	return nil
}

// Batch reports whether results go to a report file instead of the terminal
func (c *Config) Batch() bool {
	return c.Output != ""
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
