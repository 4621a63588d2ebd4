package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds settings shared by all commands. Values come from, in
// increasing precedence: defaults, querydsl.yaml, QUERYDSL_* environment
// variables and command-line flags.
type Config struct {
	DB     string `mapstructure:"db"`
	Indent int    `mapstructure:"indent"`
	Format string `mapstructure:"format"`
}

const (
	DefaultDB     = "querydsl.db"
	DefaultFormat = "text"
	configName    = "querydsl"
	envPrefix     = "QUERYDSL"
)

// configKeys are bound to flags of the same name when the command has them.
var configKeys = []string{"db", "indent", "format"}

// LoadConfig resolves the configuration for cmd. An explicit path must
// exist; otherwise querydsl.yaml in the working directory is optional.
func LoadConfig(cmd *cobra.Command, path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db", DefaultDB)
	v.SetDefault("indent", 0)
	v.SetDefault("format", DefaultFormat)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if cmd != nil {
		for _, key := range configKeys {
			if flag := cmd.Flags().Lookup(key); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", key, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if !isValidFormat(cfg.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", cfg.Format, ValidFormats)
	}
	if cfg.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", cfg.Indent)
	}
	if cfg.DB == "" {
		return fmt.Errorf("db must not be empty")
	}
	return nil
}
