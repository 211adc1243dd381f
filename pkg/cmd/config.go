package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/dkarwin/scour/pkg/api"
)

type appConfig struct {
	API   api.Config  `mapstructure:"api"`
	Users UsersConfig `mapstructure:"users"`
}

// UsersConfig holds configuration for the account store.
type UsersConfig struct {
	Path string `mapstructure:"path"`
}

// loadConfig loads the application configuration from the optional config
// file and environment variables. Flags take precedence over both.
func loadConfig(flags *cmdFlags) (*appConfig, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())

	v.SetDefault("users.path", "scour_users.db")

	if flags.ConfigPath != "" {
		v.SetConfigFile(flags.ConfigPath)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg appConfig

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if flags.portSet {
		cfg.API.Listen = fmt.Sprintf(":%d", flags.Port)
	}

	slog.Debug("Config loaded", slog.Any("config", cfg))

	return &cfg, nil
}
