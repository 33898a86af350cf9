// Package config loads server configuration from flags, environment
// variables (CARIOCA_ prefix) and an optional carioca.yaml file, in that
// order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config carries everything the server needs at startup.
type Config struct {
	Addr      string
	BotDelay  time.Duration
	MatchSize int
	LogLevel  string
}

// Load resolves the configuration, binding the given flag set (may be nil)
// over env vars over file over defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("bot_delay", 1500*time.Millisecond)
	v.SetDefault("match_size", 1)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("CARIOCA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("carioca")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// The config file is optional; anything but "not found" is a real error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	cfg := &Config{
		Addr:      v.GetString("addr"),
		BotDelay:  v.GetDuration("bot_delay"),
		MatchSize: v.GetInt("match_size"),
		LogLevel:  v.GetString("log_level"),
	}
	if cfg.MatchSize < 1 || cfg.MatchSize > 4 {
		return nil, fmt.Errorf("match_size must be between 1 and 4, got %d", cfg.MatchSize)
	}
	return cfg, nil
}
