package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ASHLAR"

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = "ashlar.yaml"

// Load builds the configuration from defaults, an optional YAML file and
// ASHLAR_* environment variables, in increasing precedence. With an empty path
// ./ashlar.yaml is used if present.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so env overrides apply during Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.mode", cfg.Server.Mode)
	v.SetDefault("database.driver", cfg.Database.Driver)
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("uploads.static_dir", cfg.Uploads.StaticDir)
	v.SetDefault("uploads.remove_on_delete", cfg.Uploads.RemoveOnDelete)
	v.SetDefault("uploads.max_memory_mb", cfg.Uploads.MaxMemoryMB)
	v.SetDefault("auth.require_session", cfg.Auth.RequireSession)
	v.SetDefault("auth.session_ttl", cfg.Auth.SessionTTL)
	v.SetDefault("sefaria.base_url", cfg.Sefaria.BaseURL)
	v.SetDefault("sefaria.timeout", cfg.Sefaria.Timeout)
	v.SetDefault("sefaria.calendar", cfg.Sefaria.Calendar)
	v.SetDefault("sefaria.timezone", cfg.Sefaria.Timezone)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("database.driver must be sqlite3 or sqlite, got %q", c.Database.Driver)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Uploads.StaticDir == "" {
		return errors.New("uploads.static_dir is required")
	}
	return nil
}
