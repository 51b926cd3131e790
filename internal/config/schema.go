package config

import "time"

// Config is the full application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Uploads  UploadsConfig  `yaml:"uploads" mapstructure:"uploads"`
	Auth     AuthConfig     `yaml:"auth" mapstructure:"auth"`
	Sefaria  SefariaConfig  `yaml:"sefaria" mapstructure:"sefaria"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
	// Mode is the gin mode: debug, release or test
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// DatabaseConfig selects the SQLite driver and file
type DatabaseConfig struct {
	// Driver is "sqlite3" (cgo) or "sqlite" (pure Go)
	Driver string `yaml:"driver" mapstructure:"driver"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// UploadsConfig configures attachment storage
type UploadsConfig struct {
	StaticDir      string `yaml:"static_dir" mapstructure:"static_dir"`
	RemoveOnDelete bool   `yaml:"remove_on_delete" mapstructure:"remove_on_delete"`
	MaxMemoryMB    int64  `yaml:"max_memory_mb" mapstructure:"max_memory_mb"`
}

// AuthConfig configures login sessions
type AuthConfig struct {
	RequireSession bool          `yaml:"require_session" mapstructure:"require_session"`
	SessionTTL     time.Duration `yaml:"session_ttl" mapstructure:"session_ttl"`
}

// SefariaConfig configures the religious-texts API client
type SefariaConfig struct {
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Calendar string        `yaml:"calendar" mapstructure:"calendar"`
	Timezone string        `yaml:"timezone" mapstructure:"timezone"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}
