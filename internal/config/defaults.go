package config

import (
	"os"
	"time"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":5005",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			Path:   "responses.db",
		},
		Uploads: UploadsConfig{
			StaticDir:      "static",
			RemoveOnDelete: true,
			MaxMemoryMB:    32,
		},
		Auth: AuthConfig{
			RequireSession: false,
			SessionTTL:     24 * time.Hour,
		},
		Sefaria: SefariaConfig{
			BaseURL:  "https://www.sefaria.org",
			Timeout:  10 * time.Second,
			Calendar: "sephardi",
			Timezone: "America/Los_Angeles",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// WriteDefault writes a commented default configuration file
func WriteDefault(path string) error {
	content := `# ashlar configuration
# Every key can be overridden with an ASHLAR_ environment variable,
# e.g. ASHLAR_SERVER_ADDR=:8080

server:
  addr: ":5005"
  mode: debug  # debug, release or test

database:
  driver: sqlite3  # "sqlite3" (cgo) or "sqlite" (pure Go)
  path: responses.db

uploads:
  static_dir: static  # attachments go to <static_dir>/uploads
  remove_on_delete: true
  max_memory_mb: 32

auth:
  # Gate note changes behind a login session
  require_session: false
  session_ttl: 24h

sefaria:
  base_url: https://www.sefaria.org
  timeout: 10s
  calendar: sephardi
  timezone: America/Los_Angeles

log:
  level: info  # debug, info, warn, error
  format: text  # text or json
`
	return os.WriteFile(path, []byte(content), 0644)
}
