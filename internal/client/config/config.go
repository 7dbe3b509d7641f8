package config

import "time"

// Config holds runtime settings for the projectdesk CLI.
//
// Fields:
//   - ServerURL: base URL of the project registry REST backend.
//   - DatabasePath: SQLite file holding the persisted session.
//   - RequestTimeout: per-request timeout; 0 means none is enforced.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - LogLevel / LogFormat: see logging.New.
type Config struct {
	ServerURL           string
	DatabasePath        string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.DatabasePath = "projectdesk.db"
	c.RequestTimeout = 0
	c.OnlineCheckInterval = 5 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given), PROJECTDESK_* environment variables and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
