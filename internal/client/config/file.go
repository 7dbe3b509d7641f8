package config

import (
	"github.com/dmitrijs2005/projectdesk/internal/flagx"
	"github.com/spf13/viper"
)

const envPrefix = "PROJECTDESK"

const (
	keyServerURL           = "server_url"
	keyDatabasePath        = "database_path"
	keyRequestTimeout      = "request_timeout"
	keyOnlineCheckInterval = "online_check_interval"
	keyLogLevel            = "log_level"
	keyLogFormat           = "log_format"
)

// parseFile overlays cfg with values from the file named by -c/-config.
// Panics on read or decode errors, like the other loaders.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}

	overlay(v, cfg)
}

// parseEnv overlays cfg with PROJECTDESK_* environment variables.
func parseEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	overlay(v, cfg)
}

// overlay copies every key that v knows about into cfg.
func overlay(v *viper.Viper, cfg *Config) {
	if v.IsSet(keyServerURL) {
		cfg.ServerURL = v.GetString(keyServerURL)
	}
	if v.IsSet(keyDatabasePath) {
		cfg.DatabasePath = v.GetString(keyDatabasePath)
	}
	if v.IsSet(keyRequestTimeout) {
		cfg.RequestTimeout = v.GetDuration(keyRequestTimeout)
	}
	if v.IsSet(keyOnlineCheckInterval) {
		cfg.OnlineCheckInterval = v.GetDuration(keyOnlineCheckInterval)
	}
	if v.IsSet(keyLogLevel) {
		cfg.LogLevel = v.GetString(keyLogLevel)
	}
	if v.IsSet(keyLogFormat) {
		cfg.LogFormat = v.GetString(keyLogFormat)
	}
}
