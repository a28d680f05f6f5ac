// Package config holds runtime settings for the Paperback CLI, layered the
// usual way: defaults, then JSON file, then command-line flags, with later
// sources taking precedence.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - DataDir: directory of the file-backed store.
//   - RedisAddr: when non-empty, collections persist in Redis instead of files.
//   - RedisPassword: password for RedisAddr.
//   - TokenSecret: HMAC key for session/refresh token bundles. Tokens are
//     local capability markers, so the secret only has to be stable per
//     install, not shared with anything.
//   - SessionTTL / RefreshTTL: token lifetimes.
type Config struct {
	DataDir       string
	RedisAddr     string
	RedisPassword string
	TokenSecret   string
	SessionTTL    time.Duration
	RefreshTTL    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "paperback-data"
	c.RedisAddr = ""
	c.RedisPassword = ""
	c.TokenSecret = "paperback-local"
	c.SessionTTL = time.Hour
	c.RefreshTTL = 7 * 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
