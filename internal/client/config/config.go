// Package config loads runtime settings for the hirehub CLI.
package config

import "time"

// Config holds runtime settings for the hirehub CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, e.g. "http://localhost/api".
//   - LoginTimeout: client-side bound on the login round trip.
//   - TokenDBPath: path of the local database keeping the session token.
type Config struct {
	APIBaseURL   string
	LoginTimeout time.Duration
	TokenDBPath  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost/api"
	c.LoginTimeout = 5 * time.Second
	c.TokenDBPath = "hirehub.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
