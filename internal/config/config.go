// Package config holds runtime settings for the campusevents CLI.
package config

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDSN: path of the local SQLite file holding the persisted
//     records (accounts, session, events).
type Config struct {
	DatabaseDSN string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "campus.db"
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
