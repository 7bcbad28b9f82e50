// Package config assembles the client's runtime settings from defaults,
// environment variables, an optional JSON file, and command-line flags.
// Later sources take precedence over earlier ones.
package config

import "time"

// Config holds runtime settings for the GoBarber CLI.
//
// Fields:
//   - APIBaseURL: root of the backend REST API.
//   - DatabasePath: sqlite file holding the persisted session.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	APIBaseURL     string        `env:"GOBARBER_API_URL"`
	DatabasePath   string        `env:"GOBARBER_DB_PATH"`
	RequestTimeout time.Duration `env:"GOBARBER_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3333"
	c.DatabasePath = "gobarber.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if given via -c/-config), and flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
