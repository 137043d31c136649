package appcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Watchlist struct {
	Capacity  uint    `yaml:"capacity"`
	ErrorRate float64 `yaml:"error_rate"`
}

type Config struct {
	LogLevel             string    `yaml:"log_level"` // "debug"|"info"|"warn"|"error"
	HideSecretsInConsole bool      `yaml:"hide_secrets_in_console"`
	Listen               string    `yaml:"listen"`      // HTTP API bind address
	Workers              int       `yaml:"workers"`     // default parallel workers per batch
	Accelerated          bool      `yaml:"accelerated"` // PRNG fast path by default
	Watchlist            Watchlist `yaml:"watchlist"`
}

// Default is the configuration used when no app.yaml is present.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		Listen:      ":8080",
		Workers:     4,
		Accelerated: true,
		Watchlist:   Watchlist{Capacity: 1_000_000, ErrorRate: 0.001},
	}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open app config %q: %w", path, err)
	}
	defer f.Close()

	c := Default()
	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return nil, fmt.Errorf("decode app yaml %q: %w", path, err)
	}

	// defaults for fields the file zeroed out
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	return c, nil
}
