package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	MaxDepth      int           `toml:"max_depth"`
	Paths         []string      `toml:"paths"`
	Exclude       Exclude       `toml:"exclude"`
	Watch         Watch         `toml:"watch"`
	Output        Output        `toml:"output"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// Rescan rate limiting: tokens per second and burst.
	RescanRate  float64 `toml:"rescan_rate"`
	RescanBurst int     `toml:"rescan_burst"`
}

type Output struct {
	TSV   string `toml:"tsv"`
	SARIF string `toml:"sarif"`
}

type History struct {
	Path string `toml:"path"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		MaxDepth: 2,
		Paths:    []string{"."},
		Exclude: Exclude{
			Dirs:  []string{"node_modules", ".git", "dist", "build"},
			Files: []string{"*.min.js"},
		},
		Watch: Watch{
			Debounce:    500 * time.Millisecond,
			RescanRate:  2,
			RescanBurst: 1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Decoding into the defaults keeps max_depth = 0 distinguishable from
	// an absent key.
	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", c.MaxDepth)
	}
	if len(c.Paths) == 0 {
		c.Paths = []string{"."}
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Watch.RescanRate <= 0 {
		c.Watch.RescanRate = 2
	}
	if c.Watch.RescanBurst <= 0 {
		c.Watch.RescanBurst = 1
	}
	return nil
}
