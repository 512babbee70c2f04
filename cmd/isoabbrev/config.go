package main

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the file locations and settings of a run.
// Priority: flags > ENV > YAML > defaults (via env-default tags).
type Config struct {
	LTWA       string `yaml:"ltwa" env:"ISOABBREV_LTWA" env-default:"LTWA_20170914-modified.csv"`
	ShortWords string `yaml:"shortwords" env:"ISOABBREV_SHORTWORDS"`
	Journals   string `yaml:"journals" env:"ISOABBREV_JOURNALS"`
	LongOut    string `yaml:"long" env:"ISOABBREV_LONG" env-default:"journalLong.bib"`
	ShortOut   string `yaml:"short" env:"ISOABBREV_SHORT" env-default:"journalShort.bib"`
	Languages  string `yaml:"languages" env:"ISOABBREV_LANG"`
	Workers    int    `yaml:"workers" env:"ISOABBREV_WORKERS" env-default:"0"`
}

// loadConfig reads configuration from a YAML file and environment variables.
// The YAML file path is taken from path, else from ISOABBREV_CONFIG. Without
// a file, configuration is loaded from ENV + defaults only.
func loadConfig(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		path = os.Getenv("ISOABBREV_CONFIG")
	}
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings which cannot be fixed by defaults.
func (c *Config) Validate() error {
	if c.LTWA == "" {
		return fmt.Errorf("no LTWA table configured")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, is %d", c.Workers)
	}
	if c.Journals != "" && (c.LongOut == "" || c.ShortOut == "") {
		return fmt.Errorf("journal list given without output files")
	}
	return nil
}
