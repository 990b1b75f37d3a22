package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Quiz struct {
		TimePerQuestion string `yaml:"time_per_question"` // duration, default 30s
		PassingScore    int    `yaml:"passing_score"`     // percent, default 70
	} `yaml:"quiz"`
	Storage struct {
		Backend string `yaml:"backend"` // file (default), redis, memory
		Dir     string `yaml:"dir"`     // file backend data directory
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Bank struct {
		Source string `yaml:"source"` // static (default), file, postgres
		Path   string `yaml:"path"`   // YAML bank file for the file source
		ID     string `yaml:"id"`     // bank id, default dental-care
		TTL    string `yaml:"ttl"`    // cache TTL for non-static sources
	} `yaml:"bank"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// Load reads YAML config from path. A missing file is not an error; the
// app runs fine on defaults alone.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
