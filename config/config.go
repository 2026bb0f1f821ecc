package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Checkout struct {
		// How long the completed order number stays on screen before
		// the cart clears.
		ResetDelayMS int `yaml:"reset_delay_ms"`
	} `yaml:"checkout"`
	Session struct {
		MaxIdleMinutes int `yaml:"max_idle_minutes"`
	} `yaml:"session"`
}

// Load reads the YAML config file if it exists, applies defaults for
// anything unset, then lets environment variables override.
func Load(path string) (*Config, error) {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.Database.Path = "cafe_pos.db"
	cfg.Checkout.ResetDelayMS = 2000
	cfg.Session.MaxIdleMinutes = 120

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.Mode = getEnv("GIN_MODE", cfg.Server.Mode)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	return &cfg, nil
}

func (c *Config) ResetDelay() time.Duration {
	return time.Duration(c.Checkout.ResetDelayMS) * time.Millisecond
}

func (c *Config) SessionMaxIdle() time.Duration {
	return time.Duration(c.Session.MaxIdleMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
