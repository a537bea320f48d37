// Configuration loading from various sources
//
// Supports loading from:
// - YAML/JSON files
// - Environment variables
//
// Handles merging of configuration from multiple sources
// with proper precedence rules

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load starts from the `default` struct-tag values, then applies the YAML
// configuration file at path (if it exists), then environment variable
// overrides; each later source wins over the earlier ones. An empty path
// skips the file and loads entirely from defaults and env vars.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	SetDefaults(cfg)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides layers HLSPROXY_-prefixed environment variables on top
// of whatever the YAML file set, for the handful of settings operators
// most commonly need to override per-deployment without editing the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HLSPROXY_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HLSPROXY_ORIGIN_BASE_URL"); v != "" {
		cfg.Origin.BaseURL = v
	}
	if v := os.Getenv("HLSPROXY_JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("HLSPROXY_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("HLSPROXY_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("HLSPROXY_REDIS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Redis.Enabled = b
		}
	}
	if v := os.Getenv("HLSPROXY_CACHE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.Enabled = b
		}
	}
	if v := os.Getenv("HLSPROXY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}
