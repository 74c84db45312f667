// Package config wraps viper with nil-safe accessors and the catalogd
// defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is a nil-safe view over a viper instance. Getters on a Config with
// no backing viper return zero values instead of panicking, which keeps
// optional config sections easy to consume.
type Config struct {
	v *viper.Viper
}

// New wraps an existing viper instance, which may be nil.
func New(v *viper.Viper) *Config {
	return &Config{v: v}
}

// Load reads the catalogd configuration. An explicit path must exist. With
// no path, catalogd.yaml is looked up in the working directory and
// /etc/catalogd, and a missing file just means defaults plus environment.
// Environment variables use the CATALOGD_ prefix with underscores for dots,
// so CATALOGD_SERVER_PORT overrides server.port.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CATALOGD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return New(v), nil
	}

	v.SetConfigName("catalogd")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/catalogd")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return New(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 0.0)
	v.SetDefault("server.rate_burst", 0)
	v.SetDefault("data.file", "data/items.json")
	v.SetDefault("stats.cache_ttl", "5m")
	v.SetDefault("watch.enabled", true)
}

// GetString returns the string at key.
func (c *Config) GetString(key string) string {
	if c == nil || c.v == nil {
		return ""
	}
	return c.v.GetString(key)
}

// GetInt returns the int at key.
func (c *Config) GetInt(key string) int {
	if c == nil || c.v == nil {
		return 0
	}
	return c.v.GetInt(key)
}

// GetFloat64 returns the float at key.
func (c *Config) GetFloat64(key string) float64 {
	if c == nil || c.v == nil {
		return 0
	}
	return c.v.GetFloat64(key)
}

// GetBool returns the bool at key.
func (c *Config) GetBool(key string) bool {
	if c == nil || c.v == nil {
		return false
	}
	return c.v.GetBool(key)
}

// GetDuration returns the duration at key.
func (c *Config) GetDuration(key string) time.Duration {
	if c == nil || c.v == nil {
		return 0
	}
	return c.v.GetDuration(key)
}

// IsSet reports whether key has a value.
func (c *Config) IsSet(key string) bool {
	if c == nil || c.v == nil {
		return false
	}
	return c.v.IsSet(key)
}

// Sub returns the subtree at key. A missing subtree yields an empty Config,
// never nil.
func (c *Config) Sub(key string) *Config {
	if c == nil || c.v == nil {
		return &Config{}
	}
	return &Config{v: c.v.Sub(key)}
}

// Unmarshal decodes the configuration into target.
func (c *Config) Unmarshal(target any) error {
	if c == nil || c.v == nil {
		return nil
	}
	return c.v.Unmarshal(target)
}
