package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestViperConfigGetString(t *testing.T) {
	v := viper.New()
	v.Set("name", "test")
	cfg := New(v)

	if got := cfg.GetString("name"); got != "test" {
		t.Errorf("GetString('name') = %q, want %q", got, "test")
	}
}

func TestViperConfigGetInt(t *testing.T) {
	v := viper.New()
	v.Set("port", 8080)
	cfg := New(v)

	if got := cfg.GetInt("port"); got != 8080 {
		t.Errorf("GetInt('port') = %d, want %d", got, 8080)
	}
}

func TestViperConfigGetFloat64(t *testing.T) {
	v := viper.New()
	v.Set("rate", 2.5)
	cfg := New(v)

	if got := cfg.GetFloat64("rate"); got != 2.5 {
		t.Errorf("GetFloat64('rate') = %v, want %v", got, 2.5)
	}
}

func TestViperConfigGetBool(t *testing.T) {
	v := viper.New()
	v.Set("enabled", true)
	cfg := New(v)

	if got := cfg.GetBool("enabled"); !got {
		t.Error("GetBool('enabled') = false, want true")
	}
}

func TestViperConfigGetDuration(t *testing.T) {
	v := viper.New()
	v.Set("timeout", "5s")
	cfg := New(v)

	want := 5 * time.Second
	if got := cfg.GetDuration("timeout"); got != want {
		t.Errorf("GetDuration('timeout') = %v, want %v", got, want)
	}
}

func TestViperConfigIsSet(t *testing.T) {
	v := viper.New()
	v.Set("exists", true)
	cfg := New(v)

	if !cfg.IsSet("exists") {
		t.Error("IsSet('exists') = false, want true")
	}
	if cfg.IsSet("missing") {
		t.Error("IsSet('missing') = true, want false")
	}
}

func TestViperConfigSub(t *testing.T) {
	v := viper.New()
	v.Set("server.host", "127.0.0.1")
	v.Set("server.port", 9090)
	cfg := New(v)

	sub := cfg.Sub("server")
	if sub == nil {
		t.Fatal("Sub('server') = nil")
	}
	if got := sub.GetString("host"); got != "127.0.0.1" {
		t.Errorf("sub.GetString('host') = %q, want %q", got, "127.0.0.1")
	}
	if got := sub.GetInt("port"); got != 9090 {
		t.Errorf("sub.GetInt('port') = %d, want %d", got, 9090)
	}
}

func TestViperConfigSubMissing(t *testing.T) {
	v := viper.New()
	cfg := New(v)

	sub := cfg.Sub("nonexistent")
	if sub == nil {
		t.Fatal("Sub('nonexistent') should return empty Config, not nil")
	}
	// Should return zero values without panic.
	if got := sub.GetString("anything"); got != "" {
		t.Errorf("empty config GetString() = %q, want empty", got)
	}
}

func TestViperConfigUnmarshal(t *testing.T) {
	v := viper.New()
	v.Set("host", "localhost")
	v.Set("port", 9090)
	cfg := New(v)

	var target struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	}
	if err := cfg.Unmarshal(&target); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if target.Host != "localhost" {
		t.Errorf("Host = %q, want %q", target.Host, "localhost")
	}
	if target.Port != 9090 {
		t.Errorf("Port = %d, want %d", target.Port, 9090)
	}
}

func TestNilViper(t *testing.T) {
	cfg := New(nil)
	// Should not panic and return zero values.
	if got := cfg.GetString("key"); got != "" {
		t.Errorf("nil viper GetString() = %q, want empty", got)
	}
	if cfg.GetDuration("key") != 0 {
		t.Error("nil viper GetDuration() != 0")
	}
	if cfg.Sub("key") == nil {
		t.Error("nil viper Sub() = nil, want empty Config")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.GetInt("server.port"); got != 8080 {
		t.Errorf("server.port = %d, want 8080", got)
	}
	if got := cfg.GetString("server.host"); got != "0.0.0.0" {
		t.Errorf("server.host = %q, want 0.0.0.0", got)
	}
	if got := cfg.GetString("data.file"); got != "data/items.json" {
		t.Errorf("data.file = %q, want data/items.json", got)
	}
	if got := cfg.GetDuration("stats.cache_ttl"); got != 5*time.Minute {
		t.Errorf("stats.cache_ttl = %v, want 5m", got)
	}
	if !cfg.GetBool("watch.enabled") {
		t.Error("watch.enabled = false, want true by default")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogd.yaml")
	content := "server:\n  port: 9090\nstats:\n  cache_ttl: 30s\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}

	if got := cfg.GetInt("server.port"); got != 9090 {
		t.Errorf("server.port = %d, want 9090 from the file", got)
	}
	if got := cfg.GetDuration("stats.cache_ttl"); got != 30*time.Second {
		t.Errorf("stats.cache_ttl = %v, want 30s from the file", got)
	}
	// Values the file does not mention keep their defaults.
	if got := cfg.GetString("data.file"); got != "data/items.json" {
		t.Errorf("data.file = %q, want the default", got)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() error = nil, want an error for an explicit missing file")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CATALOGD_SERVER_PORT", "9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.GetInt("server.port"); got != 9999 {
		t.Errorf("server.port = %d, want 9999 from the environment", got)
	}
}
