package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"missing addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mongo" }, "database.driver"},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = DriverPostgres }, "database.dsn"},
		{"postgres with dsn", func(c *Config) {
			c.Database.Driver = DriverPostgres
			c.Database.Addrs = nil
			c.Database.DSN = "postgres://localhost/bizdex"
		}, ""},
		{"default above max", func(c *Config) { c.Search.DefaultLimit = 200 }, "search.default_limit"},
		{"negative home radius", func(c *Config) { c.Search.HomeRadiusKm = -1 }, "home_radius_km"},
		{"negative retries", func(c *Config) { c.Resilience.MaxRetries = -1 }, "max_retries"},
		{"failures above window", func(c *Config) { c.Resilience.BreakerFailures = 20 }, "breaker_failures"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != DriverValkey {
		t.Errorf("expected driver valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "bizdex:" {
		t.Errorf("expected KeyPrefix='bizdex:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Search.DefaultLimit != 12 || cfg.Search.MaxLimit != 100 {
		t.Errorf("unexpected search limits %+v", cfg.Search)
	}
	if cfg.Search.FetchTimeout() != 5*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.Search.FetchTimeout())
	}
	if cfg.GeoIP.Timeout() != 10*time.Second || cfg.GeoIP.CacheTTL() != time.Minute {
		t.Errorf("unexpected geoip defaults %+v", cfg.GeoIP)
	}
	if cfg.Resilience.BreakerFailures != 5 || cfg.Resilience.BreakerWindow != 10 {
		t.Errorf("unexpected breaker defaults %+v", cfg.Resilience)
	}
	if cfg.Seed.Enabled {
		t.Error("seeding must default to disabled")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Storage: StorageConfig{KeyPrefix: "custom:"},
		Search:  SearchConfig{DefaultLimit: 20, FetchTimeoutMs: 250},
		GeoIP:   GeoIPConfig{CacheTTLSec: 300},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Search.DefaultLimit != 20 || cfg.Search.FetchTimeout() != 250*time.Millisecond {
		t.Errorf("search overridden: %+v", cfg.Search)
	}
	if cfg.GeoIP.CacheTTL() != 5*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.GeoIP.CacheTTL())
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("BIZDEX_TEST_PORT", "9090")
	path := filepath.Join(t.TempDir(), "test.yaml")
	body := `
http:
  port: ${BIZDEX_TEST_PORT}
database:
  driver: redis
  addrs: ["${BIZDEX_TEST_ADDR:-localhost:6380}"]
search:
  home_radius_km: 200
seed:
  enabled: true
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "localhost:6380" {
		t.Errorf("addrs = %v", cfg.Database.Addrs)
	}
	if cfg.Search.HomeRadiusKm != 200 || !cfg.Seed.Enabled {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("http: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("http:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.yaml"), bad, invalid} {
		if _, err := LoadFile(path); err == nil {
			t.Errorf("%s: expected error", filepath.Base(path))
		}
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if GetEnv() != "local" {
		t.Errorf("GetEnv() = %q", GetEnv())
	}
	t.Setenv("ENV", "prod")
	if GetEnv() != "prod" {
		t.Errorf("GetEnv() = %q", GetEnv())
	}
}
