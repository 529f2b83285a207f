package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "3")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("STATS_CACHE_TTL_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("JWTExpiry = %v", cfg.JWTExpiry)
	}
	if cfg.MaxUploadBytes != 3<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %q", cfg.AllowedOrigins)
	}
	if cfg.StatsCacheTTL != time.Minute {
		t.Errorf("StatsCacheTTL = %v, want fallback", cfg.StatsCacheTTL)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			GinMode:        "release",
			JWTSecret:      "a-long-enough-production-secret",
			BcryptCost:     10,
			MaxUploadBytes: 1 << 20,
			MaxDBConns:     8,
			MinDBConns:     2,
		}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"PlaceholderSecretInRelease", func(c *Config) { c.JWTSecret = defaultJWTSecret }, "release mode"},
		{"ShortSecret", func(c *Config) { c.JWTSecret = "short" }, "16 characters"},
		{"BcryptCost", func(c *Config) { c.BcryptCost = 40 }, "BCRYPT_COST"},
		{"Upload", func(c *Config) { c.MaxUploadBytes = 0 }, "MAX_UPLOAD_SIZE_MB"},
		{"Pool", func(c *Config) { c.MinDBConns = 9 }, "MIN_DB_CONNS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}

	debug := valid()
	debug.GinMode = "debug"
	debug.JWTSecret = defaultJWTSecret
	if err := debug.Validate(); err != nil {
		t.Errorf("placeholder secret rejected in debug mode: %v", err)
	}
}
