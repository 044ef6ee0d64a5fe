package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if c.HTTP.Port != 8080 {
		t.Errorf("default port: got %d", c.HTTP.Port)
	}
	if c.JWT.CookieName != "jwt" {
		t.Errorf("default cookie name: got %q", c.JWT.CookieName)
	}
	if c.DB.Driver != "postgres" {
		t.Errorf("default driver: got %q", c.DB.Driver)
	}
	if c.RateLimit.Burst != 100 {
		t.Errorf("default burst: got %d", c.RateLimit.Burst)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte("http:\n  port: 9090\njwt:\n  secret: file-secret\ndb:\n  driver: sqlite\n  dsn: test.db\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := Load(path)
	if c.HTTP.Port != 9090 {
		t.Errorf("port: got %d", c.HTTP.Port)
	}
	if c.JWT.Secret != "file-secret" {
		t.Errorf("secret: got %q", c.JWT.Secret)
	}
	if c.DB.Driver != "sqlite" || c.DB.DSN != "test.db" {
		t.Errorf("db: got %q / %q", c.DB.Driver, c.DB.DSN)
	}
}

func TestJWTSecretEnvFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if c.JWT.Secret != "env-secret" {
		t.Errorf("expected env fallback, got %q", c.JWT.Secret)
	}
}
