package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.URI != "mongodb://localhost:27017" {
		t.Errorf("Unexpected default URI: %s", cfg.Database.URI)
	}
	if cfg.Database.Name != "backendlibrary" {
		t.Errorf("Unexpected default database name: %s", cfg.Database.Name)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Unexpected default port: %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Unexpected default read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Unexpected default log level: %s", cfg.Log.Level)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGO_DATABASE", "otherdb")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "30s")
	t.Setenv("SERVER_WRITE_TIMEOUT", "bogus")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.Name != "otherdb" {
		t.Errorf("Expected otherdb, got %s", cfg.Database.Name)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Expected 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Expected 30s read timeout, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("Invalid duration must fall back to default, got %s", cfg.Server.WriteTimeout)
	}
}
