package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/depscout/depscout/pkg/errors"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "depscout.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.Dir != "data" {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "data")
	}
	if cfg.CacheTTL() != 24*time.Hour {
		t.Errorf("CacheTTL() = %v, want 24h", cfg.CacheTTL())
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depscout.toml")
	content := `
[bigquery]
project = "my-project"
credentials_file = "/secrets/sa.json"

[registry]
base_url = "http://localhost:8080"
cache_ttl_hours = 1

[output]
dir = "/tmp/out"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BigQuery.Project != "my-project" {
		t.Errorf("BigQuery.Project = %q", cfg.BigQuery.Project)
	}
	if cfg.BigQuery.CredentialsFile != "/secrets/sa.json" {
		t.Errorf("BigQuery.CredentialsFile = %q", cfg.BigQuery.CredentialsFile)
	}
	if cfg.Registry.BaseURL != "http://localhost:8080" {
		t.Errorf("Registry.BaseURL = %q", cfg.Registry.BaseURL)
	}
	if cfg.CacheTTL() != time.Hour {
		t.Errorf("CacheTTL() = %v, want 1h", cfg.CacheTTL())
	}
	if cfg.Output.Dir != "/tmp/out" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depscout.toml")
	if err := os.WriteFile(path, []byte("[bigquery\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for malformed file")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want INVALID_CONFIG", errors.GetCode(err))
	}
}
