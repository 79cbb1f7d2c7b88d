package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UNDL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(APIKeyEnv, "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "" {
		t.Fatalf("key: want empty, got %q", cfg.APIKey)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL || cfg.SearchBaseURL != defaultSearchBaseURL {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "api_key: file-key\napi_base_url: https://example.org/api\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("UNDL_CONFIG", path)
	t.Setenv(APIKeyEnv, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Fatalf("file key: got %q", cfg.APIKey)
	}
	if cfg.APIBaseURL != "https://example.org/api" {
		t.Fatalf("file url: got %q", cfg.APIBaseURL)
	}
	// file left the legacy endpoint unset; default must backfill it
	if cfg.SearchBaseURL != defaultSearchBaseURL {
		t.Fatalf("search url default: got %q", cfg.SearchBaseURL)
	}

	t.Setenv(APIKeyEnv, "env-key")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Fatalf("env override: got %q", cfg.APIKey)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_key: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("UNDL_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Fatal("want error for malformed config file")
	}
}
