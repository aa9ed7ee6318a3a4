package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("Port = %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Fatalf("ReadTimeout = %s", cfg.Server.ReadTimeout)
	}
	if cfg.Dictionary.Backend != BackendMemory {
		t.Fatalf("Backend = %s", cfg.Dictionary.Backend)
	}
	if cfg.Search.DefaultLimit != 10 || cfg.Search.MaxLimit != 100 {
		t.Fatalf("Search = %+v", cfg.Search)
	}
}

func TestLoadEnvMapPrecedence(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(map[string]string{
		"API_SERVER_PORT":         "9090",
		"API_SERVER_READ_TIMEOUT": "5s",
		"API_DICTIONARY_BACKEND":  "SQLITE",
		"API_DICTIONARY_DB":       "/tmp/dict.db",
		"API_SEARCH_MAX_LIMIT":    "50",
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("Port = %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("ReadTimeout = %s", cfg.Server.ReadTimeout)
	}
	if cfg.Dictionary.Backend != BackendSQLite || cfg.Dictionary.Database != "/tmp/dict.db" {
		t.Fatalf("Dictionary = %+v", cfg.Dictionary)
	}
	if cfg.Search.MaxLimit != 50 {
		t.Fatalf("MaxLimit = %d", cfg.Search.MaxLimit)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nexport API_SERVER_PORT=7070\nAPI_DICTIONARY_FILE=\"fixtures/dict.json\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("Port = %s", cfg.Server.Port)
	}
	if cfg.Dictionary.File != "fixtures/dict.json" {
		t.Fatalf("File = %s", cfg.Dictionary.File)
	}
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(map[string]string{
		"API_DICTIONARY_BACKEND": "postgres",
		"API_SEARCH_MAX_LIMIT":   "1",
	}))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %T, want *ValidationError", err)
	}
	fields := verr.Fields()
	if len(fields) != 2 {
		t.Fatalf("fields = %v", fields)
	}
}
