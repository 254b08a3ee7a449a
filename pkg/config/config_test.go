package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (c *testConfig) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "name: membank\nport: 8080\n")
	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "membank" || cfg.Port != 8080 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("MEMBANK_TEST_NAME", "expanded")
	path := writeConfig(t, "name: ${MEMBANK_TEST_NAME}\nport: 1\n")
	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "expanded" {
		t.Errorf("name = %q, want expanded", cfg.Name)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, "name: x\nport: 0\n")
	var cfg testConfig
	err := Load(path, &cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadIfExists_MissingFileKeepsDefaults(t *testing.T) {
	cfg := testConfig{Name: "default", Port: 9090}
	if err := LoadIfExists(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err != nil {
		t.Fatalf("LoadIfExists: %v", err)
	}
	if cfg.Name != "default" || cfg.Port != 9090 {
		t.Errorf("defaults changed: %+v", cfg)
	}
}

func TestLoadIfExists_MissingFileStillValidates(t *testing.T) {
	cfg := testConfig{Port: 0}
	if err := LoadIfExists(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err == nil {
		t.Fatal("invalid defaults should fail validation")
	}
}

func TestLoadIfExists_PresentFileLoaded(t *testing.T) {
	path := writeConfig(t, "name: fromfile\nport: 2\n")
	cfg := testConfig{Name: "default", Port: 9090}
	if err := LoadIfExists(path, &cfg); err != nil {
		t.Fatalf("LoadIfExists: %v", err)
	}
	if cfg.Name != "fromfile" || cfg.Port != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
}
