package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type validatedConfig struct {
	Port int `yaml:"port"`
}

func (c *validatedConfig) Validate() error {
	if c.Port == 0 {
		return errors.New("port required")
	}
	return nil
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_CFG_NAME", "from-env")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("name: ${TEST_CFG_NAME}\nport: 8080\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "from-env" || cfg.Port != 8080 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &validatedConfig{}
	if err := Load(path, cfg); err == nil {
		t.Fatal("invalid config should fail to load")
	}
}

func TestLoadOptional_MissingFileKeepsDefaults(t *testing.T) {
	cfg := &validatedConfig{Port: 9090}
	if err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), cfg); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d, defaults were touched", cfg.Port)
	}
}

func TestLoadOptional_MissingFileStillValidates(t *testing.T) {
	cfg := &validatedConfig{}
	if err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), cfg); err == nil {
		t.Fatal("invalid defaults should fail validation")
	}
}
