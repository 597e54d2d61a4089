package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("config = %+v, want defaults %+v", cfg, defaultConfig())
	}
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "sysfs_path: /tmp/fake-sysfs\nstate_dir: /tmp/fake-state\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if cfg.SysfsPath != "/tmp/fake-sysfs" {
		t.Errorf("SysfsPath = %q, want %q", cfg.SysfsPath, "/tmp/fake-sysfs")
	}
	if cfg.StateDir != "/tmp/fake-state" {
		t.Errorf("StateDir = %q, want %q", cfg.StateDir, "/tmp/fake-state")
	}
	// Unset keys keep their defaults.
	if cfg.BinPath != defaultConfig().BinPath {
		t.Errorf("BinPath = %q, want default %q", cfg.BinPath, defaultConfig().BinPath)
	}
	if cfg.UnitDir != defaultConfig().UnitDir {
		t.Errorf("UnitDir = %q, want default %q", cfg.UnitDir, defaultConfig().UnitDir)
	}
}

func TestLoadConfigMalformedYAMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sysfs_path: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfigFile(path); err == nil {
		t.Error("loadConfigFile accepted malformed YAML, want error")
	}
}
