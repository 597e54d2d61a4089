package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultStateDir = "/etc/usb-wakeup-control"

// Config holds the tool's filesystem paths. Every field has a working
// default; the optional config file exists so tests and nonstandard
// systems can redirect them.
type Config struct {
	SysfsPath string `yaml:"sysfs_path"`
	StateDir  string `yaml:"state_dir"`
	BinPath   string `yaml:"bin_path"`
	UnitDir   string `yaml:"unit_dir"`
}

func defaultConfig() Config {
	return Config{
		SysfsPath: "/sys/bus/usb/devices",
		StateDir:  defaultStateDir,
		BinPath:   "/usr/local/bin/usb-wakeup-control",
		UnitDir:   "/etc/systemd/system",
	}
}

func configPath() string {
	if p := os.Getenv("USB_WAKEUP_CONTROL_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(defaultStateDir, "config.yaml")
}

func loadConfig() (Config, error) {
	return loadConfigFile(configPath())
}

// loadConfigFile reads the YAML config at path. A missing file yields the
// defaults; a present but unparseable file is an error, not a silent
// fallback.
func loadConfigFile(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if file.SysfsPath != "" {
		cfg.SysfsPath = file.SysfsPath
	}
	if file.StateDir != "" {
		cfg.StateDir = file.StateDir
	}
	if file.BinPath != "" {
		cfg.BinPath = file.BinPath
	}
	if file.UnitDir != "" {
		cfg.UnitDir = file.UnitDir
	}
	return cfg, nil
}
