package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testInstallConfig(t *testing.T) Config {
	t.Helper()
	base := t.TempDir()
	return Config{
		SysfsPath: filepath.Join(base, "sysfs"),
		StateDir:  filepath.Join(base, "state"),
		BinPath:   filepath.Join(base, "bin", "usb-wakeup-control"),
		UnitDir:   base,
	}
}

func TestInstallFilesLaysOutEverything(t *testing.T) {
	cfg := testInstallConfig(t)
	if err := os.MkdirAll(filepath.Dir(cfg.BinPath), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := installFiles(cfg); err != nil {
		t.Fatalf("installFiles: %v", err)
	}

	// Binary copied (the test binary stands in for the real one).
	info, err := os.Stat(cfg.BinPath)
	if err != nil {
		t.Fatalf("stat installed binary: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("installed binary mode = %v, want executable", info.Mode())
	}

	// Unit points at the installed binary and hooks the sleep targets.
	unit, err := os.ReadFile(filepath.Join(cfg.UnitDir, unitName))
	if err != nil {
		t.Fatalf("read unit: %v", err)
	}
	for _, want := range []string{
		"ExecStart=" + cfg.BinPath + " systemd-run-before-sleep",
		"Before=sleep.target",
		"WantedBy=sleep.target",
	} {
		if !strings.Contains(string(unit), want) {
			t.Errorf("unit missing %q:\n%s", want, unit)
		}
	}

	// Both state files seeded empty.
	for _, set := range []string{setDisabled, setEnabled} {
		data, err := os.ReadFile(filepath.Join(cfg.StateDir, set))
		if err != nil {
			t.Fatalf("read %s set: %v", set, err)
		}
		if len(data) != 0 {
			t.Errorf("%s set = %q, want empty", set, data)
		}
	}
}

func TestInstallFilesKeepsExistingEntries(t *testing.T) {
	cfg := testInstallConfig(t)
	if err := os.MkdirAll(filepath.Dir(cfg.BinPath), 0o755); err != nil {
		t.Fatal(err)
	}
	st := store{dir: cfg.StateDir}
	id := Identity{Vendor: "046d", Product: "c52b"}
	if err := st.add(setDisabled, id); err != nil {
		t.Fatal(err)
	}

	if err := installFiles(cfg); err != nil {
		t.Fatalf("installFiles: %v", err)
	}

	if ok, _ := st.contains(setDisabled, id); !ok {
		t.Error("reinstall wiped an existing disabled entry")
	}
}
