package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const unitName = "usb-wakeup-control.service"

// unitTemplate runs the replay hook before sleep and again on resume:
// bus paths are reassigned during re-enumeration, so the flag must be
// rewritten on both sides of a suspend.
const unitTemplate = `[Unit]
Description=Reapply USB wakeup settings around suspend
Before=sleep.target
After=suspend.target hibernate.target hybrid-sleep.target

[Service]
Type=oneshot
ExecStart=%s systemd-run-before-sleep

[Install]
WantedBy=sleep.target suspend.target hibernate.target hybrid-sleep.target
`

func runInstall(cfg Config, out io.Writer) error {
	if err := installFiles(cfg); err != nil {
		return err
	}
	sd, err := newSystemd()
	if err != nil {
		return err
	}
	defer sd.close()
	if err := sd.reload(); err != nil {
		return err
	}
	if err := sd.enableUnit(unitName); err != nil {
		return err
	}
	fmt.Fprintf(out, "installed %s and enabled %s\n", cfg.BinPath, unitName)
	return nil
}

// installFiles copies the binary, writes the unit, and seeds empty state
// files. Separated from the D-Bus step so it can be exercised without a
// bus.
func installFiles(cfg Config) error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate own binary: %w", err)
	}
	if err := copyFile(self, cfg.BinPath, 0o755); err != nil {
		return err
	}

	unit := fmt.Sprintf(unitTemplate, cfg.BinPath)
	unitPath := filepath.Join(cfg.UnitDir, unitName)
	if err := os.WriteFile(unitPath, []byte(unit), 0o644); err != nil {
		return fmt.Errorf("write unit %s: %w", unitPath, err)
	}

	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", cfg.StateDir, err)
	}
	for _, set := range []string{setDisabled, setEnabled} {
		path := filepath.Join(cfg.StateDir, set)
		if _, err := os.Stat(path); err == nil {
			continue // keep existing entries on reinstall
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("create %s set: %w", set, err)
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return nil
}
