package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sysfs enumerates USB devices under one /sys/bus/usb/devices-style root.
type sysfs struct {
	root string
}

// devices scans the tree once and returns every usable device. Bus roots
// ("usb1") and interface entries ("1-1:1.0") are skipped by name. Devices
// missing an identity or a wakeup flag are skipped silently: not every
// device supports wakeup, and that is not an error.
func (s sysfs) devices() ([]Device, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.root, err)
	}

	var devs []Device
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "usb") {
			continue
		}
		if strings.Contains(name, ":") {
			continue
		}
		dev, err := s.readDevice(name)
		if err != nil {
			continue
		}
		devs = append(devs, dev)
	}
	return devs, nil
}

func (s sysfs) readDevice(busPath string) (Device, error) {
	dir := filepath.Join(s.root, busPath)

	vendor, err := readAttr(filepath.Join(dir, "idVendor"))
	if err != nil {
		return Device{}, err
	}
	product, err := readAttr(filepath.Join(dir, "idProduct"))
	if err != nil {
		return Device{}, err
	}
	wakeup, err := readAttr(filepath.Join(dir, "power", "wakeup"))
	if err != nil {
		return Device{}, err
	}
	// The product string is optional.
	name, _ := readAttr(filepath.Join(dir, "product"))

	return Device{
		BusPath:  busPath,
		Identity: Identity{Vendor: vendor, Product: product},
		Name:     name,
		Wakeup:   WakeupState(wakeup),
	}, nil
}

// find filters devices() by exact identity. Zero matches is a valid empty
// result, not an error: the device may simply be unplugged right now.
func (s sysfs) find(id Identity) ([]Device, error) {
	all, err := s.devices()
	if err != nil {
		return nil, err
	}
	var matched []Device
	for _, d := range all {
		if d.Identity == id {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

func (s sysfs) wakeupPath(busPath string) string {
	return filepath.Join(s.root, busPath, "power", "wakeup")
}

func (s sysfs) readWakeup(busPath string) (WakeupState, error) {
	v, err := readAttr(s.wakeupPath(busPath))
	if err != nil {
		return "", fmt.Errorf("read wakeup on %s: %w", busPath, err)
	}
	return WakeupState(v), nil
}

func (s sysfs) writeWakeup(busPath string, state WakeupState) error {
	if err := os.WriteFile(s.wakeupPath(busPath), []byte(state), 0o644); err != nil {
		return fmt.Errorf("set wakeup on %s: %w", busPath, err)
	}
	return nil
}

// readAttr reads one sysfs attribute, trimming the trailing newline.
func readAttr(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
