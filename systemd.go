package main

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	systemdBusName    = "org.freedesktop.systemd1"
	systemdObjectPath = "/org/freedesktop/systemd1"
	managerIface      = "org.freedesktop.systemd1.Manager"
)

// systemd wraps a system D-Bus connection for systemd manager operations.
type systemd struct {
	conn *dbus.Conn
}

func newSystemd() (*systemd, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect to system bus: %w", err)
	}
	// Quick check that systemd is on the bus.
	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		conn.Close()
		return nil, fmt.Errorf("list bus names: %w", err)
	}
	found := false
	for _, n := range names {
		if n == systemdBusName {
			found = true
			break
		}
	}
	if !found {
		conn.Close()
		return nil, fmt.Errorf("%s not found on system bus — is this host running systemd?", systemdBusName)
	}
	return &systemd{conn: conn}, nil
}

func (s *systemd) close() {
	s.conn.Close()
}

func (s *systemd) manager() dbus.BusObject {
	return s.conn.Object(systemdBusName, dbus.ObjectPath(systemdObjectPath))
}

// reload makes systemd re-read unit files from disk, picking up the unit
// the installer just wrote.
func (s *systemd) reload() error {
	if err := s.manager().Call(managerIface+".Reload", 0).Err; err != nil {
		return fmt.Errorf("reload systemd: %w", err)
	}
	return nil
}

// enableUnit enables a unit persistently (runtime=false, force=true).
func (s *systemd) enableUnit(unit string) error {
	var carriesInstallInfo bool
	var changes [][]interface{}
	call := s.manager().Call(managerIface+".EnableUnitFiles", 0, []string{unit}, false, true)
	if err := call.Store(&carriesInstallInfo, &changes); err != nil {
		return fmt.Errorf("enable %s: %w", unit, err)
	}
	return nil
}
