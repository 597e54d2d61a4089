package main

// WakeupState is the literal content of a device's power/wakeup attribute.
type WakeupState string

const (
	WakeupEnabled  WakeupState = "enabled"
	WakeupDisabled WakeupState = "disabled"
)

// Identity is the (vendor, product) pair a USB device model is known by.
// Both fields are 4-char hex strings exactly as sysfs reports them;
// comparison is exact string equality, never substring matching.
type Identity struct {
	Vendor  string
	Product string
}

// String renders the identity in the persisted-file format.
func (id Identity) String() string { return id.Vendor + " " + id.Product }

// Device is one live USB device found in sysfs. BusPath is the kernel's
// enumeration name ("1-1.2"); it is not stable across replug or
// suspend/resume, so it is never persisted.
type Device struct {
	BusPath string
	Identity
	Name   string // product string, may be empty
	Wakeup WakeupState
}
