package main

import (
	"errors"
	"fmt"
	"io"
)

// controller wires the enumerator, the store, and the report writer.
type controller struct {
	fs  sysfs
	st  store
	out io.Writer
}

func newController(cfg Config, out io.Writer) *controller {
	return &controller{
		fs:  sysfs{root: cfg.SysfsPath},
		st:  store{dir: cfg.StateDir},
		out: out,
	}
}

// setWakeup is the shared enable/disable path: persist the identity in
// the target set, then flip the flag on every live match. Zero live
// matches is fine, the device can be configured before it is ever
// plugged in.
func (c *controller) setWakeup(id Identity, target WakeupState) error {
	from, to := setEnabled, setDisabled
	if target == WakeupEnabled {
		from, to = setDisabled, setEnabled
	}

	unlock, err := c.st.lock()
	if err != nil {
		return err
	}
	err = c.st.move(id, from, to)
	unlock()
	if err != nil {
		return err
	}

	return c.apply(id, target)
}

// apply flips the flag on every live device matching id and reports the
// old and new state per device. Failures are independent: one bad device
// does not stop the rest, and nothing is rolled back.
func (c *controller) apply(id Identity, target WakeupState) error {
	devs, err := c.fs.find(id)
	if err != nil {
		return err
	}

	var errs []error
	for _, d := range devs {
		old := d.Wakeup
		if err := c.fs.writeWakeup(d.BusPath, target); err != nil {
			errs = append(errs, err)
			continue
		}
		cur, err := c.fs.readWakeup(d.BusPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(c.out, "Bus-port:%s vendor=%s product=%s name=%s WakeUp: old=%s new=%s\n",
			d.BusPath, d.Vendor, d.Product, d.Name, old, cur)
	}
	return errors.Join(errs...)
}

// detect prints one line per live device.
func (c *controller) detect() error {
	devs, err := c.fs.devices()
	if err != nil {
		return err
	}
	for _, d := range devs {
		fmt.Fprintf(c.out, "Bus-port:%s vendor=%s product=%s wakeup=%s name=%s\n",
			d.BusPath, d.Vendor, d.Product, d.Wakeup, d.Name)
	}
	return nil
}

// replay reapplies every persisted entry to whatever bus path the
// devices landed on this time. Disables run first, then enables, so an
// identity somehow present in both files ends up enabled.
func (c *controller) replay() error {
	unlock, err := c.st.lock()
	if err != nil {
		return err
	}
	disabled, derr := c.st.read(setDisabled)
	enabled, eerr := c.st.read(setEnabled)
	unlock()
	if derr != nil {
		return derr
	}
	if eerr != nil {
		return eerr
	}

	var errs []error
	for _, id := range disabled {
		if err := c.apply(id, WakeupDisabled); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range enabled {
		if err := c.apply(id, WakeupEnabled); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
