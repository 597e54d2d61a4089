package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Set names double as file names under the state directory.
const (
	setDisabled = "disabled"
	setEnabled  = "enabled"
)

// store persists identity sets as flat files, one "<vendor> <product>"
// line per entry. Mutations run under an exclusive advisory flock so a
// user command and the sleep hook cannot interleave a remove with an add.
type store struct {
	dir string
}

func (st store) path(set string) string { return filepath.Join(st.dir, set) }

// lock takes the store-wide advisory lock, creating the state directory
// on first use. The caller must invoke the returned unlock func.
func (st store) lock() (func(), error) {
	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", st.dir, err)
	}
	f, err := os.OpenFile(filepath.Join(st.dir, ".lock"), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open store lock: %w", err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock store: %w", err)
	}
	return func() {
		unix.Flock(int(f.Fd()), unix.LOCK_UN)
		f.Close()
	}, nil
}

// read returns the set's entries. A missing file is an empty set.
func (st store) read(set string) ([]Identity, error) {
	data, err := os.ReadFile(st.path(set))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s set: %w", set, err)
	}
	return parseEntries(string(data)), nil
}

// parseEntries splits each line into exactly two fields. Lines with any
// other shape are ignored rather than half-matched.
func parseEntries(text string) []Identity {
	var ids []Identity
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		ids = append(ids, Identity{Vendor: fields[0], Product: fields[1]})
	}
	return ids
}

func (st store) contains(set string, id Identity) (bool, error) {
	ids, err := st.read(set)
	if err != nil {
		return false, err
	}
	for _, e := range ids {
		if e == id {
			return true, nil
		}
	}
	return false, nil
}

// add appends id unless it is already present. Creates the directory and
// file on first use.
func (st store) add(set string, id Identity) error {
	present, err := st.contains(set, id)
	if err != nil {
		return err
	}
	if present {
		return nil
	}
	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", st.dir, err)
	}
	f, err := os.OpenFile(st.path(set), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s set: %w", set, err)
	}
	if _, err := fmt.Fprintln(f, id); err != nil {
		f.Close()
		return fmt.Errorf("append to %s set: %w", set, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("append to %s set: %w", set, err)
	}
	return nil
}

// remove rewrites the set omitting every line that structurally matches
// id. All other lines, including hand-edited ones that do not parse as
// entries, are kept verbatim. A missing file or no match is a no-op.
func (st store) remove(set string, id Identity) error {
	data, err := os.ReadFile(st.path(set))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s set: %w", set, err)
	}

	removed := false
	var kept []string
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && (Identity{Vendor: fields[0], Product: fields[1]}) == id {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return nil
	}
	return st.writeLines(set, kept)
}

// writeLines replaces the set file through a temp file in the same
// directory, so a failure mid-write cannot truncate the set.
func (st store) writeLines(set string, lines []string) error {
	tmp, err := os.CreateTemp(st.dir, set+".tmp-*")
	if err != nil {
		return fmt.Errorf("temp file for %s set: %w", set, err)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(tmp, line); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("write %s set: %w", set, err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s set: %w", set, err)
	}
	if err := os.Rename(tmp.Name(), st.path(set)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s set: %w", set, err)
	}
	return nil
}

// move removes id from one set and adds it to the other. This is the
// primitive behind enable and disable: after a move an identity sits in
// at most one set.
func (st store) move(id Identity, from, to string) error {
	if err := st.remove(from, id); err != nil {
		return err
	}
	return st.add(to, id)
}
