package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run dispatches one invocation. Help and argument validation come before
// config loading so usage errors and help never depend on the state of
// /etc and never touch the store.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		usage(stderr)
		return 1
	}
	cmd := args[1]

	switch cmd {
	case "help", "--help", "-h":
		usage(stdout)
		return 0
	case "enable", "disable":
		if len(args) < 4 {
			fmt.Fprintf(stderr, "usage: %s %s <vendorId> <productId>\n", prog(), cmd)
			return 1
		}
	case "install", "detect", "systemd-run-before-sleep":
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", cmd)
		usage(stderr)
		return 1
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	ctl := newController(cfg, stdout)

	switch cmd {
	case "install":
		err = runInstall(cfg, stdout)
	case "detect":
		err = ctl.detect()
	case "enable", "disable":
		target := WakeupDisabled
		if cmd == "enable" {
			target = WakeupEnabled
		}
		err = ctl.setWakeup(Identity{Vendor: args[2], Product: args[3]}, target)
	case "systemd-run-before-sleep":
		err = ctl.replay()
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func prog() string {
	return filepath.Base(os.Args[0])
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %[1]s install                          install binary and systemd sleep hook
  %[1]s detect                           list USB devices and their wakeup state
  %[1]s enable <vendorId> <productId>    let matching devices wake the host
  %[1]s disable <vendorId> <productId>   stop matching devices waking the host
  %[1]s systemd-run-before-sleep         reapply persisted settings (systemd hook)
`, prog())
}
