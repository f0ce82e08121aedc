// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// Alive reports whether a process with the given PID currently exists
// in the OS process table. The probe sends signal 0, which performs
// the kernel's existence and permission checks without delivering
// anything.
//
// EPERM means the process exists but belongs to another user, so it
// counts as alive. Any other error (ESRCH, or a failed FindProcess on
// non-Unix platforms) counts as dead: the watchdog treats probe
// failures as "backend gone" rather than risk an orphaned UI process.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}

	// On Unix, FindProcess always succeeds; the Signal call is where
	// the actual probe happens.
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = proc.Signal(unix.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, unix.EPERM)
}
