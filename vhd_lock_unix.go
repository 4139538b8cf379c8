//go:build unix

// vhd_lock_unix.go - advisory file locking for mounted VHD images.
//
// Two Machine instances mounting the same backing file read-write would
// silently corrupt each other's writes; flock(2) via x/sys/unix gives one
// process exclusivity for the lifetime of the mount, the same role
// terminal_host.go plays for platform-specific host integration.

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

type vhdLock struct {
	file *os.File
}

func lockVHDFile(path string, readOnly bool) (vhdLock, error) {
	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return vhdLock{}, fmt.Errorf("open vhd %s: %w", path, err)
	}
	lockType := unix.LOCK_EX
	if readOnly {
		lockType = unix.LOCK_SH
	}
	if err := unix.Flock(int(f.Fd()), lockType|unix.LOCK_NB); err != nil {
		f.Close()
		return vhdLock{}, fmt.Errorf("lock vhd %s: %w", path, err)
	}
	return vhdLock{file: f}, nil
}

func (l vhdLock) unlock() {
	if l.file == nil {
		return
	}
	unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	l.file.Close()
}
