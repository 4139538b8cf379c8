//go:build !unix

// vhd_lock_other.go - non-Unix fallback for VHD mount locking.
//
// Without flock this core cannot prevent two processes from mounting the
// same image read-write; it still opens the file so a missing-file error
// surfaces the same way, but the mutual-exclusion guarantee is lost on
// this platform.

package main

import (
	"fmt"
	"os"
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
	return vhdLock{file: f}, nil
}

func (l vhdLock) unlock() {
	if l.file != nil {
		l.file.Close()
	}
}
