// runtime_status.go - thread-safe snapshot of the running machine's
// identity, following the teacher's runtimeStatusStore pattern (a
// mutex-guarded struct with setters and a copy-out snapshot, so a reader
// holds no lock across the call). No code in this package calls its
// setters or snapshot.

package main

import "sync"

type runtimeStatusSnapshot struct {
	machine *Machine

	mountedFloppy [2]string // backing file path, or "" if no media inserted
	mountedVHD    [2]string
}

type runtimeStatusStore struct {
	mu sync.RWMutex
	runtimeStatusSnapshot
}

func (s *runtimeStatusStore) setMachine(m *Machine) {
	s.mu.Lock()
	s.machine = m
	s.mu.Unlock()
}

func (s *runtimeStatusStore) setFloppy(drive int, path string) {
	s.mu.Lock()
	s.mountedFloppy[drive] = path
	s.mu.Unlock()
}

func (s *runtimeStatusStore) setVHD(drive int, path string) {
	s.mu.Lock()
	s.mountedVHD[drive] = path
	s.mu.Unlock()
}

func (s *runtimeStatusStore) snapshot() runtimeStatusSnapshot {
	s.mu.RLock()
	snap := s.runtimeStatusSnapshot
	s.mu.RUnlock()
	return snap
}

var runtimeStatus = &runtimeStatusStore{}
