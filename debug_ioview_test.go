package main

import (
	"strings"
	"testing"
)

func TestListIODevicesCoversCoreChips(t *testing.T) {
	names := listIODevices()
	want := []string{"pic", "pit", "dma", "ppi", "fdc", "hdc", "serial1", "serial2", "video", "ems"}
	if len(names) != len(want) {
		t.Fatalf("got %d devices, want %d", len(names), len(want))
	}
	for _, w := range want {
		found := false
		for _, n := range names {
			if n == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("listIODevices missing %q", w)
		}
	}
}

func TestFormatIOViewWithoutMachineReportsNoMachine(t *testing.T) {
	d, _ := newTestDebugger()
	lines := formatIOView(d, "pic")
	if len(lines) != 1 || !strings.Contains(lines[0], "no machine") {
		t.Fatalf("lines = %v, want a no-machine-attached message", lines)
	}
}

func TestFormatIOViewWithMachineReadsPIC(t *testing.T) {
	m, err := NewMachine(MachineConfig{ConventionalKiB: 640, CyclesPerSecond: 4772727})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	lines := formatIOView(m.Debugger, "pic")
	if len(lines) != 1 || !strings.Contains(lines[0], "IMR=") {
		t.Fatalf("lines = %v, want a PIC register dump", lines)
	}
}

func TestFormatIOViewUnknownDevice(t *testing.T) {
	m, err := NewMachine(MachineConfig{ConventionalKiB: 640, CyclesPerSecond: 4772727})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	lines := formatIOView(m.Debugger, "bogus")
	if len(lines) != 1 || !strings.Contains(lines[0], "unknown device") {
		t.Fatalf("lines = %v, want an unknown-device message", lines)
	}
}
