package main

import "testing"

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := NewMachine(MachineConfig{ConventionalKiB: 640, CyclesPerSecond: 4772727})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m
}

func TestNewMachineWiresDebuggerAndMonitor(t *testing.T) {
	m := newTestMachine(t)
	if m.Debugger == nil {
		t.Fatal("Debugger not wired")
	}
	if m.Monitor == nil {
		t.Fatal("Monitor not wired")
	}
	if m.Monitor.FocusedCPU() == nil {
		t.Fatal("monitor should have the 8088 registered and focused by default")
	}
}

func TestRunCyclesExecutesInstructions(t *testing.T) {
	m := newTestMachine(t)
	loadCode(m.Bus, 0, 0x100, []byte{0xB8, 0x34, 0x12, 0x90, 0x90, 0x90, 0x90, 0x90})
	m.CPU.segs[SegCS] = 0
	m.CPU.IP = 0x100
	m.CPU.biu.Reset(m.CPU.linearPC())

	ran := m.RunCycles(20)
	if ran < 20 {
		t.Fatalf("RunCycles returned %d, want >= 20", ran)
	}
	if m.CPU.AX != 0x1234 {
		t.Fatalf("AX = %#x, want 0x1234", m.CPU.AX)
	}
}

func TestLongRepStringOpLetsTimerIRQFireMidInstruction(t *testing.T) {
	m := newTestMachine(t)
	m.PIT.controlWrite(0x34) // channel 0, LSB/MSB, mode 2
	m.PIT.dataWrite(0, 8)
	m.PIT.dataWrite(0, 0)
	m.PIC.irr = 0 // IRQ0 is unmasked out of reset; start clean

	// REP STOSW with a large count spends far more ticks than the PIT's
	// reload value, so IRQ0 must become pending before this single Step
	// call returns - proving devices are ticked per REP element rather
	// than once after the whole instruction retires.
	loadCode(m.Bus, 0, 0x100, []byte{0xF3, 0xAB}) // REP STOSW
	m.CPU.segs[SegCS] = 0
	m.CPU.segs[SegES] = 0
	m.CPU.CX = 2000
	m.CPU.DI = 0x1000
	m.CPU.IP = 0x100
	m.CPU.biu.Reset(m.CPU.linearPC())

	m.CPU.Step()

	if m.PIC.irr&1 == 0 {
		t.Fatal("IRQ0 never became pending during a 2000-element REP STOSW")
	}
}

func TestPushScanCodeRaisesKeyboardIRQ(t *testing.T) {
	m := newTestMachine(t)
	m.PushScanCode(0x1E) // 'A' make code
	if m.PIC.irr&(1<<1) == 0 {
		t.Fatal("expected IRQ1 pending in the PIC after PushScanCode")
	}
}
