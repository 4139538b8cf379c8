package main

import "testing"

func newTestDebugger() (*cpu8088Debugger, *Bus) {
	cpu, bus := newTestCPU()
	return NewCPU8088Debugger(cpu, bus), bus
}

func TestDebuggerRegisterReadWrite(t *testing.T) {
	d, _ := newTestDebugger()
	if !d.SetRegister("AX", 0x1234) {
		t.Fatal("SetRegister(AX) failed")
	}
	v, ok := d.GetRegister("AX")
	if !ok || v != 0x1234 {
		t.Fatalf("GetRegister(AX) = %#x, %v; want 0x1234, true", v, ok)
	}
	if _, ok := d.GetRegister("ZZ"); ok {
		t.Fatal("GetRegister(ZZ) should fail for unknown register")
	}
}

func TestDebuggerStepAdvancesPCAndFiresBreakpoint(t *testing.T) {
	cpu, bus := newTestCPU()
	loadCode(bus, 0, 0x100, []byte{0xB8, 0x34, 0x12, 0xB0, 0x01}) // MOV AX,1234; MOV AL,1
	cpu.segs[SegCS] = 0
	cpu.IP = 0x100
	cpu.biu.Reset(cpu.linearPC())

	d := NewCPU8088Debugger(cpu, bus)
	events := make(chan BreakpointEvent, 4)
	d.SetBreakpointChannel(events, 0)
	d.SetBreakpoint(uint64(LinearAddress(0, 0x103)))

	d.Step()
	if d.GetPC() != uint64(LinearAddress(0, 0x103)) {
		t.Fatalf("PC = %#x after first step, want %#x", d.GetPC(), LinearAddress(0, 0x103))
	}
	d.Step()
	select {
	case ev := <-events:
		if ev.Address != uint64(LinearAddress(0, 0x103)) {
			t.Fatalf("breakpoint fired at %#x, want %#x", ev.Address, LinearAddress(0, 0x103))
		}
	default:
		t.Fatal("expected a breakpoint event after stepping onto the armed address")
	}
}

func TestDebuggerWatchpointFiresOnWrite(t *testing.T) {
	cpu, bus := newTestCPU()
	loadCode(bus, 0, 0x100, []byte{0xB0, 0x42, 0xA2, 0x00, 0x02}) // MOV AL,0x42; MOV [0x200],AL
	cpu.segs[SegCS] = 0
	cpu.segs[SegDS] = 0
	cpu.IP = 0x100
	cpu.biu.Reset(cpu.linearPC())

	d := NewCPU8088Debugger(cpu, bus)
	events := make(chan BreakpointEvent, 4)
	d.SetBreakpointChannel(events, 0)
	d.SetWatchpoint(0x200)

	d.Step()
	d.Step()

	select {
	case ev := <-events:
		if !ev.IsWatch || ev.WatchNewValue != 0x42 {
			t.Fatalf("watch event = %+v, want write of 0x42", ev)
		}
	default:
		t.Fatal("expected a watchpoint event after the memory write")
	}
}

func TestDebuggerMemoryReadWrite(t *testing.T) {
	d, _ := newTestDebugger()
	d.WriteMemory(0x500, []byte{1, 2, 3})
	got := d.ReadMemory(0x500, 3)
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("ReadMemory = %v, want [1 2 3]", got)
	}
}

func TestDebuggerFreezeResume(t *testing.T) {
	d, _ := newTestDebugger()
	if !d.IsRunning() {
		t.Fatal("debugger should start running")
	}
	d.Freeze()
	if d.IsRunning() {
		t.Fatal("debugger should report not running after Freeze")
	}
	d.Resume()
	if !d.IsRunning() {
		t.Fatal("debugger should report running after Resume")
	}
}
