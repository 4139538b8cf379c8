package main

import "testing"

func TestBacktraceReadsWordsAboveSP(t *testing.T) {
	d, bus := newTestDebugger()
	d.SetRegister("SS", 0)
	d.SetRegister("SP", 0x1000)
	bus.WriteWord(0x1000, 0xBEEF)
	bus.WriteWord(0x1002, 0xCAFE)

	addrs := backtrace(d, 2)
	if len(addrs) != 2 {
		t.Fatalf("got %d addresses, want 2", len(addrs))
	}
	if addrs[0] != 0xBEEF || addrs[1] != 0xCAFE {
		t.Fatalf("addrs = %X, want [BEEF CAFE]", addrs)
	}
}
