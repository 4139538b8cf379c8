package main

import "testing"

func TestBusReadWriteByte(t *testing.T) {
	b := NewBus()
	b.WriteByte(0x1234, 0x42)
	v, waits := b.ReadByte(0x1234)
	if v != 0x42 {
		t.Fatalf("ReadByte: got %#x, want 0x42", v)
	}
	if waits != 0 {
		t.Fatalf("ReadByte waits: got %d, want 0", waits)
	}
}

func TestBusAddressWraps20Bit(t *testing.T) {
	b := NewBus()
	b.WriteByte(0x100005, 0x99)
	v, _ := b.ReadByte(0x00005)
	if v != 0x99 {
		t.Fatalf("20-bit wraparound not applied: got %#x", v)
	}
}

func TestBusROMIsReadOnly(t *testing.T) {
	b := NewBus()
	b.LoadROM(0xF0000, []byte{0xEA, 0x00, 0x00, 0x00, 0xF0}, 0)
	b.WriteByte(0xF0000, 0x90)
	v, _ := b.ReadByte(0xF0000)
	if v != 0xEA {
		t.Fatalf("write to ROM region was not discarded: got %#x", v)
	}
}

func TestBusWaitStates(t *testing.T) {
	b := NewBus()
	b.SetWaitStates(0xC0000, 0xC0FFF, 3)
	_, waits := b.ReadByte(0xC0500)
	if waits != 3 {
		t.Fatalf("wait states: got %d, want 3", waits)
	}
}

type stubMMIO struct {
	base, size uint32
	mem        []byte
}

func (s *stubMMIO) Contains(addr uint32) bool { return addr >= s.base && addr < s.base+s.size }
func (s *stubMMIO) ReadMMIO(addr uint32) uint8 { return s.mem[addr-s.base] }
func (s *stubMMIO) WriteMMIO(addr uint32, v uint8) { s.mem[addr-s.base] = v }

func TestBusMMIODispatch(t *testing.T) {
	b := NewBus()
	dev := &stubMMIO{base: 0xB8000, size: 0x4000, mem: make([]byte, 0x4000)}
	b.MapMMIO(0xB8000, 0xBBFFF, 0, dev)
	b.WriteByte(0xB8000, 0x07)
	v, _ := b.ReadByte(0xB8000)
	if v != 0x07 {
		t.Fatalf("MMIO write/read mismatch: got %#x", v)
	}
	// RAM beneath the MMIO window must be untouched.
	if b.mem[0xB8000] != 0 {
		t.Fatalf("MMIO write leaked into backing RAM")
	}
}

type stubIO struct{ last uint8 }

func (s *stubIO) InByte(port uint16) uint8     { return s.last }
func (s *stubIO) OutByte(port uint16, v uint8) { s.last = v }

func TestBusPortDispatch(t *testing.T) {
	b := NewBus()
	dev := &stubIO{}
	b.MapPort(PortPPIPortB, dev)
	b.OutByte(PortPPIPortB, 0x55)
	if got := b.InByte(PortPPIPortB); got != 0x55 {
		t.Fatalf("port dispatch: got %#x, want 0x55", got)
	}
}

func TestBusUnmappedPortFloats(t *testing.T) {
	b := NewBus()
	if got := b.InByte(0x1FF); got != 0xFF {
		t.Fatalf("unmapped port: got %#x, want 0xFF", got)
	}
}

func TestBusResetPreservesROM(t *testing.T) {
	b := NewBus()
	b.LoadROM(0xF0000, []byte{0xEA}, 0)
	b.WriteByte(0x1000, 0xAB)
	b.Reset()
	if v, _ := b.ReadByte(0x1000); v != 0 {
		t.Fatalf("Reset left conventional RAM dirty: got %#x", v)
	}
	if v, _ := b.ReadByte(0xF0000); v != 0xEA {
		t.Fatalf("Reset clobbered ROM content: got %#x", v)
	}
}
