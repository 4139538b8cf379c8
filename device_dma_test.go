package main

import "testing"

type fakeDMADevice struct {
	readBytes []uint8
	readPos   int
	written   []uint8
	tcHit     bool
}

func (f *fakeDMADevice) DMAReadByte() (uint8, bool) {
	if f.readPos >= len(f.readBytes) {
		return 0, false
	}
	b := f.readBytes[f.readPos]
	f.readPos++
	return b, true
}

func (f *fakeDMADevice) DMAWriteByte(v uint8) { f.written = append(f.written, v) }
func (f *fakeDMADevice) DMATerminalCount()    { f.tcHit = true }

func TestDMATransferPeripheralToMemory(t *testing.T) {
	d := NewDMAController()
	dev := &fakeDMADevice{readBytes: []uint8{0xAA, 0xBB}}
	d.AttachPeripheral(2, dev)

	// Program channel 2: address 0x1000, count 1 (transfers 2 bytes: count+1).
	d.OutByte(PortDMAClearFF, 0)
	d.OutByte(PortDMAChan2Addr, 0x00)
	d.OutByte(PortDMAChan2Addr, 0x10)
	d.OutByte(PortDMAClearFF, 0)
	d.OutByte(PortDMAChan2Count, 0x01)
	d.OutByte(PortDMAChan2Count, 0x00)
	d.OutByte(PortDMAMode, 0x02|(1<<2)) // channel 2, write transfer (peripheral->memory)
	d.OutByte(PortDMAMaskAll, 0x00)     // unmask all channels

	d.RequestService(2)

	bus := NewBus()
	held := false
	d.Tick(1, bus, func(h bool) { held = h })
	if held {
		t.Fatal("hold should be released after Tick returns")
	}
	v, _ := bus.ReadByte(0x1000)
	if v != 0xAA {
		t.Fatalf("byte at 0x1000 = %#x, want 0xAA", v)
	}
}

func TestDMARequestRefreshInvokesHandler(t *testing.T) {
	d := NewDMAController()
	called := false
	d.SetRefreshHandler(func() { called = true })
	d.RequestRefresh()
	if !called {
		t.Fatal("refresh handler was not invoked")
	}
}

func TestDMAPageRegisterRoundTrip(t *testing.T) {
	d := NewDMAController()
	d.OutByte(PortDMAPage2, 0x07)
	if got := d.InByte(PortDMAPage2); got != 0x07 {
		t.Fatalf("page register = %#x, want 0x07", got)
	}
}
