package main

import "testing"

func TestPITChannel0ModeTwoPulsesIRQ(t *testing.T) {
	p := NewPIT(Pit8253)
	var pulses int
	p.SetChannel0OutputHandler(func(high bool) {
		if high {
			pulses++
		}
	})
	p.controlWrite(0x34) // channel 0, LSB/MSB, mode 2
	p.dataWrite(0, 4)
	p.dataWrite(0, 0)
	p.Tick(4)
	if pulses != 1 {
		t.Fatalf("pulses = %d, want 1 after a full reload period", pulses)
	}
}

func TestPITLatchFreezesCounterDuringReads(t *testing.T) {
	p := NewPIT(Pit8253)
	p.controlWrite(0x34)
	p.dataWrite(0, 10)
	p.dataWrite(0, 0)
	p.Tick(3)
	p.controlWrite(0x00) // latch channel 0
	before := uint16(p.dataRead(0)) | uint16(p.dataRead(0))<<8
	p.Tick(3)
	after := p.dataRead(0)
	_ = after
	if before == 0 {
		t.Fatal("latched counter value should not read as zero mid-count")
	}
}

func TestPITSquareWaveTogglesOutput(t *testing.T) {
	p := NewPIT(Pit8253)
	var toggles int
	var lastHigh bool
	first := true
	p.SetChannel0OutputHandler(func(high bool) {
		if first {
			first = false
			lastHigh = high
			return
		}
		if high != lastHigh {
			toggles++
			lastHigh = high
		}
	})
	p.controlWrite(0x36) // channel 0, LSB/MSB, mode 3 (square wave)
	p.dataWrite(0, 4)
	p.dataWrite(0, 0)
	for i := 0; i < 20; i++ {
		p.Tick(1)
	}
	if toggles == 0 {
		t.Fatal("square wave output never toggled")
	}
}

func TestPIT8254OddReloadAsymmetry(t *testing.T) {
	p8253 := NewPIT(Pit8253)
	p8254 := NewPIT(Pit8254)
	for _, p := range []*PIT{p8253, p8254} {
		p.controlWrite(0x36)
		p.dataWrite(0, 5)
		p.dataWrite(0, 0)
	}
	// Both should still run without panicking across an odd reload value;
	// the asymmetry itself is exercised via tickChannel's half-period
	// calculation, which only differs in the 8254 branch.
	for i := 0; i < 10; i++ {
		p8253.Tick(1)
		p8254.Tick(1)
	}
}
