package main

import "testing"

func TestPICInitializationSequence(t *testing.T) {
	p := NewPIC()
	p.writeCommand(0x13)  // ICW1: edge-triggered, single, ICW4 needed
	p.writeData(0x08)     // ICW2: vector base 0x08
	p.writeData(0x0B)     // ICW4: 8088 mode, auto-EOI
	if p.intOffset != 0x08 {
		t.Fatalf("intOffset = %#x, want 0x08", p.intOffset)
	}
	if !p.autoEOI {
		t.Fatal("expected auto-EOI enabled")
	}
	if p.initState != picNormal {
		t.Fatalf("PIC left in init state %d after ICW4", p.initState)
	}
}

func TestPICRequestAndAcknowledge(t *testing.T) {
	p := NewPIC()
	p.writeCommand(0x13)
	p.writeData(0x08)
	p.writeData(0x0B) // auto-EOI, so ISR self-clears after Acknowledge
	p.setIMR(0x00)     // unmask everything

	p.RequestInterrupt(0)
	if !p.QueryInterruptLine() {
		t.Fatal("INTR should be asserted after an unmasked request")
	}
	vec := p.Acknowledge()
	if vec != 0x08 {
		t.Fatalf("vector = %#x, want 0x08 for IRQ0", vec)
	}
	if p.isr != 0 {
		t.Fatalf("ISR = %#x, want 0 (auto-EOI should have cleared it)", p.isr)
	}
}

func TestPICMaskedIRQDoesNotAssertINTR(t *testing.T) {
	p := NewPIC()
	p.writeCommand(0x13)
	p.writeData(0x08)
	p.writeData(0x08)
	p.setIMR(0xFF) // mask everything
	p.RequestInterrupt(3)
	if p.QueryInterruptLine() {
		t.Fatal("INTR should stay low while the IRQ is masked")
	}
	if p.stats[3].imrMaskedCount != 1 {
		t.Fatalf("imrMaskedCount = %d, want 1", p.stats[3].imrMaskedCount)
	}
}

func TestPICSpuriousAcknowledge(t *testing.T) {
	p := NewPIC()
	p.writeCommand(0x13)
	p.writeData(0x08)
	p.writeData(0x08)
	vec := p.Acknowledge() // nothing pending
	if vec != (picSpuriousIRQ | 0x08) {
		t.Fatalf("vector = %#x, want spurious IRQ7 vector", vec)
	}
}

func TestPICSpecificEOIClearsOnlyThatLine(t *testing.T) {
	p := NewPIC()
	p.writeCommand(0x13)
	p.writeData(0x08)
	p.writeData(0x08)
	p.setIMR(0x00)
	p.RequestInterrupt(1)
	p.Acknowledge()
	if p.isr&(1<<1) == 0 {
		t.Fatal("ISR bit 1 should be set after acknowledge without auto-EOI")
	}
	p.writeCommand(0x60 | 1) // specific EOI for IRQ1
	if p.isr&(1<<1) != 0 {
		t.Fatal("specific EOI should have cleared ISR bit 1")
	}
}
