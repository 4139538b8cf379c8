package main

import "testing"

func TestPPIKeyboardScanCodeReadback(t *testing.T) {
	p := NewPPI(0x0C, 0x00)
	p.PushScanCode(0x1E) // 'A' make code
	if got := p.InByte(PortPPIPortA); got != 0x1E {
		t.Fatalf("port A = %#x, want 0x1E", got)
	}
}

func TestPPISpeakerEnableTracksGateAndData(t *testing.T) {
	p := NewPPI(0, 0)
	var enabled bool
	p.SetSpeakerEnabledHandler(func(on bool) { enabled = on })
	p.OutByte(PortPPIPortB, ppiPB_Timer2GateSpeaker|ppiPB_SpeakerData)
	if !enabled {
		t.Fatal("speaker should be enabled once both gate and data bits are set")
	}
	p.OutByte(PortPPIPortB, ppiPB_Timer2GateSpeaker)
	if enabled {
		t.Fatal("speaker should disable once the data bit clears")
	}
}

func TestPPIDIPSwitchSelectNibble(t *testing.T) {
	p := NewPPI(0x0A, 0x05)
	low := p.InByte(PortPPIPortC) & 0x0F
	if low != 0x0A {
		t.Fatalf("low DIP nibble = %#x, want 0xA", low)
	}
	p.OutByte(PortPPIPortB, ppiPB_SwitchSelect)
	hi := p.InByte(PortPPIPortC) & 0x0F
	if hi != 0x05 {
		t.Fatalf("high DIP nibble = %#x, want 0x5", hi)
	}
}
