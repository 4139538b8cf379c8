// device_ppi.go - Intel 8255 Programmable Peripheral Interface, wired the
// way the PC/XT motherboard wires it: port A reads the latched keyboard
// scan code, port B is almost entirely control bits (speaker gate and
// data, keyboard clock/clear, NMI/parity enables, cassette motor), and
// port C exposes the high/low DIP switch nibble selected by PB bit 2 plus
// the PIT channel-2-output readback bit.

package main

// ppiPortBBit enumerates the control meaning of each PB bit on a PC/XT
// motherboard (the 5150/5160 wiring, not the later AT 8255 reassignment).
const (
	ppiPB_Timer2GateSpeaker = 1 << 0
	ppiPB_SpeakerData       = 1 << 1
	ppiPB_SwitchSelect      = 1 << 2 // 0: PC low nibble; 1: PC high nibble (5150 Rev A convention varies; we use the common one)
	ppiPB_CassetteMotorOff  = 1 << 3
	ppiPB_EnableRAMParityNMI = 1 << 4
	ppiPB_EnableIOChannelNMI = 1 << 5
	ppiPB_KeyboardClockOff  = 1 << 6
	ppiPB_KeyboardClear     = 1 << 7
)

// PPI is the keyboard/speaker/DIP-switch glue chip.
type PPI struct {
	portAData uint8 // latched keyboard scan code
	portB     uint8
	portC     uint8

	keyboardClockEnabled bool
	keyboardHasByte      bool

	dipSwitches    uint8 // low nibble: installed floppy/video/memory config
	dipSwitchesHi  uint8

	pit             *PIT
	speakerEnabled  func(bool)
	nmiEnabled      func(bool)
	onKeyboardClear func()
}

// NewPPI constructs an 8255 in its PC/XT wiring, with the given DIP switch
// settings (conventionally: bit0=1 no floppy boot diskette present is
// inverted per BIOS convention, bits describing video mode and RAM banks).
func NewPPI(dipLow, dipHigh uint8) *PPI {
	return &PPI{dipSwitches: dipLow, dipSwitchesHi: dipHigh}
}

func (p *PPI) Reset() {
	p.portB = 0
	p.portC = 0
	p.keyboardClockEnabled = true
	p.keyboardHasByte = false
}

// AttachPIT lets the PPI gate and read back PIT channel 2 (the speaker tone
// generator) per PB bits 0/1.
func (p *PPI) AttachPIT(pit *PIT) { p.pit = pit }

// SetSpeakerEnabledHandler is called whenever the gate+data AND condition
// driving the speaker amplifier changes.
func (p *PPI) SetSpeakerEnabledHandler(fn func(bool)) { p.speakerEnabled = fn }

// SetNMIEnabledHandler is called when the parity/bus-error NMI enable
// bits change, wired to the machine's NMI gating logic.
func (p *PPI) SetNMIEnabledHandler(fn func(bool)) { p.nmiEnabled = fn }

// SetKeyboardClearHandler is invoked when software pulses PB7 to
// acknowledge and clear a pending keyboard scan code.
func (p *PPI) SetKeyboardClearHandler(fn func()) { p.onKeyboardClear = fn }

// PushScanCode latches a new scan code into port A and requests IRQ1 via
// the caller (machine.go wires this through the PIC).
func (p *PPI) PushScanCode(code uint8) {
	p.portAData = code
	p.keyboardHasByte = true
}

func (p *PPI) InByte(port uint16) uint8 {
	switch port {
	case PortPPIPortA:
		return p.portAData
	case PortPPIPortB:
		return p.portB
	case PortPPIPortC:
		if p.portB&ppiPB_SwitchSelect != 0 {
			return (p.dipSwitchesHi & 0x0F) | p.statusNibble()
		}
		return (p.dipSwitches & 0x0F) | p.statusNibble()
	default:
		return 0xFF
	}
}

// statusNibble supplies the high nibble of port C: bit 5 is the PIT
// channel 2 output readback; bits 4, 6 and 7 always read 0.
func (p *PPI) statusNibble() uint8 {
	var v uint8
	if p.pit != nil && p.pit.SpeakerOutput() {
		v |= 1 << 5 // PC_SPK bit, CRT refresh toggle on some boards aliases here too
	}
	return v
}

func (p *PPI) OutByte(port uint16, value uint8) {
	switch port {
	case PortPPIPortB:
		prevSpeaker := p.speakerGateAndData()
		p.portB = value
		if p.pit != nil {
			p.pit.SetChannel2Gate(value&ppiPB_Timer2GateSpeaker != 0)
		}
		if newSpeaker := p.speakerGateAndData(); newSpeaker != prevSpeaker && p.speakerEnabled != nil {
			p.speakerEnabled(newSpeaker)
		}
		if p.nmiEnabled != nil {
			p.nmiEnabled(value&(ppiPB_EnableRAMParityNMI|ppiPB_EnableIOChannelNMI) != 0)
		}
		if value&ppiPB_KeyboardClear != 0 {
			p.keyboardHasByte = false
			if p.onKeyboardClear != nil {
				p.onKeyboardClear()
			}
		}
		p.keyboardClockEnabled = value&ppiPB_KeyboardClockOff == 0
	}
}

func (p *PPI) speakerGateAndData() bool {
	return p.portB&ppiPB_Timer2GateSpeaker != 0 && p.portB&ppiPB_SpeakerData != 0
}

// Tick implements Ticker; the 8255 has no internal counting state.
func (p *PPI) Tick(ticks int) {}
