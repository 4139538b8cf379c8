// device_pit.go - Intel 8253/8254 Programmable Interval Timer.
//
// Three independent 16-bit down-counters driven from the system clock
// (1.193182 MHz on a PC/XT). Channel 0 feeds IRQ0 through the PIC,
// channel 1 pulses the DMA controller's DRAM refresh request once per
// terminal count, and channel 2's output gates the PC speaker (PPI port
// 0x61 bit 0 drives the gate; the raw square wave itself is exposed via
// SpeakerOutput for the audio tap in audio_tap.go). The channel state
// machine (reload timing, LSB/MSB/LSB-then-MSB access, latch command,
// and the 8253-vs-8254 odd-reload asymmetry in mode 3) is ported from
// MartyPC's core/src/devices/pit.rs, simplified to the parts of that
// state machine observable from the PC/XT's three fixed wiring points
// rather than the original's fully general per-channel gate modeling.

package main

// PitType distinguishes the 8253 (PC/XT) from the 8254 (AT and later),
// which differ in how an odd reload value is split across the two
// half-periods of mode 3's square wave.
type PitType int

const (
	Pit8253 PitType = iota
	Pit8254
)

type pitChannelMode int

const (
	pitModeTerminalCount pitChannelMode = iota
	pitModeOneShot
	pitModeRateGenerator
	pitModeSquareWave
	pitModeSoftwareStrobe
	pitModeHardwareStrobe
)

type pitAccessMode int

const (
	pitAccessLatch pitAccessMode = iota
	pitAccessLSB
	pitAccessMSB
	pitAccessLSBMSB
)

type pitLoadState int

const (
	pitLoadNone pitLoadState = iota
	pitLoadWaitingMSB
)

type pitChannel struct {
	mode       pitChannelMode
	access     pitAccessMode
	bcd        bool
	reload     uint16
	counter    uint16
	output     bool
	gate       bool
	loadState  pitLoadState
	loadLSB    uint8
	armed      bool // a reload value has been programmed at least once
	latched    bool
	latchValue uint16
	readMSBNext bool
}

// PIT is the three-channel 8253/8254 timer.
type PIT struct {
	ptype    PitType
	channels [3]pitChannel

	onChannel0Output func(bool) // wired to the PIC's IRQ0
	onChannel1Pulse  func()     // wired to DMA channel 0 refresh request
	speakerOutput    bool       // channel 2's raw square wave
}

// NewPIT constructs a PIT of the given silicon type (8253 for PC/XT).
func NewPIT(ptype PitType) *PIT {
	p := &PIT{ptype: ptype}
	p.Reset()
	return p
}

func (p *PIT) Reset() {
	for i := range p.channels {
		p.channels[i] = pitChannel{gate: true}
	}
	p.channels[2].gate = false // speaker gate starts low until PPI enables it
	p.speakerOutput = false
}

// SetChannel0OutputHandler wires channel 0's output transitions to the PIC.
func (p *PIT) SetChannel0OutputHandler(fn func(bool)) { p.onChannel0Output = fn }

// SetChannel1PulseHandler wires channel 1's terminal-count pulses to DMA refresh.
func (p *PIT) SetChannel1PulseHandler(fn func()) { p.onChannel1Pulse = fn }

// SetChannel2Gate mirrors PPI port 0x61 bit 0 into the channel 2 gate input.
func (p *PIT) SetChannel2Gate(high bool) { p.channels[2].gate = high }

// SpeakerOutput returns channel 2's current raw square-wave level.
func (p *PIT) SpeakerOutput() bool { return p.speakerOutput }

func (p *PIT) InByte(port uint16) uint8 {
	switch port {
	case PortPITChannel0:
		return p.dataRead(0)
	case PortPITChannel1:
		return p.dataRead(1)
	case PortPITChannel2:
		return p.dataRead(2)
	default:
		return 0xFF
	}
}

func (p *PIT) OutByte(port uint16, value uint8) {
	switch port {
	case PortPITCommand:
		p.controlWrite(value)
	case PortPITChannel0:
		p.dataWrite(0, value)
	case PortPITChannel1:
		p.dataWrite(1, value)
	case PortPITChannel2:
		p.dataWrite(2, value)
	}
}

func (p *PIT) controlWrite(b uint8) {
	sel := b >> 6
	if sel == 3 {
		return // read-back command, not used on the PC/XT's 8253
	}
	ch := &p.channels[sel]
	accessField := (b >> 4) & 3
	if accessField == 0 {
		// Counter latch command: freeze the current counting-element
		// value for the next one or two reads without disturbing counting.
		ch.latched = true
		ch.latchValue = ch.counter
		return
	}
	ch.mode = pitChannelMode((b >> 1) & 7 % 6)
	ch.bcd = b&1 != 0
	switch accessField {
	case 1:
		ch.access = pitAccessLSB
	case 2:
		ch.access = pitAccessMSB
	default:
		ch.access = pitAccessLSBMSB
	}
	ch.loadState = pitLoadNone
	ch.armed = false
}

func (p *PIT) dataWrite(n int, value uint8) {
	ch := &p.channels[n]
	switch ch.access {
	case pitAccessLSB:
		ch.reload = (ch.reload & 0xFF00) | uint16(value)
		p.reloadChannel(n)
	case pitAccessMSB:
		ch.reload = (ch.reload & 0x00FF) | uint16(value)<<8
		p.reloadChannel(n)
	default: // LSB then MSB
		if ch.loadState == pitLoadNone {
			ch.loadLSB = value
			ch.loadState = pitLoadWaitingMSB
		} else {
			ch.reload = uint16(ch.loadLSB) | uint16(value)<<8
			ch.loadState = pitLoadNone
			p.reloadChannel(n)
		}
	}
}

// reloadChannel loads the counting element from the reload register. Mode
// 2 and mode 3 reload immediately only on the first program after a mode
// set; subsequent reloads (while counting) take effect on the next
// terminal count, which this simplified model applies immediately since
// we do not expose mid-count software reads of a stale counter value.
func (p *PIT) reloadChannel(n int) {
	ch := &p.channels[n]
	reload := ch.reload
	if reload == 0 {
		reload = 0x10000 & 0xFFFF // a reload of 0 means 65536
	}
	ch.counter = reload
	ch.armed = true
	if ch.mode == pitModeSquareWave {
		ch.output = true
	} else if ch.mode == pitModeTerminalCount {
		ch.output = false
	}
}

func (p *PIT) dataRead(n int) uint8 {
	ch := &p.channels[n]
	var value uint16
	if ch.latched {
		value = ch.latchValue
	} else {
		value = ch.counter
	}
	switch ch.access {
	case pitAccessLSB:
		return uint8(value)
	case pitAccessMSB:
		return uint8(value >> 8)
	default:
		if !ch.readMSBNext {
			ch.readMSBNext = true
			return uint8(value)
		}
		ch.readMSBNext = false
		ch.latched = false
		return uint8(value >> 8)
	}
}

// Tick advances all three channels by ticks system clocks.
func (p *PIT) Tick(ticks int) {
	for n := range p.channels {
		p.tickChannel(n, ticks)
	}
}

func (p *PIT) tickChannel(n int, ticks int) {
	ch := &p.channels[n]
	if !ch.armed || !ch.gate {
		return
	}
	for i := 0; i < ticks; i++ {
		if ch.counter == 0 {
			ch.counter = ch.reload // a reload of 0 wraps to 0xFFFF below: 65536 ticks
		}
		ch.counter--

		switch ch.mode {
		case pitModeRateGenerator:
			if ch.counter == 1 {
				p.pulseOutput(n)
			}
		case pitModeSquareWave:
			half := ch.reload / 2
			if p.ptype == Pit8254 && ch.reload%2 != 0 {
				// 8254 mode 3 odd-reload asymmetry: the high half-period
				// runs one cycle longer than the low half-period.
				if ch.output {
					half++
				}
			}
			if half == 0 {
				half = 1
			}
			if ch.counter == half {
				ch.output = !ch.output
				p.setOutput(n, ch.output)
			}
		case pitModeTerminalCount:
			if ch.counter == 0 && !ch.output {
				ch.output = true
				p.setOutput(n, true)
			}
		default:
			if ch.counter == 0 {
				p.pulseOutput(n)
			}
		}
	}
}

func (p *PIT) pulseOutput(n int) {
	p.setOutput(n, true)
	p.setOutput(n, false)
}

func (p *PIT) setOutput(n int, high bool) {
	switch n {
	case 0:
		if p.onChannel0Output != nil {
			p.onChannel0Output(high)
		}
	case 1:
		if high && p.onChannel1Pulse != nil {
			p.onChannel1Pulse()
		}
	case 2:
		p.speakerOutput = high
	}
}
