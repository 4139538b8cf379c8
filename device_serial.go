// device_serial.go - 8250 UART, one instance per COM port.
//
// Models the register set software actually probes: THR/RBR (shared with
// the divisor-latch low byte when DLAB is set), IER (shared with divisor
// latch high byte), IIR, LCR (line control, including the DLAB bit), MCR,
// LSR, and MSR. Baud-rate timing is not simulated: a THR write appends
// the byte to the transmit buffer at once, LSR keeps reporting THR empty,
// and the "THR empty" interrupt is raised at write time if IER enables
// it. Tick does nothing, so that interrupt is never re-asserted later.
package main

const (
	uartIERRxData  = 1 << 0
	uartIERThrEmpty = 1 << 1
	uartIERLineStatus = 1 << 2
	uartIERModemStatus = 1 << 3

	uartLCRDLAB = 1 << 7

	uartLSRDataReady    = 1 << 0
	uartLSROverrun      = 1 << 1
	uartLSRThrEmpty     = 1 << 5
	uartLSRTxEmpty      = 1 << 6

	uartIIRNoInterrupt = 0x01
	uartIIRThrEmpty    = 0x02
	uartIIRRxData      = 0x04
)

// Serial8250 is a single UART instance; the machine wires one to COM1 and
// (optionally) a second to COM2, where a serial mouse may instead be
// attached in place of a real backing transport.
type Serial8250 struct {
	base     uint16
	divisor  uint16
	ier      uint8
	lcr      uint8
	mcr      uint8
	lsr      uint8
	msr      uint8

	rxQueue []uint8
	txOut   []uint8 // bytes transmitted, drained by whatever is wired as the DCE (device_mouse.go, a pty, or nothing)

	onIRQ func(bool)
}

func NewSerial8250(base uint16) *Serial8250 {
	s := &Serial8250{base: base}
	s.Reset()
	return s
}

func (s *Serial8250) Reset() {
	s.divisor = 0x0C // 9600 baud at a 1.8432MHz UART clock, the BIOS default
	s.ier, s.lcr, s.mcr = 0, 0, 0
	s.lsr = uartLSRThrEmpty | uartLSRTxEmpty
	s.msr = 0
	s.rxQueue = s.rxQueue[:0]
	s.txOut = s.txOut[:0]
}

func (s *Serial8250) SetIRQHandler(fn func(bool)) { s.onIRQ = fn }

// PushReceived enqueues a byte as if it had arrived over the wire (used by
// device_mouse.go to deliver protocol bytes).
func (s *Serial8250) PushReceived(b uint8) {
	s.rxQueue = append(s.rxQueue, b)
	s.lsr |= uartLSRDataReady
	s.maybeInterrupt(uartIERRxData)
}

// DrainTransmitted returns and clears bytes written to THR since the last
// call, for whatever DCE is attached to observe.
func (s *Serial8250) DrainTransmitted() []uint8 {
	out := s.txOut
	s.txOut = nil
	return out
}

func (s *Serial8250) InByte(port uint16) uint8 {
	switch port - s.base {
	case 0:
		if s.lcr&uartLCRDLAB != 0 {
			return uint8(s.divisor)
		}
		return s.readRBR()
	case 1:
		if s.lcr&uartLCRDLAB != 0 {
			return uint8(s.divisor >> 8)
		}
		return s.ier
	case 2:
		return s.iir()
	case 3:
		return s.lcr
	case 4:
		return s.mcr
	case 5:
		return s.readLSR()
	case 6:
		return s.msr
	default:
		return 0xFF
	}
}

func (s *Serial8250) OutByte(port uint16, v uint8) {
	switch port - s.base {
	case 0:
		if s.lcr&uartLCRDLAB != 0 {
			s.divisor = (s.divisor & 0xFF00) | uint16(v)
			return
		}
		s.txOut = append(s.txOut, v)
		s.maybeInterrupt(uartIERThrEmpty)
	case 1:
		if s.lcr&uartLCRDLAB != 0 {
			s.divisor = (s.divisor & 0x00FF) | uint16(v)<<8
			return
		}
		s.ier = v
	case 3:
		s.lcr = v
	case 4:
		s.mcr = v
	}
}

func (s *Serial8250) readRBR() uint8 {
	if len(s.rxQueue) == 0 {
		return 0
	}
	b := s.rxQueue[0]
	s.rxQueue = s.rxQueue[1:]
	if len(s.rxQueue) == 0 {
		s.lsr &^= uartLSRDataReady
	}
	return b
}

func (s *Serial8250) readLSR() uint8 {
	v := s.lsr
	s.lsr &^= uartLSROverrun
	return v
}

func (s *Serial8250) iir() uint8 {
	if s.ier&uartIERRxData != 0 && len(s.rxQueue) > 0 {
		return uartIIRRxData
	}
	if s.ier&uartIERThrEmpty != 0 && s.lsr&uartLSRThrEmpty != 0 {
		return uartIIRThrEmpty
	}
	return uartIIRNoInterrupt
}

func (s *Serial8250) maybeInterrupt(source uint8) {
	if s.ier&source != 0 && s.onIRQ != nil {
		s.onIRQ(true)
	}
}

// Tick implements Ticker and does nothing: THR is always immediately
// empty in this model (no simulated bit-time), and the THR-empty
// interrupt is raised only when THR is written.
func (s *Serial8250) Tick(ticks int) {}
