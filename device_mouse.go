// device_mouse.go - Microsoft-protocol serial mouse, attached to COM2 by
// convention (PortSerial2Base), matching period PC/XT mouse driver
// expectations.
//
// Each mouse event packet is three bytes: the first has its top two bits
// set to 01 (identifying it as a sync byte) with the left/right button
// state and the top two bits of each signed 8-bit delta; the following
// two bytes carry the low 6 bits of the X and Y deltas respectively.
package main

// SerialMouse packetizes motion/button events and feeds them to an
// attached Serial8250 as received bytes.
type SerialMouse struct {
	uart *Serial8250
}

func NewSerialMouse(uart *Serial8250) *SerialMouse {
	return &SerialMouse{uart: uart}
}

func (m *SerialMouse) Reset() {}

// ReportMotion encodes one Microsoft-protocol packet for a relative
// motion dx,dy (each clamped to -64..63) with the
// given button state and pushes it to the UART's receive queue.
func (m *SerialMouse) ReportMotion(dx, dy int, leftDown, rightDown bool) {
	clamp := func(v int) int8 {
		if v > 63 {
			v = 63
		}
		if v < -64 {
			v = -64
		}
		return int8(v)
	}
	x, y := clamp(dx), clamp(dy)

	b0 := uint8(0x40)
	if leftDown {
		b0 |= 0x20
	}
	if rightDown {
		b0 |= 0x10
	}
	b0 |= uint8(x>>6) & 0x03 << 2 // top 2 bits of X delta
	b0 |= uint8(y>>6) & 0x03      // top 2 bits of Y delta

	b1 := uint8(x) & 0x3F
	b2 := uint8(y) & 0x3F

	if m.uart != nil {
		m.uart.PushReceived(b0)
		m.uart.PushReceived(b1)
		m.uart.PushReceived(b2)
	}
}

// Identify sends the "M" identification byte a Microsoft mouse-aware
// driver polls for immediately after DTR is raised during detection.
func (m *SerialMouse) Identify() {
	if m.uart != nil {
		m.uart.PushReceived('M')
	}
}
