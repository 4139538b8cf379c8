// device_video_ega_vga.go - EGA/VGA planar adapter.
//
// The core models only what the rest of the machine can observe through
// the bus: the 0x3C0-0x3CF register window (attribute controller via the
// index/data flip-flop at 0x3C0, sequencer at 0x3C4/3C5, graphics
// controller at 0x3CE/3CF, and a DAC/CRTC subset at 0x3C6-0x3C9 and
// 0x3D4/3D5 mirrored from the CGA-style CRTC window), the planar 256KB
// window at A0000-AFFFF, and the vertical-retrace interrupt EGA/VGA cards
// (unlike MDA/CGA/TGA) are able to raise. Full palette/plane-write-mode
// pixel composition is the renderer's job, not the core's; this adapter
// stores raw plane bytes and the register state needed to interpret them.
package main

const egaVgaMemSize = EGAVGAMemEnd - EGAVGAMemBase + 1

// EGAVGAAdapter models the shared register surface of EGA and VGA cards;
// the vga flag only gates the few registers (DAC, extra sequencer/GC
// registers) that exist on VGA but not EGA.
type EGAVGAAdapter struct {
	planes      [4][]byte
	crtc        crtc
	attrIndex   uint8
	attrFlip    bool
	attrRegs    [32]uint8
	seqIndex    uint8
	seqRegs     [8]uint8
	gcIndex     uint8
	gcRegs      [16]uint8
	dacIndex    uint8
	dacRegs     [768]uint8 // VGA only: 256 entries * 3 (R,G,B); 0x3C9 uses dacIndex as a byte offset, so only bytes 0-255 are reached
	vga         bool
	retrace     bool
	irqPending  bool
	irqEnabled  bool
	dotTick     int
}

// NewEGAVGAAdapter returns an adapter in EGA or VGA mode; vga also
// enables the DAC register block.
func NewEGAVGAAdapter(vga bool) *EGAVGAAdapter {
	a := &EGAVGAAdapter{vga: vga}
	for i := range a.planes {
		a.planes[i] = make([]byte, egaVgaMemSize)
	}
	a.Reset()
	return a
}

func (a *EGAVGAAdapter) Reset() {
	a.crtc = crtc{}
	a.attrIndex, a.attrFlip = 0, false
	a.seqIndex, a.gcIndex, a.dacIndex = 0, 0, 0
	a.irqPending, a.irqEnabled = false, false
}

func (a *EGAVGAAdapter) Contains(addr uint32) bool {
	return addr >= EGAVGAMemBase && addr <= EGAVGAMemEnd
}

// ReadMMIO reads the plane named by the graphics controller's
// read-map-select register (index 4, low 2 bits); WriteMMIO writes every
// plane enabled in the sequencer's map-mask register (index 2).
func (a *EGAVGAAdapter) ReadMMIO(addr uint32) uint8 {
	plane := a.gcRegs[4] & 0x03
	return a.planes[plane][addr-EGAVGAMemBase]
}

func (a *EGAVGAAdapter) WriteMMIO(addr uint32, v uint8) {
	mask := a.seqRegs[2]
	off := addr - EGAVGAMemBase
	for p := 0; p < 4; p++ {
		if mask&(1<<p) != 0 {
			a.planes[p][off] = v
		}
	}
}

func (a *EGAVGAAdapter) InByte(port uint16) uint8 {
	switch port {
	case 0x3C0: // attribute controller index/data flip-flop
		return a.attrIndex
	case 0x3C1:
		return a.attrRegs[a.attrIndex&0x1F]
	case 0x3C4:
		return a.seqIndex
	case 0x3C5:
		return a.seqRegs[a.seqIndex&0x07]
	case 0x3CE:
		return a.gcIndex
	case 0x3CF:
		return a.gcRegs[a.gcIndex&0x0F]
	case 0x3C7, 0x3C8: // DAC state/write-index, VGA only
		return a.dacIndex
	case 0x3C9:
		if !a.vga {
			return 0xFF
		}
		v := a.dacRegs[int(a.dacIndex)]
		a.dacIndex++
		return v
	case 0x3D4, 0x3B4:
		return a.crtc.index
	case 0x3D5, 0x3B5:
		return a.crtc.readData()
	case 0x3DA, 0x3BA: // input status 1: retrace + display-disable bits
		var s uint8
		if a.retrace {
			s |= 1 << 3
		}
		a.attrFlip = false // reading this port resets the attribute flip-flop
		return s
	default:
		return 0xFF
	}
}

func (a *EGAVGAAdapter) OutByte(port uint16, v uint8) {
	switch port {
	case 0x3C0:
		if !a.attrFlip {
			a.attrIndex = v
		} else {
			a.attrRegs[a.attrIndex&0x1F] = v
		}
		a.attrFlip = !a.attrFlip
	case 0x3C4:
		a.seqIndex = v
	case 0x3C5:
		a.seqRegs[a.seqIndex&0x07] = v
	case 0x3C7, 0x3C8:
		a.dacIndex = v
	case 0x3C9:
		if a.vga {
			a.dacRegs[int(a.dacIndex)] = v
			a.dacIndex++
		}
	case 0x3CE:
		a.gcIndex = v
	case 0x3CF:
		a.gcRegs[a.gcIndex&0x0F] = v
	case 0x3D4, 0x3B4:
		a.crtc.writeIndex(v)
	case 0x3D5, 0x3B5:
		a.crtc.writeData(v)
	}
}

// IRQLine returns 2, the PC/XT wiring for EGA/VGA vertical retrace; MDA,
// CGA, and TGA return -1 from their own adapters since they never
// interrupt on this bus.
func (a *EGAVGAAdapter) IRQLine() int { return 2 }

func (a *EGAVGAAdapter) Tick(ticks int) {
	a.dotTick += ticks
	const retraceEveryTicks = 16688 // approximates a 60Hz vertical retrace under the shared tick convention
	if a.dotTick >= retraceEveryTicks {
		a.dotTick -= retraceEveryTicks
		a.retrace = !a.retrace
		if a.retrace {
			a.irqPending = true
		}
	}
}

// AcknowledgeRetraceIRQ is called by the machine loop's IRQ2 handling
// after it has delivered the pending vertical-retrace interrupt.
func (a *EGAVGAAdapter) AcknowledgeRetraceIRQ() { a.irqPending = false }

func (a *EGAVGAAdapter) RetraceIRQPending() bool { return a.irqPending }

func (a *EGAVGAAdapter) Framebuffer() FramebufferSnapshot {
	// Flatten the four bitplanes into one buffer for the renderer; actual
	// chain-4/odd-even mode interpretation is the renderer's job.
	flat := make([]byte, egaVgaMemSize*4)
	for p := 0; p < 4; p++ {
		copy(flat[p*egaVgaMemSize:], a.planes[p])
	}
	w, h := 640, 350
	if a.vga {
		w, h = 640, 480
	}
	return FramebufferSnapshot{Data: flat, Width: w, Height: h, GraphicsMode: true}
}
