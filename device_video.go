// device_video.go - Shared video adapter contract.
//
// Every display card plugged into the machine exposes the same narrow
// surface: its MMIO framebuffer range(s), its port set, a tick entrypoint
// driven from the dot clock rather than the CPU clock directly, an IRQ
// line for vertical retrace (EGA/VGA only; MDA/CGA/TGA never interrupt),
// and a read-only framebuffer snapshot for the renderer. machine.go holds
// one configured adapter and drives it through this interface; its
// tickDevices additionally checks an EGA/VGA adapter for a pending
// retrace interrupt.

package main

// VideoAdapter is implemented by every display card (device_video_mda_cga.go,
// device_video_ega_vga.go).
type VideoAdapter interface {
	MMIODevice
	IODevice
	Ticker
	Resettable

	// IRQLine returns the adapter's vertical-retrace IRQ number, or -1 if
	// the adapter never interrupts (true of MDA, CGA, and TGA).
	IRQLine() int

	// Framebuffer returns a read-only snapshot of display memory plus its
	// extents, for the renderer to rasterize. The core takes no dependency
	// on pixel format; that translation is entirely the renderer's concern.
	Framebuffer() FramebufferSnapshot
}

// FramebufferSnapshot is a read-only view of an adapter's display memory,
// handed to the (not-implemented-here) renderer.
type FramebufferSnapshot struct {
	Data          []byte
	Columns, Rows int  // text-mode character grid, zero in graphics modes
	Width, Height int  // pixel dimensions in the current mode
	GraphicsMode  bool
}

// videoAdapterSlot names the mutually-exclusive card classes a machine
// configuration may populate. At most one CGA-family card (CGA or TGA) is
// installed at a time: MachineConfig carries a single VideoStandard, so a
// configuration cannot name both, since the wiring when both share the
// 0x3D0-0x3DF/0x3DA port footprint is unspecified by the sources this
// core is grounded on.
type videoAdapterSlot int

const (
	videoSlotMDA videoAdapterSlot = iota
	videoSlotCGA
	videoSlotTGA
	videoSlotEGA
	videoSlotVGA
)
