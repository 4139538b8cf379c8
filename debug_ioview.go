// debug_ioview.go - "io" monitor command: formats live device register
// state for display. Reaches the owning Machine through the focused CPU's
// debug adapter rather than threading a Machine pointer through every
// monitor command, so ExecuteCommand's dispatch table stays CPU-shaped.

package main

import "fmt"

func listIODevices() []string {
	return []string{"pic", "pit", "dma", "ppi", "fdc", "hdc", "serial1", "serial2", "video", "ems"}
}

// formatIOView renders a named device's register state as display lines.
// A cpu not backed by a Machine reports "no machine attached", and an
// unknown device name reports an "unknown device" line.
func formatIOView(cpu DebuggableCPU, name string) []string {
	d, ok := cpu.(*cpu8088Debugger)
	if !ok || d.machine == nil {
		return []string{"no machine attached"}
	}
	m := d.machine

	switch name {
	case "pic":
		return []string{fmt.Sprintf("IMR=%02X IRR=%02X ISR=%02X", m.PIC.imr, m.PIC.irr, m.PIC.isr)}
	case "pit":
		var lines []string
		for i, ch := range m.PIT.channels {
			lines = append(lines, fmt.Sprintf("ch%d: mode=%d reload=%04X counter=%04X out=%v",
				i, ch.mode, ch.reload, ch.counter, ch.output))
		}
		return lines
	case "dma":
		var lines []string
		for i, ch := range m.DMA.channels {
			lines = append(lines, fmt.Sprintf("ch%d: addr=%04X count=%04X mode=%d masked=%v",
				i, ch.currentAddr, ch.currentCount, ch.mode, ch.masked))
		}
		return lines
	case "ppi":
		return []string{fmt.Sprintf("portA(kbd)=%02X portB=%02X portC=%02X", m.PPI.portAData, m.PPI.portB, m.PPI.portC)}
	case "fdc":
		return []string{fmt.Sprintf("phase=%d msr=%02X", m.FDC.phase, m.FDC.msr())}
	case "hdc":
		return []string{fmt.Sprintf("state=%d status=%02X lastError=%d", m.HDC.state, m.HDC.statusRegister(), m.HDC.lastError)}
	case "serial1":
		return []string{fmt.Sprintf("LSR=%02X MSR=%02X IER=%02X", m.Serial1.lsr, m.Serial1.msr, m.Serial1.ier)}
	case "serial2":
		return []string{fmt.Sprintf("LSR=%02X MSR=%02X IER=%02X", m.Serial2.lsr, m.Serial2.msr, m.Serial2.ier)}
	case "video":
		if m.Video == nil {
			return []string{"no video adapter installed"}
		}
		fb := m.Video.Framebuffer()
		return []string{fmt.Sprintf("%dx%d graphics=%v irq=%d", fb.Width, fb.Height, fb.GraphicsMode, m.Video.IRQLine())}
	case "ems":
		return []string{fmt.Sprintf("mapped pages=%v", m.EMS.mappedPage)}
	default:
		return []string{fmt.Sprintf("unknown device: %s", name)}
	}
}
