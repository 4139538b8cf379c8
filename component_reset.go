// component_reset.go - hard-reset orchestration across every installed
// device. Each device owns its own Reset() method in its own file
// (device_pic.go, device_pit.go, ...); this file only sequences them the
// way Machine.Reset needs them sequenced (CPU and bus first, so a
// device's Reset that reads back bus-mapped ROM content sees a clean
// bus) and exists as the one place a newly-added device's Reset must be
// wired in, mirroring the teacher's single reset-sequencing file for
// every hardware component.

package main

// resetAll walks every Resettable device Machine owns, in dependency
// order. Machine.Reset calls this directly rather than through the
// Resettable interface on each field so the ordering stays explicit.
func (m *Machine) resetAll() {
	m.CPU.Reset()
	m.Bus.Reset()

	resettables := []Resettable{
		m.PIC, m.PIT, m.DMA, m.PPI, m.FDC, m.HDC,
		m.Serial1, m.Serial2, m.Mouse, m.EMS, m.Mem,
	}
	for _, r := range resettables {
		r.Reset()
	}
	if r, ok := m.Video.(Resettable); ok {
		r.Reset()
	}
}
