// cpu8088_interrupt.go - Interrupt/exception service and the two-cycle
// INTA acknowledge protocol driven through the CPU's intrAckFn callback.

package main

// serviceInterrupt pushes FLAGS/CS/IP, clears IF and TF, and vectors
// through the interrupt vector table entry for vector. When the bus
// returns the vector from a real INTR line, the caller (pollInterrupts)
// has already obtained it from the PIC's Acknowledge; software
// interrupts (INT n, INT3, INTO, divide error) call this directly with
// the immediate vector.
func (c *CPU8088) serviceInterrupt(vector uint8, fromHalt bool) {
	c.push16(c.Flags | flagsReservedOn)
	c.setFlag(FlagIF, false)
	c.setFlag(FlagTF, false)
	c.push16(c.segs[SegCS])
	c.push16(c.IP)

	entry := uint32(vector) * 4
	newIP := c.readMem16(0, uint16(entry))
	newCS := c.readMem16(0, uint16(entry+2))
	c.flushAndJump(newCS, newIP)
	c.tick(50)
}
