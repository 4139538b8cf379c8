// cpu8088_strings.go - MOVS/CMPS/STOS/LODS/SCAS and their REP-prefixed
// repeated forms.
//
// On real hardware these run as a microcode coroutine (RPTS/RPTI) that can
// be interrupted between iterations; we model that by looping in Go but
// checking for a pending interrupt after each element, matching the
// observable behavior (an ISR can run between string-op iterations,
// resuming the REP afterward because CX/SI/DI have already been updated).

package main

func (c *CPU8088) stringStep(delta int16) uint16 {
	if c.getFlag(FlagDF) {
		return uint16(-delta)
	}
	return uint16(delta)
}

func (c *CPU8088) repLoop(width int, body func()) {
	if c.repPrefix == 0 {
		body()
		return
	}
	checkZF := c.repPrefix == 0xF3 // REPE/REPZ distinguishes from REPNE/REPNZ only for CMPS/SCAS
	for c.CX != 0 {
		body()
		c.CX--
		if width == 2 { // CMPS/SCAS honor ZF for early-out
			if checkZF && !c.getFlag(FlagZF) {
				break
			}
			if !checkZF && c.getFlag(FlagZF) {
				break
			}
		}
		if c.CX == 0 {
			break
		}
		c.pollInterrupts()
		if c.halted {
			break
		}
	}
}

func (c *CPU8088) execMovsb() {
	step := c.stringStep(1)
	c.repLoop(1, func() {
		v := c.readMem8(c.effectiveSegment(SegDS), c.SI)
		c.writeMem8(c.segs[SegES], c.DI, v)
		c.SI += step
		c.DI += step
		c.tick(c.repElementCost(17, 9))
	})
}

func (c *CPU8088) execMovsw() {
	step := c.stringStep(2)
	c.repLoop(1, func() {
		v := c.readMem16(c.effectiveSegment(SegDS), c.SI)
		c.writeMem16(c.segs[SegES], c.DI, v)
		c.SI += step
		c.DI += step
		c.tick(c.repElementCost(17, 9))
	})
}

func (c *CPU8088) execCmpsb() {
	step := c.stringStep(1)
	c.repLoop(2, func() {
		a := c.readMem8(c.effectiveSegment(SegDS), c.SI)
		b := c.readMem8(c.segs[SegES], c.DI)
		c.aluOp8(7, a, b)
		c.SI += step
		c.DI += step
		c.tick(c.repElementCost(22, 9))
	})
}

func (c *CPU8088) execCmpsw() {
	step := c.stringStep(2)
	c.repLoop(2, func() {
		a := c.readMem16(c.effectiveSegment(SegDS), c.SI)
		b := c.readMem16(c.segs[SegES], c.DI)
		c.aluOp16(7, a, b)
		c.SI += step
		c.DI += step
		c.tick(c.repElementCost(22, 9))
	})
}

func (c *CPU8088) execStosb() {
	step := c.stringStep(1)
	al := c.regLo(&c.AX)
	c.repLoop(1, func() {
		c.writeMem8(c.segs[SegES], c.DI, al)
		c.DI += step
		c.tick(c.repElementCost(11, 6))
	})
}

func (c *CPU8088) execStosw() {
	step := c.stringStep(2)
	c.repLoop(1, func() {
		c.writeMem16(c.segs[SegES], c.DI, c.AX)
		c.DI += step
		c.tick(c.repElementCost(11, 6))
	})
}

func (c *CPU8088) execLodsb() {
	step := c.stringStep(1)
	c.repLoop(1, func() {
		c.setRegLo(&c.AX, c.readMem8(c.effectiveSegment(SegDS), c.SI))
		c.SI += step
		c.tick(c.repElementCost(13, 9))
	})
}

func (c *CPU8088) execLodsw() {
	step := c.stringStep(2)
	c.repLoop(1, func() {
		c.AX = c.readMem16(c.effectiveSegment(SegDS), c.SI)
		c.SI += step
		c.tick(c.repElementCost(13, 9))
	})
}

func (c *CPU8088) execScasb() {
	step := c.stringStep(1)
	c.repLoop(2, func() {
		v := c.readMem8(c.segs[SegES], c.DI)
		c.aluOp8(7, c.regLo(&c.AX), v)
		c.DI += step
		c.tick(c.repElementCost(15, 9))
	})
}

func (c *CPU8088) execScasw() {
	step := c.stringStep(2)
	c.repLoop(2, func() {
		v := c.readMem16(c.segs[SegES], c.DI)
		c.aluOp16(7, c.AX, v)
		c.DI += step
		c.tick(c.repElementCost(15, 9))
	})
}

// repElementCost approximates the real per-element timing difference
// between a bare string op and one running under a REP prefix: a bare op
// is charged the larger bare cost, each REP-repeated element the smaller
// repeated cost.
func (c *CPU8088) repElementCost(bare, repeated int) int {
	if c.repPrefix != 0 {
		return repeated
	}
	return bare
}
