// cpu8088_ops.go - ALU semantics and the primary opcode dispatch table.
//
// Flag-setting follows the same shared-helper shape the teacher uses for
// its x86 ALU group (one updateFlags helper per operand width, called
// from every arithmetic opcode) rather than duplicating flag logic per
// instruction.

package main

// setFlagsAdd8/setFlagsSub8/etc set CF/PF/AF/ZF/SF/OF for a result the
// caller has already computed, mirroring the real ALU's flag outputs for
// each operation; they return nothing.

func (c *CPU8088) setFlagsAdd8(a, b, r uint8) {
	c.setFlag(FlagCF, uint16(a)+uint16(b) > 0xFF)
	c.setFlag(FlagAF, (a&0xF)+(b&0xF) > 0xF)
	c.setFlag(FlagOF, (a^r)&(b^r)&0x80 != 0)
	c.setLogic8(r)
}

func (c *CPU8088) setFlagsAdc8(a, b, carryIn uint8, r uint16) {
	c.setFlag(FlagCF, r > 0xFF)
	c.setFlag(FlagAF, (a&0xF)+(b&0xF)+carryIn > 0xF)
	c.setFlag(FlagOF, (a^uint8(r))&(b^uint8(r))&0x80 != 0)
	c.setLogic8(uint8(r))
}

func (c *CPU8088) setFlagsSub8(a, b, r uint8) {
	c.setFlag(FlagCF, a < b)
	c.setFlag(FlagAF, a&0xF < b&0xF)
	c.setFlag(FlagOF, (a^b)&(a^r)&0x80 != 0)
	c.setLogic8(r)
}

func (c *CPU8088) setFlagsSbb8(a, b, borrowIn, r uint8) {
	full := int(a) - int(b) - int(borrowIn)
	c.setFlag(FlagCF, full < 0)
	c.setFlag(FlagAF, int(a&0xF)-int(b&0xF)-int(borrowIn) < 0)
	c.setFlag(FlagOF, (a^b)&(a^r)&0x80 != 0)
	c.setLogic8(r)
}

func (c *CPU8088) setLogic8(r uint8) {
	c.setFlag(FlagZF, r == 0)
	c.setFlag(FlagSF, r&0x80 != 0)
	c.setFlag(FlagPF, parityEven(r))
}

func (c *CPU8088) setFlagsAdd16(a, b, r uint16) {
	c.setFlag(FlagCF, uint32(a)+uint32(b) > 0xFFFF)
	c.setFlag(FlagAF, (a&0xF)+(b&0xF) > 0xF)
	c.setFlag(FlagOF, (a^r)&(b^r)&0x8000 != 0)
	c.setLogic16(r)
}

func (c *CPU8088) setFlagsAdc16(a, b uint16, carryIn uint16, r uint32) {
	c.setFlag(FlagCF, r > 0xFFFF)
	c.setFlag(FlagAF, (a&0xF)+(b&0xF)+carryIn > 0xF)
	c.setFlag(FlagOF, (a^uint16(r))&(b^uint16(r))&0x8000 != 0)
	c.setLogic16(uint16(r))
}

func (c *CPU8088) setFlagsSub16(a, b, r uint16) {
	c.setFlag(FlagCF, a < b)
	c.setFlag(FlagAF, a&0xF < b&0xF)
	c.setFlag(FlagOF, (a^b)&(a^r)&0x8000 != 0)
	c.setLogic16(r)
}

func (c *CPU8088) setFlagsSbb16(a, b, borrowIn, r uint16) {
	full := int32(a) - int32(b) - int32(borrowIn)
	c.setFlag(FlagCF, full < 0)
	c.setFlag(FlagAF, int32(a&0xF)-int32(b&0xF)-int32(borrowIn) < 0)
	c.setFlag(FlagOF, (a^b)&(a^r)&0x8000 != 0)
	c.setLogic16(r)
}

func (c *CPU8088) setLogic16(r uint16) {
	c.setFlag(FlagZF, r == 0)
	c.setFlag(FlagSF, r&0x8000 != 0)
	c.setFlag(FlagPF, parityEven(uint8(r)))
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// aluOp applies one of the eight group-1 ALU operations (ADD/OR/ADC/SBB/
// AND/SUB/XOR/CMP) to 8-bit operands and returns the result to store (CMP
// discards its result). op is the 3-bit group-1 sub-opcode.
func (c *CPU8088) aluOp8(op byte, a, b uint8) uint8 {
	switch op {
	case 0: // ADD
		r := a + b
		c.setFlagsAdd8(a, b, r)
		return r
	case 1: // OR
		r := a | b
		c.setFlag(FlagCF, false)
		c.setFlag(FlagOF, false)
		c.setLogic8(r)
		return r
	case 2: // ADC
		carry := boolBit(c.getFlag(FlagCF))
		full := uint16(a) + uint16(b) + uint16(carry)
		c.setFlagsAdc8(a, b, carry, full)
		return uint8(full)
	case 3: // SBB
		borrow := boolBit(c.getFlag(FlagCF))
		r := a - b - borrow
		c.setFlagsSbb8(a, b, borrow, r)
		return r
	case 4: // AND
		r := a & b
		c.setFlag(FlagCF, false)
		c.setFlag(FlagOF, false)
		c.setLogic8(r)
		return r
	case 5: // SUB
		r := a - b
		c.setFlagsSub8(a, b, r)
		return r
	case 6: // XOR
		r := a ^ b
		c.setFlag(FlagCF, false)
		c.setFlag(FlagOF, false)
		c.setLogic8(r)
		return r
	default: // CMP
		r := a - b
		c.setFlagsSub8(a, b, r)
		return a
	}
}

func (c *CPU8088) aluOp16(op byte, a, b uint16) uint16 {
	switch op {
	case 0:
		r := a + b
		c.setFlagsAdd16(a, b, r)
		return r
	case 1:
		r := a | b
		c.setFlag(FlagCF, false)
		c.setFlag(FlagOF, false)
		c.setLogic16(r)
		return r
	case 2:
		carry := uint16(boolBit(c.getFlag(FlagCF)))
		full := uint32(a) + uint32(b) + uint32(carry)
		c.setFlagsAdc16(a, b, carry, full)
		return uint16(full)
	case 3:
		borrow := uint16(boolBit(c.getFlag(FlagCF)))
		r := a - b - borrow
		c.setFlagsSbb16(a, b, borrow, r)
		return r
	case 4:
		r := a & b
		c.setFlag(FlagCF, false)
		c.setFlag(FlagOF, false)
		c.setLogic16(r)
		return r
	case 5:
		r := a - b
		c.setFlagsSub16(a, b, r)
		return r
	case 6:
		r := a ^ b
		c.setFlag(FlagCF, false)
		c.setFlag(FlagOF, false)
		c.setLogic16(r)
		return r
	default:
		r := a - b
		c.setFlagsSub16(a, b, r)
		return a
	}
}

// buildOpcodeTable wires the primary 256-entry dispatch table. Group
// opcodes (80-83, D0-D3, F6/F7, FE/FF) are handled in cpu8088_grp.go and
// installed here by reference.
func (c *CPU8088) buildOpcodeTable() {
	t := &c.baseOps

	// ALU group, rows 00-3D: each of the 8 ALU ops occupies 6 opcodes
	// (Eb,Gb / Ev,Gv / Gb,Eb / Gv,Ev / AL,Ib / AX,Iv). The last two slots
	// of each row are special-cased below: segment push/pop in the ADD/OR/
	// ADC/SBB rows, DAA/DAS/AAA/AAS in the AND/SUB/XOR/CMP rows (whose
	// other slot is a segment-override prefix).
	for op := byte(0); op < 8; op++ {
		base := op * 8
		aluOp := op
		t[base+0] = func(c *CPU8088) { c.execALU_EbGb(aluOp) }
		t[base+1] = func(c *CPU8088) { c.execALU_EvGv(aluOp) }
		t[base+2] = func(c *CPU8088) { c.execALU_GbEb(aluOp) }
		t[base+3] = func(c *CPU8088) { c.execALU_GvEv(aluOp) }
		t[base+4] = func(c *CPU8088) { c.execALU_ALIb(aluOp) }
		t[base+5] = func(c *CPU8088) { c.execALU_AXIv(aluOp) }
	}

	t[0x06] = func(c *CPU8088) { c.tick(10); c.push16(c.segs[SegES]) }
	t[0x07] = func(c *CPU8088) { c.tick(8); c.segs[SegES] = c.pop16() }
	t[0x0E] = func(c *CPU8088) { c.tick(10); c.push16(c.segs[SegCS]) }
	t[0x16] = func(c *CPU8088) { c.tick(10); c.push16(c.segs[SegSS]) }
	t[0x17] = func(c *CPU8088) { c.tick(8); c.segs[SegSS] = c.pop16() }
	t[0x1E] = func(c *CPU8088) { c.tick(10); c.push16(c.segs[SegDS]) }
	t[0x1F] = func(c *CPU8088) { c.tick(8); c.segs[SegDS] = c.pop16() }

	t[0x27] = (*CPU8088).execDAA
	t[0x2F] = (*CPU8088).execDAS
	t[0x37] = (*CPU8088).execAAA
	t[0x3F] = (*CPU8088).execAAS

	for r := byte(0); r < 8; r++ {
		reg := r
		t[0x40+reg] = func(c *CPU8088) { c.incDecReg16(reg, 1) }
		t[0x48+reg] = func(c *CPU8088) { c.incDecReg16(reg, -1) }
		t[0x50+reg] = func(c *CPU8088) { c.tick(11); c.push16(*c.reg16(reg)) }
		t[0x58+reg] = func(c *CPU8088) { c.tick(8); *c.reg16(reg) = c.pop16() }
		t[0xB0+reg] = func(c *CPU8088) { get, set := c.reg8(reg); _ = get; c.tick(4); v, _ := c.fetch8(); set(v) }
		t[0xB8+reg] = func(c *CPU8088) { c.tick(4); v, _ := c.fetch16(); *c.reg16(reg) = v }
	}

	t[0x70] = jccOp(func(c *CPU8088) bool { return c.getFlag(FlagOF) })
	t[0x71] = jccOp(func(c *CPU8088) bool { return !c.getFlag(FlagOF) })
	t[0x72] = jccOp(func(c *CPU8088) bool { return c.getFlag(FlagCF) })
	t[0x73] = jccOp(func(c *CPU8088) bool { return !c.getFlag(FlagCF) })
	t[0x74] = jccOp(func(c *CPU8088) bool { return c.getFlag(FlagZF) })
	t[0x75] = jccOp(func(c *CPU8088) bool { return !c.getFlag(FlagZF) })
	t[0x76] = jccOp(func(c *CPU8088) bool { return c.getFlag(FlagCF) || c.getFlag(FlagZF) })
	t[0x77] = jccOp(func(c *CPU8088) bool { return !c.getFlag(FlagCF) && !c.getFlag(FlagZF) })
	t[0x78] = jccOp(func(c *CPU8088) bool { return c.getFlag(FlagSF) })
	t[0x79] = jccOp(func(c *CPU8088) bool { return !c.getFlag(FlagSF) })
	t[0x7A] = jccOp(func(c *CPU8088) bool { return c.getFlag(FlagPF) })
	t[0x7B] = jccOp(func(c *CPU8088) bool { return !c.getFlag(FlagPF) })
	t[0x7C] = jccOp(func(c *CPU8088) bool { return c.getFlag(FlagSF) != c.getFlag(FlagOF) })
	t[0x7D] = jccOp(func(c *CPU8088) bool { return c.getFlag(FlagSF) == c.getFlag(FlagOF) })
	t[0x7E] = jccOp(func(c *CPU8088) bool {
		return c.getFlag(FlagZF) || c.getFlag(FlagSF) != c.getFlag(FlagOF)
	})
	t[0x7F] = jccOp(func(c *CPU8088) bool {
		return !c.getFlag(FlagZF) && c.getFlag(FlagSF) == c.getFlag(FlagOF)
	})

	// 0x60-0x6F carry no PUSHA/POPA/BOUND/IMUL opcodes on the 8088 (those
	// are 80186+); the real part decodes them as aliases of 0x70-0x7F.
	for op := byte(0x60); op <= 0x6F; op++ {
		t[op] = t[op+0x10]
	}

	t[0x80] = (*CPU8088).execGrp1_EbIb
	t[0x81] = (*CPU8088).execGrp1_EvIv
	t[0x82] = (*CPU8088).execGrp1_EbIb // aliases 0x80 on the 8088
	t[0x83] = (*CPU8088).execGrp1_EvIb

	t[0x84] = (*CPU8088).execTestEbGb
	t[0x85] = (*CPU8088).execTestEvGv
	t[0x86] = (*CPU8088).execXchgEbGb
	t[0x87] = (*CPU8088).execXchgEvGv
	t[0x88] = (*CPU8088).execMovEbGb
	t[0x89] = (*CPU8088).execMovEvGv
	t[0x8A] = (*CPU8088).execMovGbEb
	t[0x8B] = (*CPU8088).execMovGvEv
	t[0x8C] = (*CPU8088).execMovEvSw
	t[0x8D] = (*CPU8088).execLea
	t[0x8E] = (*CPU8088).execMovSwEv
	t[0x8F] = (*CPU8088).execPopEv

	t[0x90] = func(c *CPU8088) { c.tick(3) } // NOP (XCHG AX,AX)
	for r := byte(1); r < 8; r++ {
		reg := r
		t[0x90+reg] = func(c *CPU8088) {
			c.tick(3)
			other := c.reg16(reg)
			c.AX, *other = *other, c.AX
		}
	}

	t[0x98] = func(c *CPU8088) { // CBW
		c.tick(2)
		if c.AX&0x80 != 0 {
			c.AX |= 0xFF00
		} else {
			c.AX &= 0x00FF
		}
	}
	t[0x99] = func(c *CPU8088) { // CWD
		c.tick(5)
		if c.AX&0x8000 != 0 {
			c.DX = 0xFFFF
		} else {
			c.DX = 0
		}
	}
	t[0x9A] = (*CPU8088).execCallFar
	t[0x9C] = func(c *CPU8088) { c.tick(10); c.push16(c.Flags | flagsReservedOn) }
	t[0x9D] = func(c *CPU8088) { c.tick(8); c.Flags = c.pop16() | flagsReservedOn }
	t[0x9E] = func(c *CPU8088) { // SAHF
		c.tick(4)
		c.Flags = (c.Flags &^ 0xFF) | uint16(c.regHi(&c.AX)) | flagsReservedOn
	}
	t[0x9F] = func(c *CPU8088) { c.tick(4); c.setRegHi(&c.AX, uint8(c.Flags)) } // LAHF

	t[0xA0] = func(c *CPU8088) { c.tick(10); off, _ := c.fetch16(); c.setRegLo(&c.AX, c.readMem8(c.effectiveSegment(SegDS), off)) }
	t[0xA1] = func(c *CPU8088) { c.tick(10); off, _ := c.fetch16(); c.AX = c.readMem16(c.effectiveSegment(SegDS), off) }
	t[0xA2] = func(c *CPU8088) { c.tick(10); off, _ := c.fetch16(); c.writeMem8(c.effectiveSegment(SegDS), off, c.regLo(&c.AX)) }
	t[0xA3] = func(c *CPU8088) { c.tick(10); off, _ := c.fetch16(); c.writeMem16(c.effectiveSegment(SegDS), off, c.AX) }

	t[0xA4] = (*CPU8088).execMovsb
	t[0xA5] = (*CPU8088).execMovsw
	t[0xA6] = (*CPU8088).execCmpsb
	t[0xA7] = (*CPU8088).execCmpsw
	t[0xA8] = func(c *CPU8088) {
		c.tick(4)
		v, _ := c.fetch8()
		r := c.regLo(&c.AX) & v
		c.setFlag(FlagCF, false)
		c.setFlag(FlagOF, false)
		c.setLogic8(r)
	}
	t[0xA9] = func(c *CPU8088) {
		c.tick(4)
		v, _ := c.fetch16()
		r := c.AX & v
		c.setFlag(FlagCF, false)
		c.setFlag(FlagOF, false)
		c.setLogic16(r)
	}
	t[0xAA] = (*CPU8088).execStosb
	t[0xAB] = (*CPU8088).execStosw
	t[0xAC] = (*CPU8088).execLodsb
	t[0xAD] = (*CPU8088).execLodsw
	t[0xAE] = (*CPU8088).execScasb
	t[0xAF] = (*CPU8088).execScasw

	t[0xC2] = (*CPU8088).execRetNearImm
	t[0xC3] = (*CPU8088).execRetNear
	t[0xC4] = (*CPU8088).execLes
	t[0xC5] = (*CPU8088).execLds
	t[0xC6] = (*CPU8088).execMovEbIb
	t[0xC7] = (*CPU8088).execMovEvIv
	t[0xCA] = (*CPU8088).execRetFarImm
	t[0xCB] = (*CPU8088).execRetFar
	t[0xCC] = func(c *CPU8088) { c.tick(51); c.serviceInterrupt(3, false) }
	t[0xCD] = func(c *CPU8088) { c.tick(51); v, _ := c.fetch8(); c.serviceInterrupt(uint8(v), false) }
	t[0xCE] = func(c *CPU8088) {
		if c.getFlag(FlagOF) {
			c.tick(53)
			c.serviceInterrupt(4, false)
		} else {
			c.tick(4)
		}
	}
	t[0xCF] = (*CPU8088).execIret

	t[0xD0] = func(c *CPU8088) { c.execShiftRotate8(1, false) }
	t[0xD1] = func(c *CPU8088) { c.execShiftRotate16(1, false) }
	t[0xD2] = func(c *CPU8088) { c.execShiftRotate8(0, true) }
	t[0xD3] = func(c *CPU8088) { c.execShiftRotate16(0, true) }
	t[0xD4] = (*CPU8088).execAAM
	t[0xD5] = (*CPU8088).execAAD
	t[0xD7] = func(c *CPU8088) { // XLAT
		c.tick(11)
		seg := c.effectiveSegment(SegDS)
		c.setRegLo(&c.AX, c.readMem8(seg, c.BX+uint16(c.regLo(&c.AX))))
	}

	t[0xE0] = loopOp(func(c *CPU8088) bool { return !c.getFlag(FlagZF) })
	t[0xE1] = loopOp(func(c *CPU8088) bool { return c.getFlag(FlagZF) })
	t[0xE2] = loopOp(func(c *CPU8088) bool { return true })
	t[0xE3] = func(c *CPU8088) { // JCXZ
		rel, _ := c.fetch8()
		if c.CX == 0 {
			c.tick(18)
			c.flushAndJump(c.segs[SegCS], uint16(int32(c.IP)+int32(int8(rel))))
		} else {
			c.tick(6)
		}
	}

	t[0xE4] = func(c *CPU8088) { c.tick(10); p, _ := c.fetch8(); c.setRegLo(&c.AX, c.bus.InByte(uint16(p))) }
	t[0xE5] = func(c *CPU8088) { c.tick(10); p, _ := c.fetch8(); c.AX = uint16(c.bus.InByte(uint16(p))) | uint16(c.bus.InByte(uint16(p)+1))<<8 }
	t[0xE6] = func(c *CPU8088) { c.tick(10); p, _ := c.fetch8(); c.bus.OutByte(uint16(p), c.regLo(&c.AX)) }
	t[0xE7] = func(c *CPU8088) {
		c.tick(10)
		p, _ := c.fetch8()
		c.bus.OutByte(uint16(p), uint8(c.AX))
		c.bus.OutByte(uint16(p)+1, uint8(c.AX>>8))
	}
	t[0xE8] = (*CPU8088).execCallNear
	t[0xE9] = (*CPU8088).execJmpNear
	t[0xEA] = (*CPU8088).execJmpFar
	t[0xEB] = func(c *CPU8088) { // JMP short
		rel, _ := c.fetch8()
		c.tick(15)
		c.flushAndJump(c.segs[SegCS], uint16(int32(c.IP)+int32(int8(rel))))
	}
	t[0xEC] = func(c *CPU8088) { c.tick(8); c.setRegLo(&c.AX, c.bus.InByte(c.DX)) }
	t[0xED] = func(c *CPU8088) { c.tick(8); c.AX = uint16(c.bus.InByte(c.DX)) | uint16(c.bus.InByte(c.DX+1))<<8 }
	t[0xEE] = func(c *CPU8088) { c.tick(8); c.bus.OutByte(c.DX, c.regLo(&c.AX)) }
	t[0xEF] = func(c *CPU8088) { c.tick(8); c.bus.OutByte(c.DX, uint8(c.AX)); c.bus.OutByte(c.DX+1, uint8(c.AX>>8)) }

	t[0xF4] = func(c *CPU8088) { c.tick(2); c.halted = true }
	t[0xF5] = func(c *CPU8088) { c.tick(2); c.setFlag(FlagCF, !c.getFlag(FlagCF)) } // CMC
	t[0xF6] = (*CPU8088).execGrp3_Eb
	t[0xF7] = (*CPU8088).execGrp3_Ev
	t[0xF8] = func(c *CPU8088) { c.tick(2); c.setFlag(FlagCF, false) }
	t[0xF9] = func(c *CPU8088) { c.tick(2); c.setFlag(FlagCF, true) }
	t[0xFA] = func(c *CPU8088) { c.tick(2); c.setFlag(FlagIF, false) }
	t[0xFB] = func(c *CPU8088) { c.tick(2); c.setFlag(FlagIF, true) }
	t[0xFC] = func(c *CPU8088) { c.tick(2); c.setFlag(FlagDF, false) }
	t[0xFD] = func(c *CPU8088) { c.tick(2); c.setFlag(FlagDF, true) }
	t[0xFE] = (*CPU8088).execGrp4_IncDecEb
	t[0xFF] = (*CPU8088).execGrp5_Ev
}

func jccOp(cond func(*CPU8088) bool) func(*CPU8088) {
	return func(c *CPU8088) {
		rel, _ := c.fetch8()
		if cond(c) {
			c.tick(16)
			c.flushAndJump(c.segs[SegCS], uint16(int32(c.IP)+int32(int8(rel))))
		} else {
			c.tick(4)
		}
	}
}

func loopOp(cond func(*CPU8088) bool) func(*CPU8088) {
	return func(c *CPU8088) {
		rel, _ := c.fetch8()
		c.CX--
		if c.CX != 0 && cond(c) {
			c.tick(17)
			c.flushAndJump(c.segs[SegCS], uint16(int32(c.IP)+int32(int8(rel))))
		} else {
			c.tick(5)
		}
	}
}

// ALU-group opcode forms ---------------------------------------------------

func (c *CPU8088) execALU_EbGb(op byte) {
	m := c.decodeModRM()
	get, _ := c.reg8(m.reg)
	r := c.aluOp8(op, c.readRM8(m), get())
	if op != 7 { // not CMP
		c.writeRM8(m, r)
	}
	c.tick(3)
}

func (c *CPU8088) execALU_EvGv(op byte) {
	m := c.decodeModRM()
	src := *c.reg16(m.reg)
	r := c.aluOp16(op, c.readRM16(m), src)
	if op != 7 {
		c.writeRM16(m, r)
	}
	c.tick(3)
}

func (c *CPU8088) execALU_GbEb(op byte) {
	m := c.decodeModRM()
	_, set := c.reg8(m.reg)
	get, _ := c.reg8(m.reg)
	r := c.aluOp8(op, get(), c.readRM8(m))
	if op != 7 {
		set(r)
	}
	c.tick(3)
}

func (c *CPU8088) execALU_GvEv(op byte) {
	m := c.decodeModRM()
	dst := c.reg16(m.reg)
	r := c.aluOp16(op, *dst, c.readRM16(m))
	if op != 7 {
		*dst = r
	}
	c.tick(3)
}

func (c *CPU8088) execALU_ALIb(op byte) {
	v, _ := c.fetch8()
	r := c.aluOp8(op, c.regLo(&c.AX), v)
	if op != 7 {
		c.setRegLo(&c.AX, r)
	}
	c.tick(4)
}

func (c *CPU8088) execALU_AXIv(op byte) {
	v, _ := c.fetch16()
	r := c.aluOp16(op, c.AX, v)
	if op != 7 {
		c.AX = r
	}
	c.tick(4)
}

// data movement --------------------------------------------------------

func (c *CPU8088) execMovEbGb() {
	m := c.decodeModRM()
	get, _ := c.reg8(m.reg)
	c.writeRM8(m, get())
	c.tick(2)
}
func (c *CPU8088) execMovEvGv() {
	m := c.decodeModRM()
	c.writeRM16(m, *c.reg16(m.reg))
	c.tick(2)
}
func (c *CPU8088) execMovGbEb() {
	m := c.decodeModRM()
	_, set := c.reg8(m.reg)
	set(c.readRM8(m))
	c.tick(2)
}
func (c *CPU8088) execMovGvEv() {
	m := c.decodeModRM()
	*c.reg16(m.reg) = c.readRM16(m)
	c.tick(2)
}
func (c *CPU8088) execMovEbIb() {
	m := c.decodeModRM()
	v, _ := c.fetch8()
	c.writeRM8(m, v)
	c.tick(4)
}
func (c *CPU8088) execMovEvIv() {
	m := c.decodeModRM()
	v, _ := c.fetch16()
	c.writeRM16(m, v)
	c.tick(4)
}
func (c *CPU8088) execMovEvSw() {
	m := c.decodeModRM()
	c.writeRM16(m, *c.segReg(m.reg))
	c.tick(2)
}
func (c *CPU8088) execMovSwEv() {
	m := c.decodeModRM()
	*c.segReg(m.reg) = c.readRM16(m)
	c.tick(2)
}
func (c *CPU8088) execLea() {
	m := c.decodeModRM()
	*c.reg16(m.reg) = uint16(m.ea & 0xFFFF)
	c.tick(2)
}
func (c *CPU8088) execLes() {
	m := c.decodeModRM()
	*c.reg16(m.reg) = c.readRM16(m)
	c.segs[SegES] = c.readMem16(c.effectiveSegment(m.segment), uint16(m.ea&0xFFFF)+2)
	c.tick(16)
}
func (c *CPU8088) execLds() {
	m := c.decodeModRM()
	*c.reg16(m.reg) = c.readRM16(m)
	c.segs[SegDS] = c.readMem16(c.effectiveSegment(m.segment), uint16(m.ea&0xFFFF)+2)
	c.tick(16)
}
func (c *CPU8088) execXchgEbGb() {
	m := c.decodeModRM()
	get, set := c.reg8(m.reg)
	a := c.readRM8(m)
	b := get()
	c.writeRM8(m, b)
	set(a)
	c.tick(3)
}
func (c *CPU8088) execXchgEvGv() {
	m := c.decodeModRM()
	reg := c.reg16(m.reg)
	a := c.readRM16(m)
	b := *reg
	c.writeRM16(m, b)
	*reg = a
	c.tick(3)
}
func (c *CPU8088) execTestEbGb() {
	m := c.decodeModRM()
	get, _ := c.reg8(m.reg)
	r := c.readRM8(m) & get()
	c.setFlag(FlagCF, false)
	c.setFlag(FlagOF, false)
	c.setLogic8(r)
	c.tick(3)
}
func (c *CPU8088) execTestEvGv() {
	m := c.decodeModRM()
	r := c.readRM16(m) & *c.reg16(m.reg)
	c.setFlag(FlagCF, false)
	c.setFlag(FlagOF, false)
	c.setLogic16(r)
	c.tick(3)
}
func (c *CPU8088) execPopEv() {
	m := c.decodeModRM()
	c.writeRM16(m, c.pop16())
	c.tick(8)
}

func (c *CPU8088) incDecReg16(reg byte, delta int16) {
	p := c.reg16(reg)
	old := *p
	*p = uint16(int32(old) + int32(delta))
	r := *p
	cf := c.getFlag(FlagCF)
	if delta > 0 {
		c.setFlagsAdd16(old, 1, r)
	} else {
		c.setFlagsSub16(old, 1, r)
	}
	c.setFlag(FlagCF, cf) // INC/DEC never touch CF
	c.tick(2)
}

// DAA/DAS/AAA/AAS undocumented-flag-preserving decimal adjust ops -------

func (c *CPU8088) execDAA() {
	al := c.regLo(&c.AX)
	oldAF, oldCF := c.getFlag(FlagAF), c.getFlag(FlagCF)
	cf := false
	if al&0xF > 9 || oldAF {
		al += 6
		cf = oldCF || al < 6
		c.setFlag(FlagAF, true)
	} else {
		c.setFlag(FlagAF, false)
	}
	if (c.regLo(&c.AX) > 0x99) || oldCF {
		al += 0x60
		cf = true
	}
	c.setRegLo(&c.AX, al)
	c.setFlag(FlagCF, cf)
	c.setLogic8(al)
	c.tick(4)
}

func (c *CPU8088) execDAS() {
	al := c.regLo(&c.AX)
	oldAL, oldAF, oldCF := al, c.getFlag(FlagAF), c.getFlag(FlagCF)
	cf := false
	if al&0xF > 9 || oldAF {
		al -= 6
		cf = oldCF || oldAL < 6
		c.setFlag(FlagAF, true)
	} else {
		c.setFlag(FlagAF, false)
	}
	if oldAL > 0x99 || oldCF {
		al -= 0x60
		cf = true
	}
	c.setRegLo(&c.AX, al)
	c.setFlag(FlagCF, cf)
	c.setLogic8(al)
	c.tick(4)
}

func (c *CPU8088) execAAA() {
	al := c.regLo(&c.AX)
	if al&0xF > 9 || c.getFlag(FlagAF) {
		c.AX += 0x106
		c.setFlag(FlagAF, true)
		c.setFlag(FlagCF, true)
	} else {
		c.setFlag(FlagAF, false)
		c.setFlag(FlagCF, false)
	}
	c.setRegLo(&c.AX, c.regLo(&c.AX)&0x0F)
	c.tick(8)
}

func (c *CPU8088) execAAS() {
	al := c.regLo(&c.AX)
	if al&0xF > 9 || c.getFlag(FlagAF) {
		c.AX -= 6
		c.setRegHi(&c.AX, c.regHi(&c.AX)-1)
		c.setFlag(FlagAF, true)
		c.setFlag(FlagCF, true)
	} else {
		c.setFlag(FlagAF, false)
		c.setFlag(FlagCF, false)
	}
	c.setRegLo(&c.AX, c.regLo(&c.AX)&0x0F)
	c.tick(8)
}

func (c *CPU8088) execAAM() {
	base, _ := c.fetch8()
	al := c.regLo(&c.AX)
	ah := al / base
	al = al % base
	c.setRegHi(&c.AX, ah)
	c.setRegLo(&c.AX, al)
	c.setLogic8(al)
	c.tick(83)
}

func (c *CPU8088) execAAD() {
	base, _ := c.fetch8()
	al := c.regLo(&c.AX)
	ah := c.regHi(&c.AX)
	result := al + ah*base
	c.setRegLo(&c.AX, result)
	c.setRegHi(&c.AX, 0)
	c.setLogic8(result)
	c.tick(60)
}

// control transfer -------------------------------------------------------

func (c *CPU8088) execJmpNear() {
	rel, _ := c.fetch16()
	c.tick(15)
	c.flushAndJump(c.segs[SegCS], uint16(int32(c.IP)+int32(int16(rel))))
}
func (c *CPU8088) execJmpFar() {
	off, _ := c.fetch16()
	seg, _ := c.fetch16()
	c.tick(15)
	c.flushAndJump(seg, off)
}
func (c *CPU8088) execCallNear() {
	rel, _ := c.fetch16()
	c.tick(19)
	c.push16(c.IP)
	c.flushAndJump(c.segs[SegCS], uint16(int32(c.IP)+int32(int16(rel))))
}
func (c *CPU8088) execCallFar() {
	off, _ := c.fetch16()
	seg, _ := c.fetch16()
	c.tick(28)
	c.push16(c.segs[SegCS])
	c.push16(c.IP)
	c.flushAndJump(seg, off)
}
func (c *CPU8088) execRetNear() {
	c.tick(8)
	newIP := c.pop16()
	c.flushAndJump(c.segs[SegCS], newIP)
}
func (c *CPU8088) execRetNearImm() {
	n, _ := c.fetch16()
	c.tick(12)
	newIP := c.pop16()
	c.SP += n
	c.flushAndJump(c.segs[SegCS], newIP)
}
func (c *CPU8088) execRetFar() {
	c.tick(18)
	newIP := c.pop16()
	newCS := c.pop16()
	c.flushAndJump(newCS, newIP)
}
func (c *CPU8088) execRetFarImm() {
	n, _ := c.fetch16()
	c.tick(17)
	newIP := c.pop16()
	newCS := c.pop16()
	c.SP += n
	c.flushAndJump(newCS, newIP)
}
func (c *CPU8088) execIret() {
	c.tick(24)
	newIP := c.pop16()
	newCS := c.pop16()
	c.Flags = c.pop16() | flagsReservedOn
	c.flushAndJump(newCS, newIP)
}
