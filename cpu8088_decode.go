// cpu8088_decode.go - ModR/M decoding and memory operand addressing.
//
// The 8088's 16-bit addressing modes combine at most one base register
// (BX or BP) with at most one index register (SI or DI), plus an optional
// 8- or 16-bit displacement; mod==00/rm==110 is special-cased as a direct
// 16-bit displacement with no base register, matching the real decoder.

package main

// modrmInfo is the decoded form of a ModR/M byte plus any following
// displacement, resolved against the current segment-override prefix.
type modrmInfo struct {
	mod     byte
	reg     byte
	rm      byte
	isMem   bool
	segment int    // default segment index for a memory operand, before any override prefix
	ea      uint32 // linear address, valid when isMem
	disp    int16
}

// decodeModRM fetches the ModR/M byte (and its displacement bytes, if
// any) and resolves the effective address for memory operands.
func (c *CPU8088) decodeModRM() modrmInfo {
	b, _ := c.fetch8()
	c.modrm = b
	c.modrmLoaded = true

	info := modrmInfo{mod: b >> 6, reg: (b >> 3) & 7, rm: b & 7}

	if info.mod == 3 {
		return info
	}
	info.isMem = true

	var base, index uint16
	defaultSeg := SegDS
	haveDisp8, haveDisp16 := false, false

	switch info.rm {
	case 0:
		base, index = c.BX, c.SI
	case 1:
		base, index = c.BX, c.DI
	case 2:
		base, index, defaultSeg = c.BP, c.SI, SegSS
	case 3:
		base, index, defaultSeg = c.BP, c.DI, SegSS
	case 4:
		index = c.SI
	case 5:
		index = c.DI
	case 6:
		if info.mod == 0 {
			haveDisp16 = true // direct address, no base
		} else {
			base, defaultSeg = c.BP, SegSS
		}
	case 7:
		base = c.BX
	}

	switch info.mod {
	case 1:
		haveDisp8 = true
	case 2:
		haveDisp16 = true
	}

	var disp int16
	if haveDisp8 {
		v, _ := c.fetch8()
		disp = int16(int8(v))
	} else if haveDisp16 {
		v, _ := c.fetch16()
		disp = int16(v)
	}
	info.disp = disp

	offset := base + index + uint16(disp)
	info.segment = defaultSeg
	seg := c.effectiveSegment(defaultSeg)
	info.ea = LinearAddress(seg, offset)
	return info
}

// readRM8/writeRM8 fetch or store the byte operand named by a decoded
// ModR/M (register direct when mod==3, memory otherwise).
func (c *CPU8088) readRM8(m modrmInfo) uint8 {
	if !m.isMem {
		get, _ := c.reg8(m.rm)
		return get()
	}
	v, waits := c.bus.ReadByte(m.ea)
	c.tick(4 + waits)
	return v
}

func (c *CPU8088) writeRM8(m modrmInfo, v uint8) {
	if !m.isMem {
		_, set := c.reg8(m.rm)
		set(v)
		return
	}
	waits := c.bus.WriteByte(m.ea, v)
	c.tick(4 + waits)
}

func (c *CPU8088) readRM16(m modrmInfo) uint16 {
	if !m.isMem {
		return *c.reg16(m.rm)
	}
	lo, w1 := c.bus.ReadByte(m.ea)
	hi, w2 := c.bus.ReadByte(m.ea + 1)
	c.tick(8 + w1 + w2)
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU8088) writeRM16(m modrmInfo, v uint16) {
	if !m.isMem {
		*c.reg16(m.rm) = v
		return
	}
	w1 := c.bus.WriteByte(m.ea, uint8(v))
	w2 := c.bus.WriteByte(m.ea+1, uint8(v>>8))
	c.tick(8 + w1 + w2)
}

// readMem8/writeMem8 are used by ops that address memory directly (string
// instructions, XLAT) rather than through a ModR/M byte.
func (c *CPU8088) readMem8(seg uint16, off uint16) uint8 {
	v, waits := c.bus.ReadByte(LinearAddress(seg, off))
	c.tick(4 + waits)
	return v
}

func (c *CPU8088) writeMem8(seg uint16, off uint16, v uint8) {
	waits := c.bus.WriteByte(LinearAddress(seg, off), v)
	c.tick(4 + waits)
}

func (c *CPU8088) readMem16(seg uint16, off uint16) uint16 {
	lo, w1 := c.bus.ReadByte(LinearAddress(seg, off))
	hi, w2 := c.bus.ReadByte(LinearAddress(seg, off+1))
	c.tick(8 + w1 + w2)
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU8088) writeMem16(seg uint16, off uint16, v uint16) {
	w1 := c.bus.WriteByte(LinearAddress(seg, off), uint8(v))
	w2 := c.bus.WriteByte(LinearAddress(seg, off+1), uint8(v>>8))
	c.tick(8 + w1 + w2)
}

// push/pop operate through SS:SP, predecrementing/postincrementing SP by 2.
func (c *CPU8088) push16(v uint16) {
	c.SP -= 2
	c.writeMem16(c.segs[SegSS], c.SP, v)
}

func (c *CPU8088) pop16() uint16 {
	v := c.readMem16(c.segs[SegSS], c.SP)
	c.SP += 2
	return v
}
