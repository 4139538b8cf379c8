// debug_disasm.go - linear disassembler for the monitor's "d" (disassemble)
// command. Walks a ByteQueue over bus memory rather than the live BIU
// prefetch queue, so it can disassemble ahead of or behind the current PC
// without disturbing instruction fetch. All decode logic lives in the
// shared Decoder (cpu8088_decoder.go); this file only turns its
// Instruction values into the DisassembledLine rows the monitor prints.

package main

import "fmt"

// disassembleRange produces count instructions starting at addr, marking
// the line whose address equals pc. A byte the Decoder can't make sense
// of (an encoding not wired into baseOps; BusByteQueue reads wrap at the
// top of the address space and never fail) prints as a single raw db byte
// and resynchronizes
// one byte past the failure, so one bad opcode doesn't derail the rest of
// the listing.
func disassembleRange(bus *Bus, addr uint32, count int, pc uint32) []DisassembledLine {
	q := NewBusByteQueue(bus, addr)
	dec := NewDecoder(q)
	out := make([]DisassembledLine, 0, count)

	for i := 0; i < count; i++ {
		start := q.Tell()
		mnemonic, length := disasmOne(dec, q, start)

		hex := ""
		for o := uint32(0); o < uint32(length); o++ {
			hex += fmt.Sprintf("%02X ", bus.PeekByte(start+o))
		}

		out = append(out, DisassembledLine{
			Address:  uint64(start),
			HexBytes: hex,
			Mnemonic: mnemonic,
			Size:     length,
			IsPC:     start == pc,
		})
	}
	return out
}

// disasmOne decodes a single instruction at start via dec, falling back to
// a one-byte "db" line (and reseeking the queue past it) on any decodeError.
func disasmOne(dec *Decoder, q ByteQueue, start uint32) (mnemonic string, length int) {
	insn, err := dec.Decode()
	if err != nil {
		q.Seek(start)
		op, _ := q.ReadU8()
		return fmt.Sprintf("db 0x%02X", op), 1
	}
	return insn.Text, insn.Length
}
