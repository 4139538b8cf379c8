package main

import (
	"strings"
	"testing"
)

func TestDisassembleRangeBasicOpcodes(t *testing.T) {
	_, bus := newTestCPU()
	loadCode(bus, 0, 0x100, []byte{
		0xB8, 0x34, 0x12, // MOV AX, 0x1234
		0x90,             // NOP
		0xF4,             // HLT
		0xCD, 0x21,       // INT 0x21
	})
	lines := disassembleRange(bus, LinearAddress(0, 0x100), 4, LinearAddress(0, 0x100))
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if !strings.Contains(strings.ToUpper(lines[0].Mnemonic), "MOV") {
		t.Fatalf("line0 = %q, want a MOV", lines[0].Mnemonic)
	}
	if !lines[0].IsPC {
		t.Fatal("first line should be marked as the current PC")
	}
	if !strings.Contains(strings.ToUpper(lines[1].Mnemonic), "NOP") {
		t.Fatalf("line1 = %q, want NOP", lines[1].Mnemonic)
	}
	if !strings.Contains(strings.ToUpper(lines[2].Mnemonic), "HLT") {
		t.Fatalf("line2 = %q, want HLT", lines[2].Mnemonic)
	}
	if !strings.Contains(strings.ToUpper(lines[3].Mnemonic), "INT") {
		t.Fatalf("line3 = %q, want INT", lines[3].Mnemonic)
	}
}

func TestDisassembleUnknownOpcodeFallsBackToDB(t *testing.T) {
	_, bus := newTestCPU()
	loadCode(bus, 0, 0x200, []byte{0x0F}) // unused single-byte opcode in this table
	lines := disassembleRange(bus, LinearAddress(0, 0x200), 1, 0)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0].Mnemonic, "db") {
		t.Fatalf("mnemonic = %q, want a db fallback", lines[0].Mnemonic)
	}
}
