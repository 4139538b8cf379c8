// errors.go - error taxonomy shared across the decoder, bus, and machine
// lifecycle, following the %w-wrapped fmt.Errorf pattern the teacher uses
// rather than a typed-error library.

package main

import "fmt"

// DecodeError reports a failure to decode an instruction at a given
// linear address (an undefined opcode, or a truncated instruction at the
// top of the address space).
type DecodeError struct {
	Addr   uint32
	Opcode uint8
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at %#06x: opcode %#02x", e.Addr, e.Opcode)
}

// BusError reports an out-of-range or otherwise rejected bus access.
// MapMMIO, MapPort and Seal do not return it; wrapBusError builds one.
type BusError struct {
	Op   string
	Addr uint32
}

func (e *BusError) Error() string {
	return fmt.Sprintf("bus error: %s at %#06x", e.Op, e.Addr)
}

// CPUError reports an unrecoverable CPU condition (a triple-fault-style
// recursive exception, which this core treats as fatal rather than
// modeling the real triple-fault shutdown cycle).
type CPUError struct {
	Reason string
}

func (e *CPUError) Error() string {
	return fmt.Sprintf("cpu error: %s", e.Reason)
}

func wrapBusError(op string, addr uint32, cause error) error {
	return fmt.Errorf("%w: %v", &BusError{Op: op, Addr: addr}, cause)
}
