// debug_interface.go - DebuggableCPU interface and supporting types for
// the machine monitor. The shape is CPU-width-agnostic on purpose (the
// teacher reuses it across ie32/m68k/z80/x86/6502 adapters); here it has
// exactly one implementor, debug_cpu8088.go's cpu8088Debugger, but keeps
// the same interface so debug_monitor.go/debug_commands.go stay CPU-shape
// agnostic rather than hard-wired to CPU8088's field names.

package main

// RegisterInfo describes a single CPU register for display in the monitor.
type RegisterInfo struct {
	Name     string
	BitWidth int
	Value    uint64
	Group    string // "general", "segment", "flags"
}

// DisassembledLine represents one disassembled instruction.
type DisassembledLine struct {
	Address      uint64
	HexBytes     string
	Mnemonic     string
	Size         int
	IsPC         bool
	IsBranch     bool
	BranchTarget uint64
}

// BreakpointEvent is published when the CPU hits a breakpoint or
// watchpoint during execution.
type BreakpointEvent struct {
	CPUID   int
	Address uint64

	IsWatch       bool
	WatchAddr     uint64
	WatchOldValue byte
	WatchNewValue byte
}

// ConditionOp defines the comparison operator for breakpoint conditions.
type ConditionOp int

const (
	CondOpEqual ConditionOp = iota
	CondOpNotEqual
	CondOpLess
	CondOpGreater
	CondOpLessEqual
	CondOpGreaterEqual
)

// ConditionSource defines what is being compared in a breakpoint condition.
type ConditionSource int

const (
	CondSourceRegister ConditionSource = iota
	CondSourceMemory
	CondSourceHitCount
	CondSourceLuaExpr
)

// BreakpointCondition defines a conditional expression for a breakpoint.
// When Source is CondSourceLuaExpr, LuaExpr is evaluated instead of the
// register/memory/op/value fields (see debug_conditions.go).
type BreakpointCondition struct {
	Source  ConditionSource
	RegName string
	MemAddr uint64
	Op      ConditionOp
	Value   uint64
	LuaExpr string
}

// ConditionalBreakpoint associates a breakpoint with an optional condition.
type ConditionalBreakpoint struct {
	Address   uint64
	Condition *BreakpointCondition
	HitCount  uint64
}

// WatchpointType indicates the type of watchpoint.
type WatchpointType int

const (
	WatchWrite WatchpointType = iota
)

// Watchpoint represents a write watchpoint on a memory address.
type Watchpoint struct {
	Type      WatchpointType
	Address   uint64
	LastValue byte
}

// DebuggableCPU is the interface the machine monitor drives; CPU8088's
// debug adapter (debug_cpu8088.go) is the sole implementor.
type DebuggableCPU interface {
	CPUName() string
	AddressWidth() int

	GetRegisters() []RegisterInfo
	GetRegister(name string) (uint64, bool)
	SetRegister(name string, value uint64) bool
	GetPC() uint64
	SetPC(addr uint64)

	IsRunning() bool
	Freeze()
	Resume()

	Step() int

	Disassemble(addr uint64, count int) []DisassembledLine

	SetBreakpoint(addr uint64) bool
	SetConditionalBreakpoint(addr uint64, cond *BreakpointCondition) bool
	ClearBreakpoint(addr uint64) bool
	ClearAllBreakpoints()
	ListBreakpoints() []uint64
	ListConditionalBreakpoints() []*ConditionalBreakpoint
	HasBreakpoint(addr uint64) bool
	GetConditionalBreakpoint(addr uint64) *ConditionalBreakpoint

	SetWatchpoint(addr uint64) bool
	ClearWatchpoint(addr uint64) bool
	ClearAllWatchpoints()
	ListWatchpoints() []uint64

	ReadMemory(addr uint64, size int) []byte
	WriteMemory(addr uint64, data []byte)

	SetBreakpointChannel(ch chan<- BreakpointEvent, cpuID int)
}
