// debug_cpu8088.go - adapts CPU8088 to the DebuggableCPU interface the
// monitor drives. Breakpoints/watchpoints/conditions live here rather than
// on CPU8088 itself so the hot instruction loop (cpu8088.go's Step) never
// pays for debug bookkeeping unless a monitor is actually attached.

package main

import (
	"fmt"
	"sort"
)

type cpu8088Debugger struct {
	cpu     *CPU8088
	bus     *Bus
	machine *Machine // optional; lets formatIOView (debug_ioview.go) reach live device state

	frozen bool

	breakpoints map[uint64]*ConditionalBreakpoint
	watchpoints map[uint64]*Watchpoint

	events chan<- BreakpointEvent
	cpuID  int
}

// NewCPU8088Debugger wraps cpu/bus for attachment to a machine monitor.
func NewCPU8088Debugger(cpu *CPU8088, bus *Bus) *cpu8088Debugger {
	return &cpu8088Debugger{
		cpu:         cpu,
		bus:         bus,
		breakpoints: make(map[uint64]*ConditionalBreakpoint),
		watchpoints: make(map[uint64]*Watchpoint),
	}
}

func (d *cpu8088Debugger) CPUName() string  { return "Intel 8088" }
func (d *cpu8088Debugger) AddressWidth() int { return 20 }

func (d *cpu8088Debugger) GetRegisters() []RegisterInfo {
	c := d.cpu
	return []RegisterInfo{
		{Name: "AX", BitWidth: 16, Value: uint64(c.AX), Group: "general"},
		{Name: "BX", BitWidth: 16, Value: uint64(c.BX), Group: "general"},
		{Name: "CX", BitWidth: 16, Value: uint64(c.CX), Group: "general"},
		{Name: "DX", BitWidth: 16, Value: uint64(c.DX), Group: "general"},
		{Name: "SI", BitWidth: 16, Value: uint64(c.SI), Group: "general"},
		{Name: "DI", BitWidth: 16, Value: uint64(c.DI), Group: "general"},
		{Name: "BP", BitWidth: 16, Value: uint64(c.BP), Group: "general"},
		{Name: "SP", BitWidth: 16, Value: uint64(c.SP), Group: "general"},
		{Name: "IP", BitWidth: 16, Value: uint64(c.IP), Group: "general"},
		{Name: "CS", BitWidth: 16, Value: uint64(c.segs[SegCS]), Group: "segment"},
		{Name: "DS", BitWidth: 16, Value: uint64(c.segs[SegDS]), Group: "segment"},
		{Name: "ES", BitWidth: 16, Value: uint64(c.segs[SegES]), Group: "segment"},
		{Name: "SS", BitWidth: 16, Value: uint64(c.segs[SegSS]), Group: "segment"},
		{Name: "FLAGS", BitWidth: 16, Value: uint64(c.Flags), Group: "flags"},
	}
}

func (d *cpu8088Debugger) regPtr(name string) *uint16 {
	c := d.cpu
	switch name {
	case "AX":
		return &c.AX
	case "BX":
		return &c.BX
	case "CX":
		return &c.CX
	case "DX":
		return &c.DX
	case "SI":
		return &c.SI
	case "DI":
		return &c.DI
	case "BP":
		return &c.BP
	case "SP":
		return &c.SP
	case "IP":
		return &c.IP
	case "CS":
		return &c.segs[SegCS]
	case "DS":
		return &c.segs[SegDS]
	case "ES":
		return &c.segs[SegES]
	case "SS":
		return &c.segs[SegSS]
	case "FLAGS":
		return &c.Flags
	}
	return nil
}

func (d *cpu8088Debugger) GetRegister(name string) (uint64, bool) {
	if p := d.regPtr(name); p != nil {
		return uint64(*p), true
	}
	return 0, false
}

func (d *cpu8088Debugger) SetRegister(name string, value uint64) bool {
	if p := d.regPtr(name); p != nil {
		*p = uint16(value)
		return true
	}
	return false
}

func (d *cpu8088Debugger) GetPC() uint64 { return uint64(d.cpu.linearPC()) }

func (d *cpu8088Debugger) SetPC(addr uint64) {
	d.cpu.segs[SegCS] = uint16(addr >> 4)
	d.cpu.IP = uint16(addr & 0xF)
}

// AttachMachine gives the debugger access to the owning Machine for the
// "io" command's device register dump (debug_ioview.go). Device ticking
// itself doesn't need anything from here: NewMachine already wires
// CPU8088.SetDeviceTick to Machine.tickDevices, so every tick the CPU
// spends - whether driven by RunCycles or by this Step - reaches the
// devices at the moment it's spent.
func (d *cpu8088Debugger) AttachMachine(m *Machine) { d.machine = m }

func (d *cpu8088Debugger) IsRunning() bool { return !d.frozen }
func (d *cpu8088Debugger) Freeze()         { d.frozen = true }
func (d *cpu8088Debugger) Resume()         { d.frozen = false }

// Step executes one instruction and fires breakpoint/watchpoint events on
// the attached channel, returning the tick count consumed.
func (d *cpu8088Debugger) Step() int {
	before := make(map[uint64]byte, len(d.watchpoints))
	for addr := range d.watchpoints {
		b, _ := d.bus.ReadByte(uint32(addr))
		before[addr] = b
	}

	ticks := d.cpu.Step()

	pc := uint64(d.cpu.linearPC())
	if bp, ok := d.breakpoints[pc]; ok {
		if evaluateBreakpointCondition(d, bp.Condition) {
			bp.HitCount++
			d.publish(BreakpointEvent{CPUID: d.cpuID, Address: pc})
		}
	}
	for addr, wp := range d.watchpoints {
		cur, _ := d.bus.ReadByte(uint32(addr))
		if cur != before[addr] {
			d.publish(BreakpointEvent{
				CPUID:         d.cpuID,
				Address:       pc,
				IsWatch:       true,
				WatchAddr:     addr,
				WatchOldValue: wp.LastValue,
				WatchNewValue: cur,
			})
			wp.LastValue = cur
		}
	}
	return ticks
}

func (d *cpu8088Debugger) publish(ev BreakpointEvent) {
	if d.events == nil {
		return
	}
	select {
	case d.events <- ev:
	default:
	}
}

func (d *cpu8088Debugger) Disassemble(addr uint64, count int) []DisassembledLine {
	return disassembleRange(d.bus, uint32(addr), count, uint32(d.cpu.linearPC()))
}

func (d *cpu8088Debugger) SetBreakpoint(addr uint64) bool {
	return d.SetConditionalBreakpoint(addr, nil)
}

func (d *cpu8088Debugger) SetConditionalBreakpoint(addr uint64, cond *BreakpointCondition) bool {
	d.breakpoints[addr] = &ConditionalBreakpoint{Address: addr, Condition: cond}
	return true
}

func (d *cpu8088Debugger) ClearBreakpoint(addr uint64) bool {
	if _, ok := d.breakpoints[addr]; !ok {
		return false
	}
	delete(d.breakpoints, addr)
	return true
}

func (d *cpu8088Debugger) ClearAllBreakpoints() {
	d.breakpoints = make(map[uint64]*ConditionalBreakpoint)
}

func (d *cpu8088Debugger) ListBreakpoints() []uint64 {
	out := make([]uint64, 0, len(d.breakpoints))
	for addr := range d.breakpoints {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (d *cpu8088Debugger) ListConditionalBreakpoints() []*ConditionalBreakpoint {
	out := make([]*ConditionalBreakpoint, 0, len(d.breakpoints))
	for _, bp := range d.breakpoints {
		out = append(out, bp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

func (d *cpu8088Debugger) HasBreakpoint(addr uint64) bool {
	_, ok := d.breakpoints[addr]
	return ok
}

func (d *cpu8088Debugger) GetConditionalBreakpoint(addr uint64) *ConditionalBreakpoint {
	return d.breakpoints[addr]
}

func (d *cpu8088Debugger) SetWatchpoint(addr uint64) bool {
	cur, _ := d.bus.ReadByte(uint32(addr))
	d.watchpoints[addr] = &Watchpoint{Type: WatchWrite, Address: addr, LastValue: cur}
	return true
}

func (d *cpu8088Debugger) ClearWatchpoint(addr uint64) bool {
	if _, ok := d.watchpoints[addr]; !ok {
		return false
	}
	delete(d.watchpoints, addr)
	return true
}

func (d *cpu8088Debugger) ClearAllWatchpoints() {
	d.watchpoints = make(map[uint64]*Watchpoint)
}

func (d *cpu8088Debugger) ListWatchpoints() []uint64 {
	out := make([]uint64, 0, len(d.watchpoints))
	for addr := range d.watchpoints {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (d *cpu8088Debugger) ReadMemory(addr uint64, size int) []byte {
	out := make([]byte, size)
	for i := 0; i < size; i++ {
		out[i] = d.bus.PeekByte(uint32(addr) + uint32(i))
	}
	return out
}

func (d *cpu8088Debugger) WriteMemory(addr uint64, data []byte) {
	for i, b := range data {
		d.bus.WriteByte(uint32(addr)+uint32(i), b)
	}
}

func (d *cpu8088Debugger) SetBreakpointChannel(ch chan<- BreakpointEvent, cpuID int) {
	d.events = ch
	d.cpuID = cpuID
}

var _ DebuggableCPU = (*cpu8088Debugger)(nil)
var _ fmt.Stringer = (*CPU8088)(nil)
