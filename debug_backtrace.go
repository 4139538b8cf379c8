// debug_backtrace.go - "bt" monitor command: a best-effort walk of return
// addresses sitting on the stack. Generic over DebuggableCPU (no frame
// pointer chain is assumed, since not every caller sets up BP as a frame
// pointer); it just lists the consecutive words starting at SP, without
// filtering them, the same heuristic a monitor without
// debug-symbol/frame-pointer information falls back to.

package main

// backtrace returns up to depth candidate return addresses above the
// current stack pointer, linearized through SS for a segmented CPU (SS
// register present) or read flat otherwise.
func backtrace(cpu DebuggableCPU, depth int) []uint64 {
	sp, ok := cpu.GetRegister("SP")
	if !ok {
		return nil
	}

	var base uint64
	if ss, ok := cpu.GetRegister("SS"); ok {
		base = ss<<4 + sp
	} else {
		base = sp
	}

	out := make([]uint64, 0, depth)
	for i := 0; i < depth; i++ {
		addr := base + uint64(i*2)
		data := cpu.ReadMemory(addr, 2)
		if len(data) < 2 {
			break
		}
		out = append(out, uint64(data[0])|uint64(data[1])<<8)
	}
	return out
}
