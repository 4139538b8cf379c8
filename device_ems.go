// device_ems.go - LOTECH-style bank-switched Expanded Memory.
//
// Chosen over the more elaborate "fantasy EMS" design present in the
// original sources because its hardware interface is small and fully
// specified: a single I/O port selects, per 16KB page-frame slot, which
// 16KB bank of a larger backing EMS pool is currently mapped into the
// page-frame window at 0xE0000-0xEFFFF. Four page-frame slots, each
// independently switchable, mirror the LOTECH 2MB board's addressing.
package main

const (
	emsPageSize  = 16 * 1024
	emsPageSlots = 4
)

// EMSBoard is a bank-switched expanded-memory card occupying the page
// frame at EMSPageFrameBase.
type EMSBoard struct {
	pool       []byte // the full backing EMS store, poolPages*emsPageSize bytes
	poolPages  int
	mappedPage [emsPageSlots]int // which pool page each page-frame slot currently shows; -1 = unmapped
}

// NewEMSBoard allocates an EMS pool of the given total size in bytes,
// rounded down to a whole number of 16KB pages.
func NewEMSBoard(poolBytes int) *EMSBoard {
	pages := poolBytes / emsPageSize
	e := &EMSBoard{pool: make([]byte, pages*emsPageSize), poolPages: pages}
	e.Reset()
	return e
}

func (e *EMSBoard) Reset() {
	for i := range e.mappedPage {
		e.mappedPage[i] = -1
	}
}

func (e *EMSBoard) Contains(addr uint32) bool {
	return addr >= EMSPageFrameBase && addr <= EMSPageFrameEnd
}

func (e *EMSBoard) ReadMMIO(addr uint32) uint8 {
	slot, off := e.slotOffset(addr)
	page := e.mappedPage[slot]
	if page < 0 {
		return 0xFF
	}
	return e.pool[page*emsPageSize+off]
}

func (e *EMSBoard) WriteMMIO(addr uint32, v uint8) {
	slot, off := e.slotOffset(addr)
	page := e.mappedPage[slot]
	if page < 0 {
		return
	}
	e.pool[page*emsPageSize+off] = v
}

func (e *EMSBoard) slotOffset(addr uint32) (slot int, off uint32) {
	rel := addr - EMSPageFrameBase
	return int(rel / emsPageSize), rel % emsPageSize
}

// OutByte implements the page-frame-select register at PortEMSBase: the
// low 2 bits select which of the four page-frame slots is being
// programmed, and the upper 6 bits give the pool page number to map there
// (a page number at or past the end of the pool unmaps the slot). Only
// pool pages 0-63 can be selected, so with a pool of 64 pages or more no
// write unmaps a slot and pages past 63 are never mapped.
func (e *EMSBoard) OutByte(port uint16, v uint8) {
	if port != PortEMSBase {
		return
	}
	slot := int(v & 0x03)
	page := int(v >> 2)
	if page >= e.poolPages {
		e.mappedPage[slot] = -1
		return
	}
	e.mappedPage[slot] = page
}

func (e *EMSBoard) InByte(port uint16) uint8 {
	if port != PortEMSBase {
		return 0xFF
	}
	return 0
}

func (e *EMSBoard) Tick(ticks int) {}
