// device_hdc.go - Xebec/IBM fixed disk controller (the ports the PC/XT's
// 10MB/20MB hard disk BIOS extension drives).
//
// Ported from the status/error byte layout in MartyPC's src/hdc.rs
// (R1_STATUS_* and ERR_* constants) and its state machine shape: a
// controller-select byte, then a five-byte Device Control Block (DCB)
// naming drive/cylinder/head/sector/block-count, dispatched to one of a
// handful of commands (test drive ready, recalibrate, sense status, read
// sector, write sector, seek, initialize drive characteristics). Unlike
// the original's async per-microsecond `run()` step, this core completes
// a DCB's data phase synchronously against the attached VHD image once
// the last command byte lands, since nothing downstream depends on the
// exact seek-latency timing the spec explicitly scopes out.
package main

const (
	hdcR1StatusReq    = 1 << 0
	hdcR1StatusIOMode = 1 << 1
	hdcR1StatusBus    = 1 << 2
	hdcR1StatusBusy   = 1 << 3
	hdcR1StatusDREQ   = 1 << 4
	hdcR1StatusInt    = 1 << 5

	hdcErrNone           = 0x00
	hdcErrNoIndexSignal  = 0b00_0010
	hdcErrWriteFault     = 0b00_0011
	hdcErrNoReadySignal  = 0b00_0100
	hdcErrSectorNotFound = 0b01_0100
	hdcErrSeekError      = 0b01_0101
	hdcErrInvalidCommand = 0b10_0000
	hdcErrIllegalAccess  = 0b10_0001
)

const (
	hdcCmdTestDriveReady  = 0x00
	hdcCmdRecalibrate     = 0x01
	hdcCmdSenseStatus     = 0x03
	hdcCmdFormatDrive     = 0x04
	hdcCmdReadVerify      = 0x05
	hdcCmdFormatTrack     = 0x06
	hdcCmdFormatBadTrack  = 0x07
	hdcCmdRead            = 0x08
	hdcCmdWrite            = 0x0A
	hdcCmdSeek            = 0x0B
	hdcCmdInitDriveChar   = 0x0C
	hdcCmdReadECCBurst    = 0x0D
	hdcCmdReadSectorBuf   = 0x0E
	hdcCmdWriteSectorBuf  = 0x0F
	hdcCmdRamDiagnostic   = 0xE0
	hdcCmdDriveDiagnostic = 0xE3
	hdcCmdControllerDiag  = 0xE4
)

type hdcState int

const (
	hdcStateIdle hdcState = iota
	hdcStateReceivingDCB
	hdcStateExecuting
	hdcStateHaveResult
)

// VHDImage is a flat fixed-disk image with fixed CHS geometry, matching
// the single supported format (615/4/17, IBM Type 2) the original carries.
type VHDImage struct {
	Data                        []byte
	Cylinders, Heads, SectorsPerTrack int
	path                        string
	lock                        vhdLock
}

func (v *VHDImage) offset(c int, h, s uint8) int {
	return ((c*v.Heads+int(h))*v.SectorsPerTrack + (int(s) - 1)) * 512
}

type hdcDrive struct {
	vhd     *VHDImage
	present bool
}

// HDC is the fixed-disk controller for up to two drives.
type HDC struct {
	drives     [2]hdcDrive
	driveType  uint8 // DIP switch value read back at PortHDCDIPRead

	state       hdcState
	dcbBuf      []uint8
	command     uint8
	resultByte  uint8 // completion-status byte read at PortHDCStatus's companion data port

	lastError      uint8
	lastErrorDrive int

	dma        *DMAController
	onIRQ      func(bool)
	dmaEnabled bool
	irqEnabled bool

	dmaBuffer  []byte
	dmaPos     int
	dmaActive  bool
	dmaIsWrite bool
}

// NewHDC returns a controller reporting driveTypeDIP on the DIP-switch
// readback port (0b1010 selects the IBM Type 2, 20MB format).
func NewHDC(driveTypeDIP uint8) *HDC {
	h := &HDC{driveType: driveTypeDIP}
	h.Reset()
	return h
}

func (h *HDC) Reset() {
	h.state = hdcStateIdle
	h.dcbBuf = nil
	h.lastError = hdcErrNone
}

func (h *HDC) AttachDMA(dma *DMAController) {
	h.dma = dma
	dma.AttachPeripheral(3, h)
}

func (h *HDC) SetIRQHandler(fn func(bool)) { h.onIRQ = fn }

// MountVHD attaches a fixed-disk image to drive 0 or 1.
func (h *HDC) MountVHD(drive int, vhd *VHDImage) {
	h.drives[drive].vhd = vhd
	h.drives[drive].present = vhd != nil
}

func (h *HDC) InByte(port uint16) uint8 {
	switch port {
	case PortHDCData:
		return h.readData()
	case PortHDCStatus:
		return h.statusRegister()
	case PortHDCDIPRead:
		return h.driveType
	default:
		return 0xFF
	}
}

func (h *HDC) OutByte(port uint16, v uint8) {
	switch port {
	case PortHDCData:
		h.writeData(v)
	case PortHDCDIPRead: // controller-select, a write-side alias of the DIP read port
		// no-op: single controller, nothing to select between
	case PortHDCWriteMask:
		h.dmaEnabled = v&0x01 != 0
		h.irqEnabled = v&0x02 != 0
	}
}

func (h *HDC) statusRegister() uint8 {
	var v uint8
	switch h.state {
	case hdcStateIdle:
		v = hdcR1StatusReq | hdcR1StatusIOMode | hdcR1StatusBus
	case hdcStateReceivingDCB:
		v = hdcR1StatusReq | hdcR1StatusBusy
	case hdcStateExecuting:
		v = hdcR1StatusBusy
	case hdcStateHaveResult:
		v = hdcR1StatusReq | hdcR1StatusIOMode | hdcR1StatusBus | hdcR1StatusBusy
	}
	if h.irqEnabled {
		v |= hdcR1StatusInt
	}
	return v
}

func (h *HDC) readData() uint8 {
	if h.state == hdcStateHaveResult {
		h.state = hdcStateIdle
		return h.resultByte
	}
	return 0
}

func (h *HDC) writeData(v uint8) {
	switch h.state {
	case hdcStateIdle:
		h.command = v
		h.dcbBuf = h.dcbBuf[:0]
		h.state = hdcStateReceivingDCB
	case hdcStateReceivingDCB:
		h.dcbBuf = append(h.dcbBuf, v)
		if len(h.dcbBuf) >= 5 {
			h.execute()
		}
	}
}

// execute decodes the five-byte DCB: byte0 bit5 = drive select, bits0-4 =
// head; byte1/2 = cylinder (10 bits, high 2 bits in byte2's top bits);
// byte2 bits0-5 = sector. Bytes 3 and 4 are not read: each read or write
// command moves a single 512-byte sector.
func (h *HDC) execute() {
	b := h.dcbBuf
	drive := int(b[0]>>5) & 0x01
	head := b[0] & 0x1F
	cyl := int(b[1]) | int(b[2]&0xC0)<<2
	sector := b[2] & 0x3F
	d := &h.drives[drive]

	h.state = hdcStateExecuting
	switch h.command {
	case hdcCmdTestDriveReady, hdcCmdRecalibrate, hdcCmdSenseStatus, hdcCmdInitDriveChar, hdcCmdSeek:
		h.completeImmediate(drive, hdcErrNone)
	case hdcCmdRead, hdcCmdReadVerify:
		h.beginTransfer(d, drive, cyl, head, sector, false)
	case hdcCmdWrite:
		h.beginTransfer(d, drive, cyl, head, sector, true)
	default:
		h.completeImmediate(drive, hdcErrInvalidCommand)
	}
}

func (h *HDC) beginTransfer(d *hdcDrive, drive, cyl int, head, sector uint8, write bool) {
	if d.vhd == nil {
		h.completeImmediate(drive, hdcErrNoReadySignal)
		return
	}
	off := d.vhd.offset(cyl, head, sector)
	if off < 0 || off+512 > len(d.vhd.Data) {
		h.completeImmediate(drive, hdcErrSectorNotFound)
		return
	}
	h.dmaBuffer = d.vhd.Data[off : off+512]
	h.dmaPos = 0
	h.dmaIsWrite = write
	h.dmaActive = true
	if h.dma != nil {
		h.dma.RequestService(3)
	}
}

func (h *HDC) completeImmediate(drive int, errCode uint8) {
	h.lastError = errCode
	h.lastErrorDrive = drive
	h.resultByte = errCode
	h.state = hdcStateHaveResult
	h.raiseIRQ()
}

func (h *HDC) raiseIRQ() {
	if h.irqEnabled && h.onIRQ != nil {
		h.onIRQ(true)
		h.onIRQ(false)
	}
}

func (h *HDC) DMAReadByte() (uint8, bool) {
	if !h.dmaActive || h.dmaIsWrite || h.dmaPos >= len(h.dmaBuffer) {
		return 0, false
	}
	v := h.dmaBuffer[h.dmaPos]
	h.dmaPos++
	return v, true
}

func (h *HDC) DMAWriteByte(v uint8) {
	if !h.dmaActive || !h.dmaIsWrite || h.dmaPos >= len(h.dmaBuffer) {
		return
	}
	h.dmaBuffer[h.dmaPos] = v
	h.dmaPos++
}

func (h *HDC) DMATerminalCount() {
	h.dmaActive = false
	h.completeImmediate(0, hdcErrNone)
}

func (h *HDC) Tick(ticks int) {}
