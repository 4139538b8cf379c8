// device_fdc.go - NEC 765 (uPD765) floppy disk controller, PC/XT wiring.
//
// The PC/XT BIOS only ever drives a handful of the chip's fourteen
// commands (recalibrate, seek, read/write sector, sense interrupt status,
// specify, read ID), so this core implements that working subset behind
// the real main-status/data-register handshake rather than the full
// command catalogue. DMA is requested through the attached DMAController
// on channel 2 for READ DATA/WRITE DATA; the result-phase bytes follow
// the same ST0/ST1/ST2/C/H/R/N layout real PC/XT software parses.
package main

type fdcPhase int

const (
	fdcPhaseIdle fdcPhase = iota
	fdcPhaseCommand
	fdcPhaseExecution
	fdcPhaseResult
)

const (
	fdcCmdReadData           = 0x06
	fdcCmdWriteData          = 0x05
	fdcCmdRecalibrate        = 0x07
	fdcCmdSenseInterrupt     = 0x08
	fdcCmdSpecify            = 0x03
	fdcCmdSenseDriveStatus   = 0x04
	fdcCmdSeek               = 0x0F
	fdcCmdReadID             = 0x0A
)

var fdcCommandLength = map[uint8]int{
	fdcCmdReadData:         8,
	fdcCmdWriteData:        8,
	fdcCmdRecalibrate:      1,
	fdcCmdSenseInterrupt:   0,
	fdcCmdSpecify:          2,
	fdcCmdSenseDriveStatus: 1,
	fdcCmdSeek:             2,
	fdcCmdReadID:           1,
}

// FloppyImage is a single mounted diskette's raw sector image plus its
// CHS geometry, backing the minimal flat-file floppy format this core
// reads (no compressed/sector-edited image formats).
type FloppyImage struct {
	Data                []byte
	Cylinders, Heads, SectorsPerTrack int
}

func (f *FloppyImage) offset(c, h, s int) int {
	return ((c*f.Heads+h)*f.SectorsPerTrack + (s - 1)) * 512
}

type fdcDrive struct {
	image          *FloppyImage
	present        bool
	currentCyl     int
	seekInterrupt  bool
	abnormalResult bool
}

// FDC is the NEC 765 controller servicing up to two floppy drives (0, 1).
type FDC struct {
	phase       fdcPhase
	command     uint8
	commandBuf  []uint8
	commandWant int
	resultBuf   []uint8
	resultPos   int

	drives [2]fdcDrive

	dma         *DMAController
	onIRQ       func(bool)
	dmaBuffer   []byte
	dmaPos      int
	dmaActive   bool
	dmaIsWrite  bool
}

func NewFDC() *FDC {
	f := &FDC{}
	f.Reset()
	return f
}

func (f *FDC) Reset() {
	f.phase = fdcPhaseIdle
	f.commandBuf = nil
	f.resultBuf = nil
	f.resultPos = 0
	for i := range f.drives {
		f.drives[i].currentCyl = 0
		f.drives[i].seekInterrupt = true // the real chip raises IRQ6 once at reset
	}
	if f.onIRQ != nil {
		f.onIRQ(true)
	}
}

// AttachDMA wires the controller that services channel 2 DREQ/DACK.
func (f *FDC) AttachDMA(dma *DMAController) {
	f.dma = dma
	dma.AttachPeripheral(2, f)
}

// SetIRQHandler wires IRQ6 to the PIC.
func (f *FDC) SetIRQHandler(fn func(bool)) { f.onIRQ = fn }

// MountImage inserts media into drive (0 or 1).
func (f *FDC) MountImage(drive int, img *FloppyImage) {
	f.drives[drive].image = img
	f.drives[drive].present = img != nil
}

const (
	fdcMSRDrv0Busy = 1 << 0
	fdcMSRCmdBusy  = 1 << 4
	fdcMSRNonDMA   = 1 << 5
	fdcMSRDIO      = 1 << 6 // 1: controller->CPU (read result/data)
	fdcMSRRQM      = 1 << 7 // ready for data transfer
)

func (f *FDC) msr() uint8 {
	v := uint8(fdcMSRRQM)
	switch f.phase {
	case fdcPhaseCommand:
		// RQM|data-direction=0 already set; nothing more to add.
	case fdcPhaseExecution:
		v |= fdcMSRCmdBusy
	case fdcPhaseResult:
		v |= fdcMSRCmdBusy | fdcMSRDIO
	}
	return v
}

func (f *FDC) InByte(port uint16) uint8 {
	switch port {
	case PortFDCBase + 4: // main status register (0x3F4)
		return f.msr()
	case PortFDCBase + 5: // data register (0x3F5)
		return f.readData()
	case PortFDCBase + 7: // digital input register (0x3F7), high bit = disk change
		return 0
	default:
		return 0xFF
	}
}

func (f *FDC) OutByte(port uint16, v uint8) {
	switch port {
	case PortFDCBase + 2: // digital output register (0x3F2): motor/drive select/reset
		if v&0x04 == 0 {
			f.Reset() // DOR bit 2 low holds the chip in reset
		}
	case PortFDCBase + 5:
		f.writeData(v)
	}
}

func (f *FDC) readData() uint8 {
	switch f.phase {
	case fdcPhaseResult:
		if f.resultPos >= len(f.resultBuf) {
			f.phase = fdcPhaseIdle
			return 0
		}
		b := f.resultBuf[f.resultPos]
		f.resultPos++
		if f.resultPos >= len(f.resultBuf) {
			f.phase = fdcPhaseIdle
		}
		return b
	default:
		return 0xFF
	}
}

func (f *FDC) writeData(v uint8) {
	switch f.phase {
	case fdcPhaseIdle:
		f.command = v
		want, ok := fdcCommandLength[v&0x1F]
		if !ok {
			f.beginResult([]uint8{0x80}) // ST0 = invalid command
			return
		}
		f.commandWant = want
		f.commandBuf = f.commandBuf[:0]
		if want == 0 {
			f.execute()
		} else {
			f.phase = fdcPhaseCommand
		}
	case fdcPhaseCommand:
		f.commandBuf = append(f.commandBuf, v)
		if len(f.commandBuf) >= f.commandWant {
			f.execute()
		}
	}
}

func (f *FDC) execute() {
	switch f.command & 0x1F {
	case fdcCmdSpecify:
		f.phase = fdcPhaseIdle
	case fdcCmdRecalibrate:
		drive := int(f.commandBuf[0] & 0x03)
		f.drives[drive%2].currentCyl = 0
		f.drives[drive%2].seekInterrupt = true
		f.phase = fdcPhaseIdle
		f.raiseIRQ()
	case fdcCmdSeek:
		drive := int(f.commandBuf[0] & 0x03)
		cyl := int(f.commandBuf[1])
		f.drives[drive%2].currentCyl = cyl
		f.drives[drive%2].seekInterrupt = true
		f.phase = fdcPhaseIdle
		f.raiseIRQ()
	case fdcCmdSenseInterrupt:
		drive := 0
		for i, d := range f.drives {
			if d.seekInterrupt {
				drive = i
				d.seekInterrupt = false
				f.drives[i] = d
				break
			}
		}
		st0 := uint8(drive) | 0x20 // seek-end
		f.beginResult([]uint8{st0, uint8(f.drives[drive].currentCyl)})
	case fdcCmdSenseDriveStatus:
		drive := int(f.commandBuf[0] & 0x03)
		var st3 uint8
		if f.drives[drive%2].present {
			st3 |= 0x20 // track0 convention folded in for a drive with media present
		}
		f.beginResult([]uint8{st3})
	case fdcCmdReadID:
		drive := int(f.commandBuf[0] & 0x03)
		d := &f.drives[drive%2]
		f.beginResult([]uint8{uint8(drive), 0, 0, uint8(d.currentCyl), 0, 1, 2, 0})
	case fdcCmdReadData, fdcCmdWriteData:
		f.beginSectorTransfer()
	default:
		f.beginResult([]uint8{0x80})
	}
}

func (f *FDC) beginSectorTransfer() {
	buf := f.commandBuf
	drive := int(buf[0] & 0x03)
	cyl, head, sector := int(buf[1]), int(buf[2]), int(buf[3])
	d := &f.drives[drive%2]
	if d.image == nil {
		f.beginResult([]uint8{0x40 | uint8(drive), 0x01, 0, uint8(cyl), uint8(head), uint8(sector), 2})
		return
	}
	off := d.image.offset(cyl, head, sector)
	if off < 0 || off+512 > len(d.image.Data) {
		f.beginResult([]uint8{0x40 | uint8(drive), 0x04, 0, uint8(cyl), uint8(head), uint8(sector), 2})
		return
	}
	f.dmaIsWrite = f.command&0x1F == fdcCmdWriteData
	f.dmaBuffer = d.image.Data[off : off+512]
	f.dmaPos = 0
	f.dmaActive = true
	f.phase = fdcPhaseExecution
	if f.dma != nil {
		f.dma.RequestService(2)
	}
}

func (f *FDC) beginResult(bytes []uint8) {
	f.resultBuf = bytes
	f.resultPos = 0
	f.phase = fdcPhaseResult
}

func (f *FDC) raiseIRQ() {
	if f.onIRQ != nil {
		f.onIRQ(true)
		f.onIRQ(false)
	}
}

// DMAReadByte supplies sector bytes to the DMA controller during READ DATA
// (the disk-to-memory direction); it reports no data during WRITE DATA or
// once the sector buffer is exhausted.
func (f *FDC) DMAReadByte() (uint8, bool) {
	if !f.dmaActive || f.dmaIsWrite || f.dmaPos >= len(f.dmaBuffer) {
		return 0, false
	}
	b := f.dmaBuffer[f.dmaPos]
	f.dmaPos++
	return b, true
}

func (f *FDC) DMAWriteByte(v uint8) {
	if !f.dmaActive || !f.dmaIsWrite || f.dmaPos >= len(f.dmaBuffer) {
		return
	}
	f.dmaBuffer[f.dmaPos] = v
	f.dmaPos++
}

func (f *FDC) DMATerminalCount() {
	f.dmaActive = false
	buf := f.commandBuf
	cyl, head, sector := buf[1], buf[2], buf[3]
	f.beginResult([]uint8{0, 0, 0, cyl, head, sector, 2})
	f.raiseIRQ()
}

// Tick implements Ticker; command execution in this model completes
// synchronously on the triggering writeData/DMA call rather than after a
// simulated seek/rotation delay.
func (f *FDC) Tick(ticks int) {}
