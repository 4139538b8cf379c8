// machine.go - Top-level machine: wires the CPU, bus, and every device
// together and runs the single-threaded stepping loop; every CPU tick
// reaches each device's Tick as it is spent (see RunCycles), the same
// "deliver ticks to every device" discipline spec §2/§5 describe and
// the teacher's own runtime_helpers.go/runtime_ipc.go drove for its
// machine's frame loop (rebuilt here for PC/XT device timing instead of
// that teacher's video-chip-centric scheduling).

package main

import "fmt"

// VideoStandard selects which display card(s) a MachineConfig installs.
type VideoStandard int

const (
	VideoNone VideoStandard = iota
	VideoMDA
	VideoCGA
	VideoTGAPCJr
	VideoTGATandy
	VideoEGA
	VideoVGA
)

// MachineConfig is the struct-literal configuration surface for a
// Machine, matching the teacher's own config-by-struct-literal pattern
// (CPUX86Config) rather than a parsed config file.
type MachineConfig struct {
	BIOSROM    []byte
	BIOSBase   uint32
	VideoROM   []byte
	VideoBase  uint32

	Video          VideoStandard
	ConventionalKiB uint32
	PitType        PitType
	DIPSwitchesLow  uint8
	DIPSwitchesHigh uint8
	HDCDriveTypeDIP uint8

	CyclesPerSecond uint64 // nominal CPU clock, 4772727 on a stock PC/XT
}

// Machine owns the CPU, bus, and every installed device, and drives the
// single-threaded run loop.
type Machine struct {
	cfg MachineConfig
	log *Logger

	CPU *CPU8088
	Bus *Bus

	PIC *PIC
	PIT *PIT
	DMA *DMAController
	PPI *PPI

	Video VideoAdapter

	FDC *FDC
	HDC *HDC

	Serial1 *Serial8250
	Serial2 *Serial8250
	Mouse   *SerialMouse

	EMS *EMSBoard
	Mem *ConventionalMemory

	Debugger *cpu8088Debugger
	Monitor  *MachineMonitor

	dmaHeld bool
}

// NewMachine constructs and wires a complete PC/XT-class machine from
// cfg. Devices are registered with the bus before Seal, mirroring
// machine_bus.go's (now bus.go's) registration-then-seal discipline.
func NewMachine(cfg MachineConfig) (*Machine, error) {
	m := &Machine{cfg: cfg, log: NewLogger(LogWarn)}

	m.Bus = NewBus()
	m.CPU = NewCPU8088(m.Bus)

	m.PIC = NewPIC()
	m.PIT = NewPIT(cfg.PitType)
	m.DMA = NewDMAController()
	m.PPI = NewPPI(cfg.DIPSwitchesLow, cfg.DIPSwitchesHigh)
	m.FDC = NewFDC()
	m.HDC = NewHDC(cfg.HDCDriveTypeDIP)
	m.Serial1 = NewSerial8250(PortSerial1Base)
	m.Serial2 = NewSerial8250(PortSerial2Base)
	m.Mouse = NewSerialMouse(m.Serial2)
	m.EMS = NewEMSBoard(2 * 1024 * 1024)
	m.Mem = NewConventionalMemory(cfg.ConventionalKiB * 1024)

	if err := m.installVideo(cfg.Video); err != nil {
		return nil, err
	}

	m.wireInterrupts()
	m.wireDMA()

	m.Bus.MapPort(PortPICCommand, m.PIC)
	m.Bus.MapPort(PortPICData, m.PIC)
	m.Bus.MapPortRange(PortPITChannel0, PortPITCommand, m.PIT)
	m.Bus.MapPortRange(PortDMAChan0Addr, PortDMAMaskAll, m.DMA)
	m.Bus.MapPort(PortDMAPage0, m.DMA)
	m.Bus.MapPort(PortDMAPage1, m.DMA)
	m.Bus.MapPort(PortDMAPage2, m.DMA)
	m.Bus.MapPort(PortDMAPage3, m.DMA)
	m.Bus.MapPortRange(PortPPIPortA, PortPPICommand, m.PPI)
	m.Bus.MapPortRange(PortFDCBase, PortFDCEnd, m.FDC)
	m.Bus.MapPort(PortHDCData, m.HDC)
	m.Bus.MapPort(PortHDCStatus, m.HDC)
	m.Bus.MapPort(PortHDCDIPRead, m.HDC)
	m.Bus.MapPort(PortHDCWriteMask, m.HDC)
	m.Bus.MapPortRange(PortSerial1Base, PortSerial1End, m.Serial1)
	m.Bus.MapPortRange(PortSerial2Base, PortSerial2End, m.Serial2)
	m.Bus.MapPort(PortEMSBase, m.EMS)
	m.Bus.MapMMIO(EMSPageFrameBase, EMSPageFrameEnd, 0, m.EMS)

	if len(cfg.BIOSROM) > 0 {
		m.Bus.LoadROM(cfg.BIOSBase, cfg.BIOSROM, 0)
	}
	if len(cfg.VideoROM) > 0 {
		m.Bus.LoadROM(cfg.VideoBase, cfg.VideoROM, 0)
	}

	m.Bus.Seal()

	m.CPU.SetInterruptAcknowledge(m.PIC.Acknowledge)
	m.CPU.SetDeviceTick(m.tickDevices)

	m.Debugger = NewCPU8088Debugger(m.CPU, m.Bus)
	m.Debugger.AttachMachine(m)
	m.Monitor = NewMachineMonitor(m.Bus)
	m.Monitor.RegisterCPU("8088", m.Debugger)

	return m, nil
}

func (m *Machine) installVideo(std VideoStandard) error {
	switch std {
	case VideoNone:
		return nil
	case VideoMDA:
		a := NewMDAAdapter()
		m.Video = a
		m.Bus.MapMMIO(MDAMemBase, MDAMemEnd, 0, a)
		m.Bus.MapPortRange(PortMDABase, PortMDAEnd, a)
	case VideoCGA:
		a := NewCGAAdapter()
		m.Video = a
		m.Bus.MapMMIO(CGAMemBase, CGAMemEnd, 0, a)
		m.Bus.MapPortRange(PortCGABase, PortCGAEnd, a)
	case VideoTGAPCJr, VideoTGATandy:
		a := NewTGAAdapter(std == VideoTGATandy)
		m.Video = a
		m.Bus.MapMMIO(CGAMemBase, CGAMemEnd, 0, a)
		m.Bus.MapPortRange(PortCGABase, PortCGAEnd, a)
	case VideoEGA:
		a := NewEGAVGAAdapter(false)
		m.Video = a
		m.Bus.MapMMIO(EGAVGAMemBase, EGAVGAMemEnd, 0, a)
		m.Bus.MapPortRange(PortEGAVGABase, PortEGAVGAEnd, a)
		m.Bus.MapPortRange(PortMDABase, PortMDAEnd, a) // CRTC/status at 0x3B4/3B5/3BA
		m.Bus.MapPortRange(PortCGABase, PortCGAEnd, a) // CRTC/status at 0x3D4/3D5/3DA
	case VideoVGA:
		a := NewEGAVGAAdapter(true)
		m.Video = a
		m.Bus.MapMMIO(EGAVGAMemBase, EGAVGAMemEnd, 0, a)
		m.Bus.MapPortRange(PortEGAVGABase, PortEGAVGAEnd, a)
		m.Bus.MapPortRange(PortMDABase, PortMDAEnd, a) // CRTC/status at 0x3B4/3B5/3BA
		m.Bus.MapPortRange(PortCGABase, PortCGAEnd, a) // CRTC/status at 0x3D4/3D5/3DA
	default:
		return fmt.Errorf("unknown video standard %d", std)
	}
	return nil
}

// wireInterrupts connects every IRQ source to the PIC and the PIC's INTR
// output to the CPU, and PIT channel 0 to IRQ0 per the standard PC/XT IRQ
// assignment (0=timer, 1=keyboard, 5=HDC, 6=FDC).
func (m *Machine) wireInterrupts() {
	m.PIT.SetChannel0OutputHandler(func(high bool) {
		if high {
			m.PIC.RequestInterrupt(0)
		}
	})
	m.PIT.SetChannel1PulseHandler(func() {
		m.DMA.RequestRefresh()
	})
	m.PPI.AttachPIT(m.PIT)
	m.PPI.SetKeyboardClearHandler(func() {})
	m.FDC.SetIRQHandler(func(asserted bool) {
		if asserted {
			m.PIC.PulseInterrupt(6)
		}
	})
	m.HDC.SetIRQHandler(func(asserted bool) {
		if asserted {
			m.PIC.PulseInterrupt(5)
		}
	})
	m.Serial1.SetIRQHandler(func(asserted bool) {
		if asserted {
			m.PIC.PulseInterrupt(4)
		}
	})
	m.Serial2.SetIRQHandler(func(asserted bool) {
		if asserted {
			m.PIC.PulseInterrupt(3)
		}
	})
}

func (m *Machine) wireDMA() {
	m.FDC.AttachDMA(m.DMA)
	m.HDC.AttachDMA(m.DMA)
}

// PushScanCode injects a keyboard scan code and raises IRQ1, the PC/XT
// keyboard interrupt.
func (m *Machine) PushScanCode(code uint8) {
	m.PPI.PushScanCode(code)
	m.PIC.PulseInterrupt(1)
}

// Reset power-cycles the CPU and every installed device; the full
// sequencing lives in component_reset.go's resetAll.
func (m *Machine) Reset() {
	m.resetAll()
}

// RunCycles executes CPU instructions until at least targetCycles system
// clock ticks have elapsed. Devices are not ticked here: CPU8088.tick
// (wired to tickDevices via SetDeviceTick at construction) fans every
// tick out to every device as the CPU spends it, so a multi-thousand-
// iteration REP string op delivers ticks to the PIT/PIC/DMA per element
// instead of in one lump when the whole instruction finally retires. This
// loop only accounts for how many ticks have elapsed. It returns the
// number of cycles actually run (always >= targetCycles unless the CPU
// halts with interrupts globally unavailable, which cannot happen since
// HLT always wakes on NMI/INTR).
func (m *Machine) RunCycles(targetCycles uint64) uint64 {
	var ran uint64
	for ran < targetCycles {
		ran += uint64(m.CPU.Step())
	}
	return ran
}

// tickDevices advances every installed device by ticks system clock ticks
// and re-samples the PIC's INTR output into the CPU. Called from
// CPU8088.tick for every tick spent (see SetDeviceTick in NewMachine), not
// once per Step, so device-visible timing tracks the bus at the CPU's own
// tick granularity.
func (m *Machine) tickDevices(ticks int) {
	m.PIC.Tick(ticks)
	m.PIT.Tick(ticks)
	m.FDC.Tick(ticks)
	m.HDC.Tick(ticks)
	m.Serial1.Tick(ticks)
	m.Serial2.Tick(ticks)
	m.EMS.Tick(ticks)
	if m.Video != nil {
		m.Video.Tick(ticks)
	}
	m.DMA.Tick(ticks, m.Bus, m.setDMAHold)

	m.CPU.SetINTRLine(m.PIC.QueryInterruptLine())

	if ega, ok := m.Video.(*EGAVGAAdapter); ok && ega.RetraceIRQPending() {
		m.PIC.PulseInterrupt(2)
		ega.AcknowledgeRetraceIRQ()
	}
}

func (m *Machine) setDMAHold(held bool) {
	m.dmaHeld = held
	m.CPU.biu.AssertDMAHold(held)
}
