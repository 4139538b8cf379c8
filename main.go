// main.go - headless machine-lifecycle entry point. The interactive
// front end (a GUI, a terminal UI) is out of scope; this binary exists to
// construct a Machine from command-line-supplied ROM images, run it for
// a fixed cycle budget (breakpoints are not checked), and print a register
// snapshot, mirroring the teacher's own CLI-invocation shape without its
// GUI/audio/video backend selection flags.

package main

import (
	"flag"
	"fmt"
	"os"
)

const Version = "0.1.0"

func main() {
	biosPath := flag.String("bios", "", "path to the system BIOS ROM image")
	biosBase := flag.Uint64("bios-base", 0xF0000, "load address for the BIOS ROM")
	cycles := flag.Uint64("cycles", 1_000_000, "number of CPU cycles to run before exiting")
	showFeatures := flag.Bool("features", false, "print compiled feature flags and exit")
	flag.Parse()

	if *showFeatures {
		printFeatures()
		return
	}

	cfg := MachineConfig{
		Video:           VideoCGA,
		ConventionalKiB: 640,
		PitType:         Pit8253,
		DIPSwitchesLow:  0x2C,
		HDCDriveTypeDIP: 0b1010,
		CyclesPerSecond: 4772727,
	}

	if *biosPath != "" {
		rom, err := os.ReadFile(*biosPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read BIOS image: %v\n", err)
			os.Exit(1)
		}
		cfg.BIOSROM = rom
		cfg.BIOSBase = uint32(*biosBase)
	}

	m, err := NewMachine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to construct machine: %v\n", err)
		os.Exit(1)
	}

	ran := m.RunCycles(*cycles)
	fmt.Printf("ran %d cycles\n%s\n", ran, m.CPU)
}
