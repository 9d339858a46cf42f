// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/regvm/vm"
)

const (
	DEFAULT_LIMIT = 100_000_000 // Default step limit of a run.
)

// Emulator state. A machine, plus a step limit and source tracking.
type Emulator struct {
	Verbose     bool // If set, enables verbose logging.
	*vm.Machine      // Reference to the machine simulation.
	Limit       int  // Step limit for Run. vm.UNBOUNDED disables the limit.
}

// NewEmulator creates a new emulator for a program.
func NewEmulator(prog *vm.Program) (emu *Emulator) {
	emu = &Emulator{
		Machine: vm.NewMachine(prog),
		Limit:   DEFAULT_LIMIT,
	}

	return
}

// Reset the emulator to the start of the program with a register preset.
func (emu *Emulator) Reset(regs vm.Registers) {
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Reset(regs)
}

// LineNo returns the source line number of the current instruction,
// or 0 if the machine has halted.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	done, err = emu.Machine.Tick()

	return
}

// Run executes until the program halts or the step limit is exceeded,
// and returns the final registers.
func (emu *Emulator) Run() (regs vm.Registers, err error) {
	emu.Machine.Verbose = emu.Verbose

	err = emu.Machine.Run(emu.Limit)
	if err != nil {
		err = &ErrRuntime{LineNo: emu.LineNo(), Err: err}
	}

	regs = emu.Registers

	return
}

// Part is a single run of a program, such as one part of a puzzle.
type Part struct {
	Name   string       // Name of the part, for reporting.
	Preset vm.Registers // Initial registers.
	Answer vm.Register  // Register holding the answer after the run.
}

// Solve runs every part against the same program concurrently, each with
// its own registers, and returns the answer register of each part.
func Solve(prog *vm.Program, limit int, verbose bool, parts ...Part) (answers []int64, err error) {
	answers = make([]int64, len(parts))

	var group errgroup.Group
	for n, part := range parts {
		group.Go(func() (err error) {
			emu := NewEmulator(prog)
			emu.Verbose = verbose
			emu.Limit = limit
			emu.Reset(part.Preset)

			regs, err := emu.Run()
			if err != nil {
				err = &ErrPart{Part: part.Name, Err: err}
				return
			}

			answers[n] = regs.Get(part.Answer)
			if verbose {
				log.Printf("%v: %v after %d ticks", part.Name, regs.Format(prog.Vocabulary), emu.Ticks)
			}

			return
		})
	}

	err = group.Wait()
	if err != nil {
		answers = nil
		return
	}

	return
}
