package vm

import (
	"fmt"
	"log"
)

const (
	UNBOUNDED = 0 // Step limit that never aborts a run.
)

// Machine is the execution context of a single run of a Program.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Program   *Program  // Program being run. Never modified.
	Pc        int       // Current program counter.
	Registers Registers // Register file owned by this run.
	Ticks     int       // Instructions executed since Reset.
}

// NewMachine creates a machine for a program, with all registers zero.
func NewMachine(prog *Program) (m *Machine) {
	m = &Machine{
		Program: prog,
	}

	return
}

// Reset the machine to the start of the program, with a register preset.
func (m *Machine) Reset(regs Registers) {
	if m.Verbose {
		log.Printf("vm: reset %v", regs.Format(m.Program.Vocabulary))
	}

	m.Pc = 0
	m.Registers = regs
	m.Ticks = 0
}

// Halted returns true when the program counter is outside of the program.
func (m *Machine) Halted() bool {
	return m.Pc < 0 || m.Pc >= m.Program.Len()
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	text = fmt.Sprintf("% 5s: %d\n", "pc", m.Pc)
	for _, reg := range m.Program.Vocabulary.Registers() {
		text += fmt.Sprintf("% 5s: %d\n", reg, m.Registers.Get(reg))
	}

	return
}

// Tick executes a single instruction, and reports if the machine has halted.
func (m *Machine) Tick() (done bool, err error) {
	if m.Halted() {
		done = true
		return
	}

	ins := m.Program.Instruction(m.Pc)
	if m.Verbose {
		log.Printf("%03d: %v", m.Pc, ins)
	}

	err = m.Program.Vocabulary.Check(ins)
	if err != nil {
		return
	}

	next, err := Execute(ins, m.Pc, &m.Registers)
	if err != nil {
		return
	}

	m.Pc = next
	m.Ticks += 1

	done = m.Halted()
	if done && m.Verbose {
		log.Printf("vm: halt at %d after %d ticks", m.Pc, m.Ticks)
	}

	return
}

// Run executes until the machine halts.
//
// If limit is not UNBOUNDED and the machine is still running after limit
// instructions, Run stops and returns an *ErrNotHalted. The machine state
// is left as it was at the abort.
func (m *Machine) Run(limit int) (err error) {
	for !m.Halted() {
		if limit > UNBOUNDED && m.Ticks >= limit {
			err = &ErrNotHalted{Limit: limit, Pc: m.Pc}
			return
		}
		_, err = m.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Run executes a program on a fresh machine, starting from a register
// preset, and returns the final registers.
func Run(prog *Program, regs Registers, limit int) (final Registers, err error) {
	m := NewMachine(prog)
	m.Reset(regs)

	err = m.Run(limit)
	final = m.Registers

	return
}
