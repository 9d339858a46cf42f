package vm

import (
	"iter"
	"strings"
)

// Opcode is an assembled instruction with its source location.
type Opcode struct {
	LineNo int      // Source line number, starting at 1.
	Words  []string // Source tokens.
	Instruction
}

// Program is an assembled program for a single vocabulary.
// The address of an instruction is its index in Opcodes.
//
// Machines never modify a Program, so one Program may be run by any
// number of machines at once.
type Program struct {
	Vocabulary Vocabulary
	Opcodes    []Opcode
}

// NewProgram creates a program from instructions, numbering lines from 1.
// Every instruction must belong to the vocabulary.
func NewProgram(vocab Vocabulary, code ...Instruction) (prog *Program, err error) {
	prog = &Program{
		Vocabulary: vocab,
		Opcodes:    make([]Opcode, 0, len(code)),
	}

	for n, ins := range code {
		err = vocab.Check(ins)
		if err != nil {
			err = &ErrSyntax{LineNo: n + 1, Line: ins.String(), Err: err}
			prog = nil
			return
		}
		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo:      n + 1,
			Words:       tokenize(ins.String()),
			Instruction: ins,
		})
	}

	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Instruction returns the instruction at an address.
func (prog *Program) Instruction(pc int) Instruction {
	return prog.Opcodes[pc].Instruction
}

// Instructions returns a copy of the instruction sequence.
func (prog *Program) Instructions() (code []Instruction) {
	code = make([]Instruction, 0, len(prog.Opcodes))
	for _, ins := range prog.Codes() {
		code = append(code, ins)
	}
	return
}

// Codes iterates over the program's addresses and instructions.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(pc int, ins Instruction) bool) {
		for pc, op := range prog.Opcodes {
			if !yield(pc, op.Instruction) {
				return
			}
		}
	}
}

// Debug returns the opcode at an address, or nil if the address is outside
// of the program.
func (prog *Program) Debug(pc int) *Opcode {
	if pc < 0 || pc >= len(prog.Opcodes) {
		return nil
	}
	return &prog.Opcodes[pc]
}

// String renders the program as canonical assembly text, one instruction
// per line.
func (prog *Program) String() string {
	var text strings.Builder
	for _, ins := range prog.Codes() {
		text.WriteString(ins.String())
		text.WriteString("\n")
	}
	return text.String()
}
