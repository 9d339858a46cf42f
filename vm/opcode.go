package vm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Op is an opcode of either vocabulary.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_HLF = Op(0) // hlf
	OP_TPL = Op(1) // tpl
	OP_INC = Op(2) // inc
	OP_JMP = Op(3) // jmp
	OP_JIE = Op(4) // jie
	OP_JIO = Op(5) // jio
	OP_CPY = Op(6) // cpy
	OP_DEC = Op(7) // dec
	OP_JNZ = Op(8) // jnz
)

// ArgKind is the operand kind accepted at an argument position.
type ArgKind int

const (
	ARG_REGISTER = ArgKind(0) // Register name only.
	ARG_SOURCE   = ArgKind(1) // Literal or register name.
	ARG_OFFSET   = ArgKind(2) // Signed literal jump offset.
)

// signatureMap is the operand signature of each opcode.
var signatureMap = map[Op][]ArgKind{
	OP_HLF: {ARG_REGISTER},
	OP_TPL: {ARG_REGISTER},
	OP_INC: {ARG_REGISTER},
	OP_JMP: {ARG_OFFSET},
	OP_JIE: {ARG_REGISTER, ARG_OFFSET},
	OP_JIO: {ARG_REGISTER, ARG_OFFSET},
	OP_CPY: {ARG_SOURCE, ARG_REGISTER},
	OP_DEC: {ARG_REGISTER},
	OP_JNZ: {ARG_SOURCE, ARG_OFFSET},
}

// Signature returns the operand kinds of the opcode, in argument order.
func (op Op) Signature() []ArgKind {
	return signatureMap[op]
}

// OperandKind is the decoded kind of an operand.
type OperandKind int

const (
	OPERAND_LITERAL  = OperandKind(0)
	OPERAND_REGISTER = OperandKind(1)
)

// Operand is either a literal integer or a register reference.
type Operand struct {
	Kind     OperandKind
	Register Register // Set for OPERAND_REGISTER.
	Value    int64    // Set for OPERAND_LITERAL.
}

// Literal creates a literal operand.
func Literal(value int64) Operand {
	return Operand{Kind: OPERAND_LITERAL, Value: value}
}

// Reg creates a register operand.
func Reg(reg Register) Operand {
	return Operand{Kind: OPERAND_REGISTER, Register: reg}
}

// Get returns the literal, or the current value of the register.
func (arg Operand) Get(regs *Registers) int64 {
	if arg.Kind == OPERAND_REGISTER {
		return regs.Get(arg.Register)
	}
	return arg.Value
}

// String returns the operand as assembly text.
func (arg Operand) String() string {
	if arg.Kind == OPERAND_REGISTER {
		return arg.Register.String()
	}
	return strconv.FormatInt(arg.Value, 10)
}

// Instruction is an opcode with its operands.
// Positions beyond the opcode's signature are always zero, so that
// instructions compare equal with ==.
type Instruction struct {
	Op   Op
	Args [2]Operand
}

func makeInstruction(op Op, args ...Operand) (ins Instruction) {
	ins.Op = op
	copy(ins.Args[:], args)
	return
}

// MakeHlf creates a 'hlf r' instruction.
func MakeHlf(reg Register) Instruction {
	return makeInstruction(OP_HLF, Reg(reg))
}

// MakeTpl creates a 'tpl r' instruction.
func MakeTpl(reg Register) Instruction {
	return makeInstruction(OP_TPL, Reg(reg))
}

// MakeInc creates an 'inc r' instruction.
func MakeInc(reg Register) Instruction {
	return makeInstruction(OP_INC, Reg(reg))
}

// MakeDec creates a 'dec r' instruction.
func MakeDec(reg Register) Instruction {
	return makeInstruction(OP_DEC, Reg(reg))
}

// MakeJmp creates a 'jmp n' instruction.
func MakeJmp(offset int64) Instruction {
	return makeInstruction(OP_JMP, Literal(offset))
}

// MakeJie creates a 'jie r, n' instruction.
func MakeJie(reg Register, offset int64) Instruction {
	return makeInstruction(OP_JIE, Reg(reg), Literal(offset))
}

// MakeJio creates a 'jio r, n' instruction.
func MakeJio(reg Register, offset int64) Instruction {
	return makeInstruction(OP_JIO, Reg(reg), Literal(offset))
}

// MakeCpy creates a 'cpy x r' instruction.
func MakeCpy(src Operand, reg Register) Instruction {
	return makeInstruction(OP_CPY, src, Reg(reg))
}

// MakeJnz creates a 'jnz x n' instruction.
func MakeJnz(src Operand, offset int64) Instruction {
	return makeInstruction(OP_JNZ, src, Literal(offset))
}

// turingLayout is true for opcodes rendered as 'op r, +n'.
var turingLayout = map[Op]bool{
	OP_HLF: true,
	OP_TPL: true,
	OP_JMP: true,
	OP_JIE: true,
	OP_JIO: true,
}

// String returns the canonical assembly text of the instruction.
//
// Turing opcodes separate operands with ', ' and write offsets with an
// explicit sign. Assembunny opcodes separate operands with spaces.
func (ins Instruction) String() string {
	sig := ins.Op.Signature()
	if sig == nil {
		return fmt.Sprintf("%v %v %v", ins.Op, ins.Args[0], ins.Args[1])
	}

	words := make([]string, 0, len(sig))
	for n, kind := range sig {
		arg := ins.Args[n]
		if kind == ARG_OFFSET && turingLayout[ins.Op] {
			words = append(words, fmt.Sprintf("%+d", arg.Value))
		} else {
			words = append(words, arg.String())
		}
	}

	sep := " "
	if turingLayout[ins.Op] {
		sep = ", "
	}

	return ins.Op.String() + " " + strings.Join(words, sep)
}

// Valid returns true if the operands match the opcode signature.
func (ins Instruction) Valid() bool {
	sig := ins.Op.Signature()
	if sig == nil {
		return false
	}

	for n, arg := range ins.Args {
		if n >= len(sig) {
			if arg != (Operand{}) {
				return false
			}
			continue
		}
		switch sig[n] {
		case ARG_REGISTER:
			if arg.Kind != OPERAND_REGISTER || !arg.Register.Valid() {
				return false
			}
		case ARG_SOURCE:
			if arg.Kind == OPERAND_REGISTER && !arg.Register.Valid() {
				return false
			}
		case ARG_OFFSET:
			if arg.Kind != OPERAND_LITERAL {
				return false
			}
		}
	}

	return true
}

// Execute applies a single instruction to the registers, and returns the
// next program counter.
//
// The transition depends only on (pc, regs). Arithmetic wraps on overflow,
// and 'hlf' truncates toward zero.
func Execute(ins Instruction, pc int, regs *Registers) (next int, err error) {
	if !ins.Valid() {
		err = ErrOpcode(ins)
		return
	}

	next = pc + 1

	a := ins.Args[0]
	b := ins.Args[1]

	switch ins.Op {
	case OP_HLF:
		regs.Set(a.Register, regs.Get(a.Register)/2)
	case OP_TPL:
		regs.Set(a.Register, regs.Get(a.Register)*3)
	case OP_INC:
		regs.Set(a.Register, regs.Get(a.Register)+1)
	case OP_DEC:
		regs.Set(a.Register, regs.Get(a.Register)-1)
	case OP_JMP:
		next = jump(pc, a.Value)
	case OP_JIE:
		if regs.Get(a.Register)%2 == 0 {
			next = jump(pc, b.Value)
		}
	case OP_JIO:
		if regs.Get(a.Register) == 1 {
			next = jump(pc, b.Value)
		}
	case OP_CPY:
		regs.Set(b.Register, a.Get(regs))
	case OP_JNZ:
		if a.Get(regs) != 0 {
			next = jump(pc, b.Value)
		}
	default:
		err = ErrOpcode(ins)
		return
	}

	return
}

// jump returns pc+offset, or -1 when the target cannot be represented.
// Either way, a target outside of the program halts the machine.
func jump(pc int, offset int64) int {
	target := int64(pc) + offset
	switch {
	case offset > 0 && target < int64(pc):
		return -1
	case offset < 0 && target > int64(pc):
		return -1
	case target < 0 || target > math.MaxInt:
		return -1
	}
	return int(target)
}
