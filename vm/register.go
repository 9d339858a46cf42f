package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// Register is a register name.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A = Register(0) // a
	REG_B = Register(1) // b
	REG_C = Register(2) // c
	REG_D = Register(3) // d
)

const (
	REGISTER_LIMIT = 4 // Size of the register file.
)

var registerMap = map[string]Register{
	"a": REG_A,
	"b": REG_B,
	"c": REG_C,
	"d": REG_D,
}

// RegisterOf returns the register with the given name.
func RegisterOf(name string) (reg Register, ok bool) {
	reg, ok = registerMap[name]
	return
}

// Valid returns true if the register is inside the register file.
func (reg Register) Valid() bool {
	return reg >= REG_A && reg < REGISTER_LIMIT
}

// Registers is a register file. All registers start at zero.
//
// Registers is a value type: assigning or passing a Registers copies it, so
// every run owns its register state.
type Registers [REGISTER_LIMIT]int64

// Get returns the value of a register.
func (regs *Registers) Get(reg Register) int64 {
	return regs[reg]
}

// Set sets the value of a register.
func (regs *Registers) Set(reg Register, value int64) {
	regs[reg] = value
}

// Format returns the registers of a vocabulary as 'a=1 b=0'.
func (regs Registers) Format(vocab Vocabulary) string {
	var parts []string
	for _, reg := range vocab.Registers() {
		parts = append(parts, fmt.Sprintf("%v=%d", reg, regs[reg]))
	}
	return strings.Join(parts, " ")
}

// String returns all of the registers.
func (regs Registers) String() string {
	var parts []string
	for reg := range Register(REGISTER_LIMIT) {
		parts = append(parts, fmt.Sprintf("%v=%d", reg, regs[reg]))
	}
	return strings.Join(parts, " ")
}

// ParsePreset parses a 'REG=VALUE' register preset for a vocabulary.
func ParsePreset(vocab Vocabulary, text string) (reg Register, value int64, err error) {
	name, number, ok := strings.Cut(strings.TrimSpace(text), "=")
	if !ok {
		err = ErrPresetSyntax
		return
	}

	name = strings.TrimSpace(name)
	reg, ok = RegisterOf(name)
	if !ok || !vocab.Valid(reg) {
		err = ErrParseRegister(name)
		return
	}

	number = strings.TrimSpace(number)
	value, err = parseNumber(number)

	return
}

// parseNumber parses a signed decimal integer. A leading zero is not
// an octal prefix.
func parseNumber(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}
