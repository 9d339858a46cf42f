package vm

import (
	"errors"

	"github.com/ezrec/regvm/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrStepLimit = errors.New(f("step limit exceeded"))

	// Assembler errors
	ErrEquateSyntax      = errors.New(f(".equ syntax"))
	ErrEquateDuplicate   = errors.New(f(".equ duplicated"))
	ErrOpcodeExtraArgs   = errors.New(f("excessive arguments"))
	ErrOpcodeMissing     = errors.New(f("opcode missing"))
	ErrOpcodeInvalid     = errors.New(f("opcode invalid"))
	ErrRegisterInvalid   = errors.New(f("register invalid"))
	ErrTargetInvalid     = errors.New(f("target invalid"))
	ErrPresetSyntax      = errors.New(f("preset syntax"))
	ErrVocabularyInvalid = errors.New(f("vocabulary invalid"))
)

type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v", Instruction(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrNotHalted is returned when a bounded run is still executing after
// Limit steps.
type ErrNotHalted struct {
	Limit int // Step bound that was exceeded.
	Pc    int // Program counter at the time of the abort.
}

func (err *ErrNotHalted) Error() string {
	return f("not halted within %v steps (pc %v)", err.Limit, err.Pc)
}

func (err *ErrNotHalted) Unwrap() error {
	return ErrStepLimit
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrParseRegister) Unwrap() error {
	return ErrRegisterInvalid
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
