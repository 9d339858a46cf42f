// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for one vocabulary.
//
// Each instruction line is a mnemonic followed by operands separated by
// whitespace or commas. In addition to instructions, the assembler accepts:
//
//	; comment             Ignored to the end of the line.
//	.equ NAME VALUE       Replaces the word NAME with VALUE on later lines.
//	$(expr)               Replaced by the integer value of a Starlark
//	                      expression, which may refer to integer equates.
type Assembler struct {
	Verbose    bool       // If set, verbosely logs the assembler actions.
	Vocabulary Vocabulary // Vocabulary to assemble.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// tokenize splits a line on whitespace and commas.
func tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = parseNumber(word)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "equ"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var parenRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine expands a single line into words.
// Directive lines return no words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = tokenize(line)
	if len(words) == 0 {
		err = ErrOpcodeMissing
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// parseRegister parses a register name of the vocabulary.
func (asm *Assembler) parseRegister(word string) (reg Register, err error) {
	_, err = asm.valueOf(word)
	if err == nil {
		err = ErrTargetInvalid
		return
	}
	err = nil

	reg, ok := RegisterOf(word)
	if !ok || !asm.Vocabulary.Valid(reg) {
		err = ErrParseRegister(word)
		return
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string) (ins Instruction, err error) {
	if len(words) == 0 {
		err = ErrOpcodeMissing
		return
	}

	op, ok := asm.Vocabulary.Lookup(words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	sig := op.Signature()
	args := words[1:]
	if len(args) < len(sig) {
		err = ErrOpcodeMissing
		return
	}
	if len(args) > len(sig) {
		err = ErrOpcodeExtraArgs
		return
	}

	ins.Op = op
	for n, kind := range sig {
		word := args[n]
		switch kind {
		case ARG_REGISTER:
			var reg Register
			reg, err = asm.parseRegister(word)
			if err != nil {
				return
			}
			ins.Args[n] = Reg(reg)
		case ARG_SOURCE:
			value, verr := asm.valueOf(word)
			if verr == nil {
				ins.Args[n] = Literal(value)
				continue
			}
			var reg Register
			reg, err = asm.parseRegister(word)
			if err != nil {
				return
			}
			ins.Args[n] = Reg(reg)
		case ARG_OFFSET:
			var value int64
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			ins.Args[n] = Literal(value)
		}
	}

	return
}

// reset prepares the assembler for a new program.
func (asm *Assembler) reset() {
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)
}

// assemble appends the instruction for a single line, if any.
func (asm *Assembler) assemble(prog *Program, line string, lineno int) (err error) {
	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Verbose {
		log.Printf("%v: %v\n", lineno, line)
	}

	words, err := asm.parseLine(line, lineno)
	if err != nil || words == nil {
		return
	}

	ins, err := asm.parseWords(words)
	if err != nil {
		return
	}

	prog.Opcodes = append(prog.Opcodes, Opcode{LineNo: lineno, Words: words, Instruction: ins})

	return
}

// stripComment removes a trailing comment and surrounding whitespace.
func stripComment(text string) string {
	line, _, _ := strings.Cut(text, ";")
	return strings.TrimSpace(line)
}

// ParseLines assembles one instruction per line, in address order.
// Empty lines are an error.
func (asm *Assembler) ParseLines(lines []string) (prog *Program, err error) {
	asm.reset()

	prog = &Program{
		Vocabulary: asm.Vocabulary,
		Opcodes:    make([]Opcode, 0, len(lines)),
	}

	for n, text := range lines {
		err = asm.assemble(prog, stripComment(text), n+1)
		if err != nil {
			prog = nil
			return
		}
	}

	return
}

// Parse parses an input stream into a Program.
// Blank and comment-only lines are skipped, and do not occupy an address.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.reset()

	prog = &Program{
		Vocabulary: asm.Vocabulary,
	}

	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno += 1

		line := stripComment(scanner.Text())
		if len(line) == 0 {
			continue
		}

		err = asm.assemble(prog, line, lineno)
		if err != nil {
			prog = nil
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
		return
	}

	return
}
