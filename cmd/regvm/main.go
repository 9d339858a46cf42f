// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ezrec/regvm/config"
	"github.com/ezrec/regvm/emulator"
	"github.com/ezrec/regvm/vm"
)

// listFlag collects a repeated flag.
type listFlag []string

func (lf *listFlag) String() string {
	return strings.Join(*lf, ",")
}

func (lf *listFlag) Set(value string) error {
	*lf = append(*lf, value)
	return nil
}

// options are the parsed command line options.
type options struct {
	compile    string
	configFile string
	vocabulary string
	answer     string
	limit      int
	list       bool
	verbose    bool
	presets    listFlag
	defines    listFlag
}

func parseFlags(name string, args []string) (opts options, err error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)

	flags.StringVar(&opts.compile, "c", "-", "program file to run")
	flags.StringVar(&opts.configFile, "f", "", ".star or .yaml run configuration")
	flags.StringVar(&opts.vocabulary, "m", "", "vocabulary (turing or assembunny)")
	flags.StringVar(&opts.answer, "a", "", "answer register")
	flags.IntVar(&opts.limit, "n", 0, "step limit (negative for unbounded)")
	flags.BoolVar(&opts.list, "l", false, "list the assembled program, do not execute")
	flags.BoolVar(&opts.verbose, "v", false, "Verbose mode")
	flags.Var(&opts.presets, "p", "register preset REG=VALUE (repeatable)")
	flags.Var(&opts.defines, "D", "assembler equate NAME=VALUE (repeatable)")

	err = flags.Parse(args)
	if err != nil {
		return
	}

	if flags.NArg() != 0 {
		err = fmt.Errorf("unknown arguments: %v", flags.Args())
		return
	}

	return
}

// run executes the command, writing answers to output.
func run(opts options, input io.Reader, output io.Writer) (err error) {
	cfg := &config.Config{}
	if len(opts.configFile) != 0 {
		cfg, err = config.Load(opts.configFile)
		if err != nil {
			return
		}
	}

	if len(opts.vocabulary) != 0 {
		cfg.Vocabulary = opts.vocabulary
	}
	if len(opts.answer) != 0 {
		cfg.Answer = opts.answer
	}
	if opts.limit != 0 {
		cfg.Limit = opts.limit
	}

	vocab, ok := vm.VocabularyOf(cfg.Vocabulary)
	if !ok {
		err = fmt.Errorf("'%v': %w", cfg.Vocabulary, vm.ErrVocabularyInvalid)
		return
	}

	var presets vm.Registers
	var preset_regs []vm.Register
	for _, preset := range opts.presets {
		var reg vm.Register
		var value int64
		reg, value, err = vm.ParsePreset(vocab, preset)
		if err != nil {
			err = fmt.Errorf("-p %v: %w", preset, err)
			return
		}
		presets.Set(reg, value)
		preset_regs = append(preset_regs, reg)
	}

	_, limit, parts, err := cfg.Resolve()
	if err != nil {
		return
	}

	// Command line presets override every part's configured registers.
	for n := range parts {
		for _, reg := range preset_regs {
			parts[n].Preset.Set(reg, presets.Get(reg))
		}
	}

	asm := &vm.Assembler{Vocabulary: vocab, Verbose: opts.verbose}
	for _, define := range opts.defines {
		equ, value, ok := strings.Cut(define, "=")
		if !ok {
			err = fmt.Errorf("-D %v: %w", define, vm.ErrEquateSyntax)
			return
		}
		asm.Predefine(equ, value)
	}

	if opts.compile != "-" {
		var inf *os.File
		inf, err = os.Open(opts.compile)
		if err != nil {
			return
		}
		defer inf.Close()
		input = inf
	}

	prog, err := asm.Parse(input)
	if err != nil {
		err = fmt.Errorf("%v: %w", opts.compile, err)
		return
	}

	if opts.list {
		_, err = io.WriteString(output, prog.String())
		return
	}

	answers, err := emulator.Solve(prog, limit, opts.verbose, parts...)
	if err != nil {
		err = fmt.Errorf("%v: %w", opts.compile, err)
		return
	}

	for n, part := range parts {
		fmt.Fprintf(output, "%v: %d\n", part.Name, answers[n])
	}

	return
}

func main() {
	opts, err := parseFlags(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	err = run(opts, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
