package vm

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, vocab Vocabulary, program ...string) *Program {
	asm := &Assembler{Vocabulary: vocab}
	prog, err := asm.ParseLines(program)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestMachine(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, VOCABULARY_TURING, "inc a")

	m := NewMachine(prog)
	assert.Equal(0, m.Pc)
	assert.False(m.Halted())

	done, err := m.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(int64(1), m.Registers.Get(REG_A))
	assert.Equal(1, m.Pc)
	assert.Equal(1, m.Ticks)

	// Ticking a halted machine does nothing.
	done, err = m.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(1, m.Ticks)

	assert.Equal("   pc: 1\n    a: 1\n    b: 0\n", m.String())
}

func TestMachineTuring(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, VOCABULARY_TURING,
		"inc a",
		"jio a, +2",
		"tpl a",
		"inc a",
	)

	regs, err := Run(prog, Registers{}, UNBOUNDED)
	assert.NoError(err)
	assert.Equal(int64(2), regs.Get(REG_A))
	assert.Equal(int64(0), regs.Get(REG_B))
}

func TestMachineJumpSkip(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, VOCABULARY_TURING,
		"jio a, +2",
		"inc b",
		"inc b",
	)

	m := NewMachine(prog)

	m.Reset(Registers{1})
	_, err := m.Tick()
	assert.NoError(err)
	assert.Equal(2, m.Pc)

	m.Reset(Registers{2})
	_, err = m.Tick()
	assert.NoError(err)
	assert.Equal(1, m.Pc)
	assert.Equal(1, m.Ticks)
}

func TestMachineAssembunny(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, VOCABULARY_ASSEMBUNNY,
		"cpy 41,a",
		"inc a",
		"jnz a,2",
		"inc b",
	)

	m := NewMachine(prog)
	err := m.Run(100)
	assert.NoError(err)
	assert.Equal(int64(42), m.Registers.Get(REG_A))
	assert.Equal(int64(0), m.Registers.Get(REG_B))
	assert.Equal(4, m.Pc)
	assert.Equal(3, m.Ticks)
}

func TestMachineAssembunnyLoop(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, VOCABULARY_ASSEMBUNNY,
		"cpy 41 a",
		"inc a",
		"inc a",
		"dec a",
		"jnz a 2",
		"dec a",
	)

	regs, err := Run(prog, Registers{}, 1000)
	assert.NoError(err)
	assert.Equal(int64(42), regs.Get(REG_A))

	// a = b * c
	prog = assemble(t, VOCABULARY_ASSEMBUNNY,
		"cpy 0 a",
		"cpy b d",
		"inc a",
		"dec d",
		"jnz d -2",
		"dec c",
		"jnz c -5",
	)

	regs, err = Run(prog, Registers{0, 6, 7, 0}, 1000)
	assert.NoError(err)
	assert.Equal(Registers{42, 6, 0, 0}, regs)
}

func TestMachineStepLimit(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, VOCABULARY_TURING,
		"inc a",
		"jmp -1",
	)

	m := NewMachine(prog)
	err := m.Run(100)

	var notHalted *ErrNotHalted
	if assert.True(errors.As(err, &notHalted)) {
		assert.Equal(100, notHalted.Limit)
	}
	assert.True(errors.Is(err, ErrStepLimit))
	assert.Equal(100, m.Ticks)
	assert.Equal(int64(50), m.Registers.Get(REG_A))

	// A program that halts in exactly the limit is not an error.
	prog = assemble(t, VOCABULARY_TURING, "inc a", "inc a", "inc a")
	regs, err := Run(prog, Registers{}, 3)
	assert.NoError(err)
	assert.Equal(int64(3), regs.Get(REG_A))

	regs, err = Run(prog, Registers{}, 2)
	assert.True(errors.Is(err, ErrStepLimit))
	assert.Equal(int64(2), regs.Get(REG_A))
}

func TestMachineHaltBackward(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, VOCABULARY_ASSEMBUNNY,
		"inc a",
		"jnz a -5",
		"inc a",
	)

	regs, err := Run(prog, Registers{}, 10)
	assert.NoError(err)
	assert.Equal(int64(1), regs.Get(REG_A))
}

func TestMachineEmptyProgram(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(&Program{})
	assert.True(m.Halted())
	assert.NoError(m.Run(1))
	assert.Equal(0, m.Ticks)
}

func TestMachineMixedVocabulary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Vocabulary: VOCABULARY_TURING,
		Opcodes: []Opcode{
			{LineNo: 1, Instruction: MakeInc(REG_A)},
			{LineNo: 2, Instruction: MakeCpy(Literal(5), REG_A)},
		},
	}

	regs, err := Run(prog, Registers{}, UNBOUNDED)
	assert.True(errors.Is(err, ErrOpcodeInvalid), "%v", err)
	assert.Equal(Registers{1}, regs)

	prog = &Program{
		Vocabulary: VOCABULARY_TURING,
		Opcodes: []Opcode{
			{LineNo: 1, Instruction: MakeInc(REG_C)},
		},
	}

	regs, err = Run(prog, Registers{}, UNBOUNDED)
	assert.True(errors.Is(err, ErrRegisterInvalid), "%v", err)
	assert.Equal(Registers{}, regs)
}

func TestMachineIndependence(t *testing.T) {
	assert := assert.New(t)

	// a = 1 skips the tripling; a = 0 runs it.
	prog := assemble(t, VOCABULARY_TURING,
		"jio a, +4",
		"inc a",
		"tpl a",
		"tpl a",
		"inc b",
	)

	preset := [2]Registers{{0}, {1}}
	var result [2]Registers
	var errs [2]error

	var wg sync.WaitGroup
	for n := range preset {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result[n], errs[n] = Run(prog, preset[n], 1000)
		}()
	}
	wg.Wait()

	assert.NoError(errs[0])
	assert.NoError(errs[1])
	assert.Equal(Registers{9, 1}, result[0])
	assert.Equal(Registers{1, 1}, result[1])

	// Presets are untouched.
	assert.Equal([2]Registers{{0}, {1}}, preset)

	// Re-running gives the same answer.
	again, err := Run(prog, preset[0], 1000)
	assert.NoError(err)
	assert.Equal(result[0], again)
}
