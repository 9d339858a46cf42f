package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	var regs Registers
	for reg := range Register(REGISTER_LIMIT) {
		assert.Equal(int64(0), regs.Get(reg))
	}

	regs.Set(REG_C, -5)
	assert.Equal(int64(-5), regs.Get(REG_C))
	assert.Equal("a=0 b=0 c=-5 d=0", regs.String())
	assert.Equal("a=0 b=0", regs.Format(VOCABULARY_TURING))
	assert.Equal("a=0 b=0 c=-5 d=0", regs.Format(VOCABULARY_ASSEMBUNNY))

	// Copies are independent.
	other := regs
	other.Set(REG_C, 7)
	assert.Equal(int64(-5), regs.Get(REG_C))
	assert.Equal(int64(7), other.Get(REG_C))
}

func TestRegisterOf(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"a", "b", "c", "d"} {
		reg, ok := RegisterOf(name)
		assert.True(ok, name)
		assert.True(reg.Valid(), name)
		assert.Equal(name, reg.String())
	}

	_, ok := RegisterOf("e")
	assert.False(ok)
	_, ok = RegisterOf("A")
	assert.False(ok)

	assert.False(Register(-1).Valid())
	assert.False(Register(REGISTER_LIMIT).Valid())
	assert.Equal("Register(9)", Register(9).String())
}

func TestParsePreset(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Vocab Vocabulary
		Text  string
		Reg   Register
		Value int64
		Err   error
	}){
		{Vocab: VOCABULARY_ASSEMBUNNY, Text: "c=1", Reg: REG_C, Value: 1},
		{Vocab: VOCABULARY_ASSEMBUNNY, Text: " d = -12 ", Reg: REG_D, Value: -12},
		{Vocab: VOCABULARY_TURING, Text: "a=010", Reg: REG_A, Value: 10},
		{Vocab: VOCABULARY_TURING, Text: "b=+7", Reg: REG_B, Value: 7},
		{Vocab: VOCABULARY_TURING, Text: "a=0x10", Err: ErrParseNumber("0x10")},
		{Vocab: VOCABULARY_TURING, Text: "a=1_000", Err: ErrParseNumber("1_000")},
		{Vocab: VOCABULARY_TURING, Text: "c=1", Err: ErrRegisterInvalid},
		{Vocab: VOCABULARY_ASSEMBUNNY, Text: "x=1", Err: ErrRegisterInvalid},
		{Vocab: VOCABULARY_ASSEMBUNNY, Text: "c", Err: ErrPresetSyntax},
		{Vocab: VOCABULARY_ASSEMBUNNY, Text: "c=one", Err: ErrParseNumber("one")},
	}

	for _, entry := range table {
		reg, value, err := ParsePreset(entry.Vocab, entry.Text)
		if entry.Err != nil {
			assert.True(errors.Is(err, entry.Err), "%v: %v", entry.Text, err)
			continue
		}
		assert.NoError(err, entry.Text)
		assert.Equal(entry.Reg, reg, entry.Text)
		assert.Equal(entry.Value, value, entry.Text)
	}
}

func TestVocabulary(t *testing.T) {
	assert := assert.New(t)

	vocab, ok := VocabularyOf("turing")
	assert.True(ok)
	assert.Equal(VOCABULARY_TURING, vocab)
	assert.Equal("turing", vocab.String())
	assert.Equal([]Register{REG_A, REG_B}, vocab.Registers())

	vocab, ok = VocabularyOf("assembunny")
	assert.True(ok)
	assert.Equal(VOCABULARY_ASSEMBUNNY, vocab)
	assert.Equal([]Register{REG_A, REG_B, REG_C, REG_D}, vocab.Registers())

	_, ok = VocabularyOf("intcode")
	assert.False(ok)

	for _, op := range []Op{OP_HLF, OP_TPL, OP_INC, OP_JMP, OP_JIE, OP_JIO} {
		assert.True(VOCABULARY_TURING.Has(op), op.String())
	}
	for _, op := range []Op{OP_CPY, OP_INC, OP_DEC, OP_JNZ} {
		assert.True(VOCABULARY_ASSEMBUNNY.Has(op), op.String())
	}
	assert.False(VOCABULARY_TURING.Has(OP_CPY))
	assert.False(VOCABULARY_ASSEMBUNNY.Has(OP_HLF))

	// The alphabet cannot be modified through the returned slice.
	regs := VOCABULARY_TURING.Registers()
	regs[0] = REG_D
	assert.Equal([]Register{REG_A, REG_B}, VOCABULARY_TURING.Registers())
}
