package vm

import (
	"slices"
)

// Vocabulary is a closed instruction set.
type Vocabulary int

//go:generate go tool stringer -linecomment -type=Vocabulary
const (
	VOCABULARY_TURING     = Vocabulary(0) // turing
	VOCABULARY_ASSEMBUNNY = Vocabulary(1) // assembunny
)

// vocabularyMap maps vocabulary names.
var vocabularyMap = map[string]Vocabulary{
	"turing":     VOCABULARY_TURING,
	"assembunny": VOCABULARY_ASSEMBUNNY,
}

// mnemonicMap maps the mnemonics of each vocabulary to opcodes.
var mnemonicMap = map[Vocabulary](map[string]Op){
	VOCABULARY_TURING: {
		"hlf": OP_HLF,
		"tpl": OP_TPL,
		"inc": OP_INC,
		"jmp": OP_JMP,
		"jie": OP_JIE,
		"jio": OP_JIO,
	},
	VOCABULARY_ASSEMBUNNY: {
		"cpy": OP_CPY,
		"inc": OP_INC,
		"dec": OP_DEC,
		"jnz": OP_JNZ,
	},
}

// alphabetMap is the register alphabet of each vocabulary.
var alphabetMap = map[Vocabulary][]Register{
	VOCABULARY_TURING:     {REG_A, REG_B},
	VOCABULARY_ASSEMBUNNY: {REG_A, REG_B, REG_C, REG_D},
}

// VocabularyOf returns the vocabulary with the given name.
func VocabularyOf(name string) (vocab Vocabulary, ok bool) {
	vocab, ok = vocabularyMap[name]
	return
}

// Lookup returns the opcode for a mnemonic of the vocabulary.
func (vocab Vocabulary) Lookup(mnemonic string) (op Op, ok bool) {
	op, ok = mnemonicMap[vocab][mnemonic]
	return
}

// Has returns true if the opcode is a member of the vocabulary.
func (vocab Vocabulary) Has(op Op) bool {
	found, ok := vocab.Lookup(op.String())
	return ok && found == op
}

// Registers returns the register alphabet of the vocabulary.
func (vocab Vocabulary) Registers() []Register {
	return slices.Clone(alphabetMap[vocab])
}

// Check returns an error if the instruction is malformed, or uses an
// opcode or register outside of the vocabulary.
func (vocab Vocabulary) Check(ins Instruction) (err error) {
	if !ins.Valid() {
		err = ErrOpcode(ins)
		return
	}

	if !vocab.Has(ins.Op) {
		err = ErrOpcodeInvalid
		return
	}

	for _, arg := range ins.Args {
		if arg.Kind == OPERAND_REGISTER && !vocab.Valid(arg.Register) {
			err = ErrParseRegister(arg.Register.String())
			return
		}
	}

	return
}

// Valid returns true if the register is in the vocabulary's alphabet.
func (vocab Vocabulary) Valid(reg Register) bool {
	return slices.Contains(alphabetMap[vocab], reg)
}
