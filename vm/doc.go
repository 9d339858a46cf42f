// Package vm implements the assembler and interpreter for a miniature
// register machine.
//
// A machine has up to four signed 64-bit registers (a-d), a program counter,
// and a linear program of mnemonic instructions. Jumps are relative to the
// current program counter, and the machine halts when the program counter
// leaves the program.
//
// Two closed instruction vocabularies are supported, and a Program is always
// assembled for exactly one of them:
//
//	turing:     hlf r, tpl r, inc r, jmp n, jie r, n, jio r, n
//	assembunny: cpy x r, inc r, dec r, jnz x n
//
// Register arithmetic wraps on overflow with two's complement semantics.
package vm
