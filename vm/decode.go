package vm

import "fmt"

type Opcode word

// opcodes
const (
	OP_BR Opcode = iota
	OP_ADD
	OP_LD
	OP_ST
	OP_JSR
	OP_AND
	OP_LDR
	OP_STR
	OP_RTI
	OP_NOT
	OP_LDI
	OP_STI
	OP_JMP
	OP_RES
	OP_LEA
	OP_TRAP
)

var opcodeNames = [...]string{
	OP_BR:   "BR",
	OP_ADD:  "ADD",
	OP_LD:   "LD",
	OP_ST:   "ST",
	OP_JSR:  "JSR",
	OP_AND:  "AND",
	OP_LDR:  "LDR",
	OP_STR:  "STR",
	OP_RTI:  "RTI",
	OP_NOT:  "NOT",
	OP_LDI:  "LDI",
	OP_STI:  "STI",
	OP_JMP:  "JMP",
	OP_RES:  "RES",
	OP_LEA:  "LEA",
	OP_TRAP: "TRAP",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", uint16(op))
}

// Instruction is a fetched instruction word. The accessors only extract
// fields; which ones are meaningful depends on the opcode.
//
//	15  12 11  9 8   6 5 4   0
//	| op  | dr  | sr1 |m| imm5 |
type Instruction word

func (i Instruction) Opcode() Opcode { return Opcode(i >> 12) }

// DR is the destination register, also the source register of ST, STI and STR.
func (i Instruction) DR() word    { return word(i>>9) & 0b111 }
func (i Instruction) SR1() word   { return word(i>>6) & 0b111 }
func (i Instruction) SR2() word   { return word(i) & 0b111 }
func (i Instruction) BaseR() word { return word(i>>6) & 0b111 }
func (i Instruction) NZP() word   { return word(i>>9) & 0b111 }

// ImmMode reports bit 5, which selects imm5 over SR2 for ADD and AND.
func (i Instruction) ImmMode() bool { return (i>>5)&0b1 == 1 }

// JSRMode reports bit 11, which selects JSR (PC relative) over JSRR.
func (i Instruction) JSRMode() bool { return (i>>11)&0b1 == 1 }

func (i Instruction) Imm5() word       { return sext(word(i)&0x1F, 5) }
func (i Instruction) Offset6() word    { return sext(word(i)&0x3F, 6) }
func (i Instruction) PCOffset9() word  { return sext(word(i)&0x1FF, 9) }
func (i Instruction) PCOffset11() word { return sext(word(i)&0x7FF, 11) }
func (i Instruction) TrapVector() word { return word(i) & 0xFF }

// sext sign extends the low bit_count bits of x to a full word.
func sext(x, bit_count word) word {
	if ((x >> (bit_count - 1)) & 0b1) != 0 {
		x |= (0xFFFF << bit_count)
	}
	return x
}
