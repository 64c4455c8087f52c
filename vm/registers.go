package vm

import (
	"fmt"
	"strings"
)

type word uint16

type cpu_flag uint16

// general purpose registers
const (
	R0 = 0b000
	R1 = 0b001
	R2 = 0b010
	R3 = 0b011
	R4 = 0b100
	R5 = 0b101
	R6 = 0b110
	R7 = 0b111
)

// flags
const (
	FLAG_POS cpu_flag = 0b001
	FLAG_ZRO cpu_flag = 0b010
	FLAG_NEG cpu_flag = 0b100
)

func (f cpu_flag) String() string {
	switch f {
	case FLAG_POS:
		return "P"
	case FLAG_ZRO:
		return "Z"
	case FLAG_NEG:
		return "N"
	}
	return fmt.Sprintf("cpu_flag(%03b)", uint16(f))
}

type registers struct {
	generalPurposeRegisters [8]word
	internalRegisters       struct {
		pc   word
		cond cpu_flag
	}
	// instructions executed since the last load
	count uint64
}

// flagsFor classifies a result. Exactly one flag is ever returned.
func flagsFor(value word) cpu_flag {
	switch {
	case value>>15 != 0:
		return FLAG_NEG
	case value == 0:
		return FLAG_ZRO
	}
	return FLAG_POS
}

func (r *registers) setFlags(value word) {
	r.internalRegisters.cond = flagsFor(value)
}

func (r *registers) updateFlags(reg word) {
	r.setFlags(r.generalPurposeRegisters[reg])
}

func (r *registers) String() string {
	var b strings.Builder
	for i, v := range r.generalPurposeRegisters {
		fmt.Fprintf(&b, "R%d=0x%04x ", i, v)
	}
	fmt.Fprintf(&b, "PC=0x%04x COND=%v", r.internalRegisters.pc, r.internalRegisters.cond)
	return b.String()
}
