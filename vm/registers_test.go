package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetFlags(t *testing.T) {
	assert := assert.New(t)

	var r registers
	for v := 0; v < MemorySize; v++ {
		r.setFlags(word(v))
		cond := r.internalRegisters.cond

		switch {
		case v&0x8000 != 0:
			assert.Equal(FLAG_NEG, cond, "0x%04x", v)
		case v == 0:
			assert.Equal(FLAG_ZRO, cond, "0x%04x", v)
		default:
			assert.Equal(FLAG_POS, cond, "0x%04x", v)
		}
	}
}

func TestUpdateFlags(t *testing.T) {
	assert := assert.New(t)

	var r registers
	r.generalPurposeRegisters[R4] = 0x8000
	r.updateFlags(R4)
	assert.Equal(FLAG_NEG, r.internalRegisters.cond)

	r.generalPurposeRegisters[R4] = 0x7FFF
	r.updateFlags(R4)
	assert.Equal(FLAG_POS, r.internalRegisters.cond)
}

func TestRegistersString(t *testing.T) {
	var r registers
	r.generalPurposeRegisters[R1] = 0xBEEF
	r.internalRegisters.pc = 0x3001
	r.internalRegisters.cond = FLAG_NEG

	assert.Equal(t,
		"R0=0x0000 R1=0xbeef R2=0x0000 R3=0x0000 R4=0x0000 R5=0x0000 R6=0x0000 R7=0x0000 PC=0x3001 COND=N",
		r.String())
}
