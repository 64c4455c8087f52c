package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryPlainStorage(t *testing.T) {
	assert := assert.New(t)
	vm, display := newTestVM(t, "")

	for _, addr := range []word{0x0000, UserSpaceStart, 0xFDFF, 0xFE01, 0xFFFF} {
		vm.memWrite(addr, 0x1234)
		assert.Equal(word(0x1234), vm.memRead(addr), "0x%04x", addr)
	}
	assert.Empty(display.String())
	assert.True(vm.Running())
}

func TestKeyboardRegisters(t *testing.T) {
	assert := assert.New(t)
	vm, _ := newTestVM(t, "ab")

	assert.Equal(word(0x8000), vm.memRead(KBSR))
	// polling does not consume
	assert.Equal(word(0x8000), vm.memRead(KBSR))
	assert.Equal(word('a'), vm.memRead(KBDR))
	assert.Equal(word(0x8000), vm.memRead(KBSR))
	assert.Equal(word('b'), vm.memRead(KBDR))

	assert.Equal(word(0), vm.memRead(KBSR))
	assert.Equal(endOfInput, vm.memRead(KBDR))
	assert.NoError(vm.io.err)
}

func TestKeyboardMissing(t *testing.T) {
	assert := assert.New(t)
	vm := New()

	assert.Equal(word(0), vm.memRead(KBSR))
	assert.Equal(endOfInput, vm.memRead(KBDR))
}

func TestDisplayRegisters(t *testing.T) {
	assert := assert.New(t)
	vm, display := newTestVM(t, "")

	assert.Equal(word(0x8000), vm.memRead(DSR))

	vm.memWrite(DDR, 0x4148)
	vm.memWrite(DDR, 'i')
	assert.Equal("Hi", display.String())
	assert.Equal(word('i'), vm.memRead(DDR))
}

func TestMachineControlRegister(t *testing.T) {
	assert := assert.New(t)
	vm, _ := newTestVM(t, "")

	vm.memWrite(MCR, 0x8000)
	assert.True(vm.Running())
	assert.Equal(word(0x8000), vm.memRead(MCR))

	vm.memWrite(MCR, 0x0000)
	assert.False(vm.Running())
	assert.Equal(word(0x0000), vm.memRead(MCR))
}

type failingKeyboard struct{ err error }

func (k failingKeyboard) Ready() bool            { return true }
func (k failingKeyboard) ReadKey() (byte, error) { return 0, k.err }

func TestKeyboardFailure(t *testing.T) {
	assert := assert.New(t)
	boom := errors.New("boom")
	vm := New(WithKeyboard(failingKeyboard{boom}))

	assert.Equal(endOfInput, vm.memRead(KBDR))
	assert.ErrorIs(vm.io.err, boom)
	// a failed keyboard is never ready again
	assert.Equal(word(0), vm.memRead(KBSR))
}

func TestRegionOf(t *testing.T) {
	table := []struct {
		addr word
		want string
	}{
		{0x0000, "trap vector table"},
		{0x00FF, "trap vector table"},
		{0x0100, "interrupt vector table"},
		{0x01FF, "interrupt vector table"},
		{0x0200, "system space"},
		{0x2FFF, "system space"},
		{0x3000, "user space"},
		{0xFDFF, "user space"},
		{KBSR, "device registers"},
		{MCR, "device registers"},
	}

	for _, entry := range table {
		assert.Equal(t, entry.want, regionOf(entry.addr), "0x%04x", entry.addr)
	}
}
