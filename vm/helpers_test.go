package vm

import (
	"bytes"
	"strings"
	"testing"
)

// newTestVM returns a machine reading keys from input and writing to the
// returned buffer, ready to run from UserSpaceStart.
func newTestVM(t *testing.T, input string) (*VM, *bytes.Buffer) {
	t.Helper()
	display := &bytes.Buffer{}
	vm := New(
		WithKeyboard(NewStreamKeyboard(strings.NewReader(input))),
		WithDisplay(display),
	)
	vm.running = true
	return vm, display
}

// program stores words from UserSpaceStart on.
func program(vm *VM, words ...word) {
	for i, w := range words {
		vm.memory[UserSpaceStart+i] = w
	}
}

// instruction encoders, mirroring the field layouts
func opADD(dr, sr1, sr2 word) word { return 0x1000 | dr<<9 | sr1<<6 | sr2 }
func opADDi(dr, sr1, imm5 word) word { return 0x1000 | dr<<9 | sr1<<6 | 1<<5 | imm5&0x1F }
func opAND(dr, sr1, sr2 word) word { return 0x5000 | dr<<9 | sr1<<6 | sr2 }
func opANDi(dr, sr1, imm5 word) word { return 0x5000 | dr<<9 | sr1<<6 | 1<<5 | imm5&0x1F }
func opNOT(dr, sr word) word { return 0x903F | dr<<9 | sr<<6 }
func opBR(nzp, off9 word) word { return nzp<<9 | off9&0x1FF }
func opLD(dr, off9 word) word { return 0x2000 | dr<<9 | off9&0x1FF }
func opLDI(dr, off9 word) word { return 0xA000 | dr<<9 | off9&0x1FF }
func opLDR(dr, br, off6 word) word { return 0x6000 | dr<<9 | br<<6 | off6&0x3F }
func opLEA(dr, off9 word) word { return 0xE000 | dr<<9 | off9&0x1FF }
func opST(sr, off9 word) word { return 0x3000 | sr<<9 | off9&0x1FF }
func opSTI(sr, off9 word) word { return 0xB000 | sr<<9 | off9&0x1FF }
func opSTR(sr, br, off6 word) word { return 0x7000 | sr<<9 | br<<6 | off6&0x3F }
func opJMP(br word) word { return 0xC000 | br<<6 }
func opJSR(off11 word) word { return 0x4800 | off11&0x7FF }
func opJSRR(br word) word { return 0x4000 | br<<6 }
func opTRAP(vector word) word { return 0xF000 | vector&0xFF }
