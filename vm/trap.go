package vm

const (
	TRAP_GETC  word = 0x20 /* get character from keyboard, not echoed onto the terminal */
	TRAP_OUT   word = 0x21 /* output a character */
	TRAP_PUTS  word = 0x22 /* output a word string */
	TRAP_IN    word = 0x23 /* get character from keyboard, echoed onto the terminal */
	TRAP_PUTSP word = 0x24 /* output a byte string */
	TRAP_HALT  word = 0x25 /* halt the program */
)

const inPrompt = "Enter a character: "

// trap runs the service routine for vector. The routines are built in, so
// the program counter and R7 are left untouched. Unknown vectors do nothing.
func (vm *VM) trap(vector word) {
	reg := &vm.generalPurposeRegisters

	switch vector {
	case TRAP_GETC:
		reg[R0] = vm.io.readKey()

	case TRAP_OUT:
		vm.io.putc(byte(reg[R0]))
		vm.io.flush()

	case TRAP_PUTS:
		addr := reg[R0]
		for n := 0; n < MemorySize; n++ {
			c := vm.memory.read(addr)
			if c == 0 {
				break
			}
			vm.io.putc(byte(c))
			addr++
		}
		vm.io.flush()

	case TRAP_IN:
		vm.io.puts(inPrompt)
		vm.io.flush()
		reg[R0] = vm.io.readKey()
		vm.io.putc(byte(reg[R0]))
		vm.io.flush()

	case TRAP_PUTSP:
		// Two characters per word, low byte first. Only an all zero word
		// ends the string; a zero low byte under a non-zero high byte is
		// written out and the walk goes on.
		addr := reg[R0]
		for n := 0; n < MemorySize; n++ {
			w := vm.memory.read(addr)
			if w == 0 {
				break
			}
			vm.io.putc(byte(w))
			if w>>8 != 0 {
				vm.io.putc(byte(w >> 8))
			}
			addr++
		}
		vm.io.flush()

	case TRAP_HALT:
		vm.logger.Printf("HALT after %d instructions", vm.count)
		vm.stop()

	default:
		vm.logger.Printf("TRAP 0x%02x: undefined trap vector (table entry 0x%04x), ignored",
			vector, Trap_Vector_Table_Start+vector)
	}
}
