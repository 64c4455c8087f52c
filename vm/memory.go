package vm

const MemorySize = 1 << 16
const (
	Trap_Vector_Table_Start    = 0x0000
	InterruptVectorTableStart  = 0x0100
	SystemSpaceStart           = 0x0200
	UserSpaceStart             = 0x3000
	MemoryMappedRegistersStart = 0xFE00
)

// memory mapped register addresses
const (
	KBSR word = MemoryMappedRegistersStart          /* keyboard status register */
	KBDR word = MemoryMappedRegistersStart + 0x0002 /* keyboard data register */
	DSR  word = MemoryMappedRegistersStart + 0x0004 /* display status register */
	DDR  word = MemoryMappedRegistersStart + 0x0006 /* display data register */
	MCR  word = 0xFFFE                              /* machine control register */
)

// status bit shared by KBSR, DSR and MCR
const statusReady word = 0x8000

// keyboard data returned once the input stream is exhausted
const endOfInput word = 0xFFFF

// regionOf names the part of the address space addr falls in.
func regionOf(addr word) string {
	switch {
	case addr >= MemoryMappedRegistersStart:
		return "device registers"
	case addr >= UserSpaceStart:
		return "user space"
	case addr >= SystemSpaceStart:
		return "system space"
	case addr >= InterruptVectorTableStart:
		return "interrupt vector table"
	}
	return "trap vector table"
}

// memory is the raw backing store. Indexing by word keeps every address in
// range, so device interception lives in memRead/memWrite instead.
type memory [MemorySize]word

func (mem *memory) write(addr, value word) {
	mem[addr] = value
}

func (mem *memory) read(addr word) word {
	return mem[addr]
}

func (vm *VM) memRead(addr word) word {
	switch addr {
	case KBSR:
		if vm.io.keyReady() {
			return statusReady
		}
		return 0
	case KBDR:
		return vm.io.readKey()
	case DSR:
		return statusReady
	}
	return vm.memory.read(addr)
}

func (vm *VM) memWrite(addr, value word) {
	vm.memory.write(addr, value)

	switch addr {
	case DDR:
		vm.io.putc(byte(value))
		vm.io.flush()
	case MCR:
		if value&statusReady == 0 {
			vm.logger.Printf("MCR: clock disabled (0x%04x), halting", value)
			vm.stop()
		}
	}
}
