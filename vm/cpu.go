package vm

// step runs one fetch, decode and execute cycle.
func (vm *VM) step() {
	pc := vm.internalRegisters.pc
	instruction := Instruction(vm.memRead(pc))
	vm.internalRegisters.pc++
	vm.count++
	vm.decodeAndExecuteInstruction(pc, instruction)

	if vm.io.err != nil {
		vm.logger.Printf("0x%04x device error: %v", pc, vm.io.err)
		vm.stop()
	}
}

// decodeAndExecuteInstruction applies instruction, fetched from addr, to the
// machine. The program counter has already moved past it. Every opcode has
// its own case; RTI and RES only trace.
func (vm *VM) decodeAndExecuteInstruction(addr word, instruction Instruction) {
	reg := &vm.generalPurposeRegisters
	pc := vm.internalRegisters.pc

	switch instruction.Opcode() {
	case OP_ADD:
		dr, sr1 := instruction.DR(), instruction.SR1()

		if instruction.ImmMode() {
			imm5 := instruction.Imm5()
			vm.tracef("0x%04x ADD: dr=%03b sr1=%03b imm5=0x%04x", addr, dr, sr1, imm5)
			reg[dr] = reg[sr1] + imm5
		} else {
			sr2 := instruction.SR2()
			vm.tracef("0x%04x ADD: dr=%03b sr1=%03b sr2=%03b", addr, dr, sr1, sr2)
			reg[dr] = reg[sr1] + reg[sr2]
		}

		vm.updateFlags(dr)

	case OP_AND:
		dr, sr1 := instruction.DR(), instruction.SR1()

		if instruction.ImmMode() {
			imm5 := instruction.Imm5()
			vm.tracef("0x%04x AND: dr=%03b sr1=%03b imm5=0x%04x", addr, dr, sr1, imm5)
			reg[dr] = reg[sr1] & imm5
		} else {
			sr2 := instruction.SR2()
			vm.tracef("0x%04x AND: dr=%03b sr1=%03b sr2=%03b", addr, dr, sr1, sr2)
			reg[dr] = reg[sr1] & reg[sr2]
		}

		vm.updateFlags(dr)

	case OP_NOT:
		dr, sr := instruction.DR(), instruction.SR1()
		vm.tracef("0x%04x NOT: dr=%03b sr=%03b", addr, dr, sr)

		reg[dr] = ^reg[sr]
		vm.updateFlags(dr)

	case OP_BR:
		nzp := instruction.NZP()
		offset := instruction.PCOffset9()
		vm.tracef("0x%04x BR: nzp=%03b pcoffset9=0x%04x", addr, nzp, offset)

		if nzp&word(vm.internalRegisters.cond) != 0 {
			vm.internalRegisters.pc = pc + offset
		}

	case OP_JMP:
		br := instruction.BaseR()
		vm.tracef("0x%04x JMP: br=%03b", addr, br)

		vm.internalRegisters.pc = reg[br]

	case OP_JSR:
		reg[R7] = pc

		if instruction.JSRMode() {
			offset := instruction.PCOffset11()
			vm.tracef("0x%04x JSR: pcoffset11=0x%04x", addr, offset)
			vm.internalRegisters.pc = pc + offset
		} else {
			// R7 is already the return address, so JSRR R7 falls through
			br := instruction.BaseR()
			vm.tracef("0x%04x JSRR: br=%03b", addr, br)
			vm.internalRegisters.pc = reg[br]
		}

	case OP_LD:
		dr, offset := instruction.DR(), instruction.PCOffset9()
		vm.tracef("0x%04x LD: dr=%03b pcoffset9=0x%04x", addr, dr, offset)

		reg[dr] = vm.memRead(pc + offset)
		vm.updateFlags(dr)

	case OP_LDI:
		dr, offset := instruction.DR(), instruction.PCOffset9()
		vm.tracef("0x%04x LDI: dr=%03b pcoffset9=0x%04x", addr, dr, offset)

		reg[dr] = vm.memRead(vm.memRead(pc + offset))
		vm.updateFlags(dr)

	case OP_LDR:
		dr, br, offset := instruction.DR(), instruction.BaseR(), instruction.Offset6()
		vm.tracef("0x%04x LDR: dr=%03b br=%03b offset6=0x%04x", addr, dr, br, offset)

		reg[dr] = vm.memRead(reg[br] + offset)
		vm.updateFlags(dr)

	case OP_LEA:
		dr, offset := instruction.DR(), instruction.PCOffset9()
		vm.tracef("0x%04x LEA: dr=%03b pcoffset9=0x%04x", addr, dr, offset)

		reg[dr] = pc + offset
		vm.updateFlags(dr)

	case OP_ST:
		sr, offset := instruction.DR(), instruction.PCOffset9()
		vm.tracef("0x%04x ST: sr=%03b pcoffset9=0x%04x", addr, sr, offset)

		vm.memWrite(pc+offset, reg[sr])

	case OP_STI:
		sr, offset := instruction.DR(), instruction.PCOffset9()
		vm.tracef("0x%04x STI: sr=%03b pcoffset9=0x%04x", addr, sr, offset)

		vm.memWrite(vm.memRead(pc+offset), reg[sr])

	case OP_STR:
		sr, br, offset := instruction.DR(), instruction.BaseR(), instruction.Offset6()
		vm.tracef("0x%04x STR: sr=%03b br=%03b offset6=0x%04x", addr, sr, br, offset)

		vm.memWrite(reg[br]+offset, reg[sr])

	case OP_TRAP:
		vector := instruction.TrapVector()
		vm.tracef("0x%04x TRAP: 0x%02x", addr, vector)

		vm.trap(vector)

	case OP_RTI:
		vm.tracef("0x%04x RTI: unimplemented opcode", addr)

	case OP_RES:
		vm.tracef("0x%04x RES: reserved opcode", addr)
	}
}
