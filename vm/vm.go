package vm

import (
	"context"
	goIO "io"
	"log"
)

// VM is a complete LC-3 machine: memory, registers and the devices behind
// the memory mapped registers. Each VM is independent of every other.
type VM struct {
	registers
	memory  memory
	io      io
	running bool
	logger  *log.Logger
	trace   bool
}

type Option func(*VM)

// WithKeyboard sets the device behind KBSR/KBDR and the input traps.
// Without one the keyboard is never ready and reads see end of input.
func WithKeyboard(k Keyboard) Option {
	return func(vm *VM) { vm.io.keyboard = k }
}

// WithDisplay sets where DDR writes and the output traps go.
func WithDisplay(w goIO.Writer) Option {
	return func(vm *VM) { vm.io = newIO(vm.io.keyboard, w) }
}

func WithLogger(l *log.Logger) Option {
	return func(vm *VM) { vm.logger = l }
}

// WithTrace logs every executed instruction.
func WithTrace(trace bool) Option {
	return func(vm *VM) { vm.trace = trace }
}

func New(opts ...Option) *VM {
	vm := &VM{
		io:     newIO(nil, goIO.Discard),
		logger: log.New(goIO.Discard, "", 0),
	}
	vm.internalRegisters.pc = UserSpaceStart
	vm.internalRegisters.cond = FLAG_ZRO

	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Run executes instructions until the machine halts. It returns nil after a
// HALT trap or a write that clears the MCR clock bit, ctx.Err() if the
// context ends first, and the device error if the keyboard or display
// failed.
func (vm *VM) Run(ctx context.Context) error {
	vm.running = true
	for vm.running {
		if err := ctx.Err(); err != nil {
			vm.stop()
			return err
		}
		vm.step()
	}
	return vm.io.err
}

// Step executes a single instruction, whether or not the machine is running.
func (vm *VM) Step() {
	vm.step()
}

func (vm *VM) Running() bool {
	return vm.running
}

func (vm *VM) Stop() {
	vm.stop()
}

func (vm *VM) stop() {
	vm.running = false
}

func (vm *VM) PC() uint16 {
	return uint16(vm.internalRegisters.pc)
}

func (vm *VM) Reg(r int) uint16 {
	return uint16(vm.generalPurposeRegisters[r&0b111])
}

func (vm *VM) Cond() uint16 {
	return uint16(vm.internalRegisters.cond)
}

// Count is the number of instructions executed since the last load.
func (vm *VM) Count() uint64 {
	return vm.count
}

// Registers renders the register file on one line.
func (vm *VM) Registers() string {
	return vm.registers.String()
}

func (vm *VM) tracef(format string, v ...any) {
	if vm.trace {
		vm.logger.Printf(format, v...)
	}
}
