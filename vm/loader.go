package vm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	goIO "io"
	"os"
)

var ErrImageTooShort = errors.New("image has no origin word")

// LoadImage copies a program image into memory. An image is a big-endian
// origin address followed by the words to store from that address on;
// addresses wrap past 0xFFFF. A trailing odd byte is ignored. The program
// counter is set to the origin and the machine is ready to run. On error
// memory and registers are left unchanged.
func (vm *VM) LoadImage(r goIO.Reader) (origin uint16, words int, err error) {
	br := bufio.NewReader(r)

	var buf [2]byte
	if _, err := goIO.ReadFull(br, buf[:]); err != nil {
		if errors.Is(err, goIO.EOF) || errors.Is(err, goIO.ErrUnexpectedEOF) {
			return 0, 0, ErrImageTooShort
		}
		return 0, 0, fmt.Errorf("reading origin: %w", err)
	}
	origin = binary.BigEndian.Uint16(buf[:])

	// Read the whole image before touching memory, so a failed load leaves
	// the machine as it was.
	var image []word
	for {
		if _, err := goIO.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, goIO.EOF) || errors.Is(err, goIO.ErrUnexpectedEOF) {
				break
			}
			return origin, 0, fmt.Errorf("reading word %d: %w", len(image), err)
		}
		image = append(image, word(binary.BigEndian.Uint16(buf[:])))
	}

	addr := word(origin)
	for _, w := range image {
		vm.memory.write(addr, w)
		addr++
	}
	words = len(image)

	vm.internalRegisters.pc = word(origin)
	vm.internalRegisters.cond = FLAG_ZRO
	vm.count = 0
	vm.running = true

	vm.logger.Printf("loaded %d words at 0x%04x (%s)", words, origin, regionOf(word(origin)))
	return origin, words, nil
}

// LoadFile loads the program image stored at path.
func (vm *VM) LoadFile(path string) (origin uint16, words int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	origin, words, err = vm.LoadImage(f)
	if err != nil {
		return origin, words, fmt.Errorf("%s: %w", path, err)
	}
	return origin, words, nil
}
