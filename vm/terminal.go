package vm

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// EnableRawMode switches f to unbuffered, no-echo input so every keystroke
// reaches the keyboard registers as soon as it is typed. The returned
// function puts back the original configuration. Files that are not
// terminals are left alone and get a no-op restore.
func EnableRawMode(f *os.File, logger *log.Logger) (restore func() error, err error) {
	if !term.IsTerminal(int(f.Fd())) {
		logger.Printf("%s is not a terminal, leaving input mode unchanged", f.Name())
		return func() error { return nil }, nil
	}

	logger.Printf("enabling raw mode...")
	var originalTerminalConfig unix.Termios
	if err := termios.Tcgetattr(f.Fd(), &originalTerminalConfig); err != nil {
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}

	newTermios := originalTerminalConfig
	newTermios.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(f.Fd(), termios.TCSANOW, &newTermios); err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}

	return func() error {
		logger.Printf("disabling raw mode...")
		return termios.Tcsetattr(f.Fd(), termios.TCSANOW, &originalTerminalConfig)
	}, nil
}
