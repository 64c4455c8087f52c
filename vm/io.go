package vm

import (
	"bufio"
	"context"
	"errors"
	goIO "io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Keyboard is the input side of the console. Ready polls without blocking or
// consuming; ReadKey blocks until a key arrives and returns io.EOF once the
// input stream is exhausted.
type Keyboard interface {
	Ready() bool
	ReadKey() (byte, error)
}

// io connects the memory mapped devices and the trap routines to the host
// keyboard and display. The first device failure is kept in err.
type io struct {
	keyboard     Keyboard
	stdoutWriter *bufio.Writer
	err          error
}

func (io *io) keyReady() bool {
	if io.keyboard == nil || io.err != nil {
		return false
	}
	return io.keyboard.Ready()
}

func (io *io) readKey() word {
	if io.keyboard == nil || io.err != nil {
		return endOfInput
	}
	c, err := io.keyboard.ReadKey()
	if err != nil {
		if !errors.Is(err, goIO.EOF) {
			io.fail(err)
		}
		return endOfInput
	}
	return word(c)
}

func (io *io) putc(c byte) {
	if err := io.stdoutWriter.WriteByte(c); err != nil {
		io.fail(err)
	}
}

func (io *io) puts(s string) {
	if _, err := io.stdoutWriter.WriteString(s); err != nil {
		io.fail(err)
	}
}

func (io *io) flush() {
	if err := io.stdoutWriter.Flush(); err != nil {
		io.fail(err)
	}
}

func (io *io) fail(err error) {
	if io.err == nil {
		io.err = err
	}
}

func newIO(keyboard Keyboard, display goIO.Writer) io {
	return io{
		keyboard:     keyboard,
		stdoutWriter: bufio.NewWriter(display),
	}
}

// StreamKeyboard reads keys from any reader. Ready peeks at the stream, so it
// only stays non-blocking for readers that never wait, such as files and
// in-memory buffers.
type StreamKeyboard struct {
	r *bufio.Reader
}

func NewStreamKeyboard(r goIO.Reader) *StreamKeyboard {
	return &StreamKeyboard{r: bufio.NewReader(r)}
}

func (k *StreamKeyboard) Ready() bool {
	_, err := k.r.Peek(1)
	return err == nil
}

func (k *StreamKeyboard) ReadKey() (byte, error) {
	return k.r.ReadByte()
}

// how long a blocked ReadKey waits before rechecking its context
const pollInterval = 50 * time.Millisecond

// TerminalKeyboard reads keys from a terminal or pipe file descriptor. Ready
// asks the kernel whether input is pending instead of reading, and ReadKey
// gives up with the context's error once ctx is done.
type TerminalKeyboard struct {
	ctx context.Context
	fd  int
	r   *bufio.Reader
}

func NewTerminalKeyboard(ctx context.Context, f *os.File) *TerminalKeyboard {
	return &TerminalKeyboard{
		ctx: ctx,
		fd:  int(f.Fd()),
		r:   bufio.NewReader(f),
	}
}

func (k *TerminalKeyboard) Ready() bool {
	if k.r.Buffered() > 0 {
		return true
	}
	ready, err := k.poll(0)
	return err == nil && ready
}

func (k *TerminalKeyboard) ReadKey() (byte, error) {
	for k.r.Buffered() == 0 {
		if err := k.ctx.Err(); err != nil {
			return 0, err
		}
		ready, err := k.poll(pollInterval)
		if err != nil {
			return 0, err
		}
		if ready {
			break
		}
	}
	return k.r.ReadByte()
}

// poll reports whether a read on the descriptor would not block. Hangups,
// errors and invalid descriptors count as ready so that the following read
// surfaces EOF or the failure instead of waiting forever.
func (k *TerminalKeyboard) poll(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(k.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(timeout/time.Millisecond))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		return n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0, nil
	}
}
