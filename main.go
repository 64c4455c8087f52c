package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aryanA101a/lulu/vm"
)

var (
	errUsage       = errors.New("usage")
	errInterrupted = errors.New("interrupted")
)

func main() {
	err := run(os.Args[1:])
	if err != nil && !errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "lulu: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps the result of run to the process status: 2 for bad usage,
// 130 after SIGINT or SIGTERM, 1 for any other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	case errors.Is(err, errInterrupted):
		return 130
	}
	return 1
}

func run(args []string) error {
	fs := flag.NewFlagSet("lulu", flag.ContinueOnError)
	logFile := fs.String("log", "", "write the log to `file`")
	trace := fs.Bool("trace", false, "log every executed instruction")
	verbose := fs.Bool("v", false, "log the registers when the machine stops")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: lulu [flags] image-file\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	machine := vm.New(
		vm.WithKeyboard(vm.NewTerminalKeyboard(ctx, os.Stdin)),
		vm.WithDisplay(os.Stdout),
		vm.WithLogger(logger),
		vm.WithTrace(*trace),
	)

	image := fs.Arg(0)
	if _, _, err := machine.LoadFile(image); err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	restore, err := vm.EnableRawMode(os.Stdin, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := restore(); err != nil {
			logger.Printf("restoring terminal: %v", err)
		}
	}()

	err = machine.Run(ctx)
	if *verbose {
		logger.Printf("stopped after %d instructions: %s", machine.Count(), machine.Registers())
	}
	if errors.Is(err, context.Canceled) {
		logger.Printf("interrupted")
		return errInterrupted
	}
	return err
}
