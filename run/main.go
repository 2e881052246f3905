// Package run executes a long running program function with signal handling.
package run

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/safing/tabletext/log"
)

// Options configure Run.
type Options struct {
	// PrintStackOnExit prints all goroutine stacks when shutting down.
	PrintStackOnExit bool
	// InputSignals emulates signals by reading their names from stdin.
	InputSignals bool
	// ShutdownTimeout is the time given to fn to return after an interrupt.
	ShutdownTimeout time.Duration
}

var sigUSR1 = syscall.Signal(0xa) // dummy for windows

// Run calls fn with a context that is canceled on interrupt and returns the
// exit code. A second series of interrupts forces the exit.
func Run(ctx context.Context, opts Options, fn func(ctx context.Context) error) int {
	signalCh := make(chan os.Signal, 1)
	if opts.InputSignals {
		go inputSignals(os.Stdin, signalCh)
	}
	signal.Notify(
		signalCh,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		sigUSR1,
	)
	defer signal.Stop(signalCh)

	return runWith(ctx, opts, signalCh, fn)
}

func runWith(ctx context.Context, opts Options, signalCh chan os.Signal, fn func(ctx context.Context) error) int {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = time.Minute
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

signalLoop:
	for {
		select {
		case sig := <-signalCh:
			// only print and continue to wait if SIGUSR1
			if sig == sigUSR1 {
				_ = pprof.Lookup("goroutine").WriteTo(os.Stderr, 1)
				continue signalLoop
			}

			log.Warning("main: program was interrupted, shutting down.")
			if opts.PrintStackOnExit {
				printStackTo(os.Stdout)
			}
			cancel()
			break signalLoop

		case err := <-done:
			return exitCode(err)
		}
	}

	forceCnt := 5
	timeout := time.NewTimer(opts.ShutdownTimeout)
	defer timeout.Stop()
	for {
		select {
		case err := <-done:
			return exitCode(err)
		case <-signalCh:
			forceCnt--
			if forceCnt <= 0 {
				fmt.Fprintln(os.Stderr, "===== FORCED EXIT =====")
				printStackTo(os.Stderr)
				return 1
			}
			fmt.Printf(" <INTERRUPT> again, but already shutting down. %d more to force.\n", forceCnt)
		case <-timeout.C:
			fmt.Fprintln(os.Stderr, "===== TAKING TOO LONG FOR SHUTDOWN =====")
			printStackTo(os.Stderr)
			return 1
		}
	}
}

func exitCode(err error) int {
	if err != nil {
		log.Errorf("main: %s", err)
		return 1
	}
	return 0
}

func inputSignals(r io.Reader, signalCh chan<- os.Signal) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		switch scanner.Text() {
		case "SIGHUP":
			signalCh <- syscall.SIGHUP
		case "SIGINT":
			signalCh <- syscall.SIGINT
		case "SIGQUIT":
			signalCh <- syscall.SIGQUIT
		case "SIGTERM":
			signalCh <- syscall.SIGTERM
		case "SIGUSR1":
			signalCh <- sigUSR1
		}
	}
}

func printStackTo(writer io.Writer) {
	fmt.Fprintln(writer, "=== PRINTING TRACES ===")
	fmt.Fprintln(writer, "=== GOROUTINES ===")
	_ = pprof.Lookup("goroutine").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== END TRACES ===")
}
