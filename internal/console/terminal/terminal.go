// Package terminal owns the interactive prompt loop: raw-mode line editing,
// tab completion, and interrupt handling over golang.org/x/term.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/cory-johannsen/bedrockctl/internal/console/handlers"
)

// ErrInterrupt is surfaced when Ctrl+C arrives while reading a line. Raw
// mode swallows the signal, so a reader shim watches for the byte itself.
var ErrInterrupt = errors.New("interrupt")

// Output is an io.Writer whose destination can be swapped once the raw-mode
// terminal exists. Before that it writes to the fallback (stdout), so startup
// banners and handler output share one sink.
type Output struct {
	mu sync.Mutex
	w  io.Writer
}

// NewOutput creates an Output writing to fallback until redirected.
func NewOutput(fallback io.Writer) *Output {
	return &Output{w: fallback}
}

// Write forwards to the current destination.
func (o *Output) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.w.Write(p)
}

// SetWriter swaps the destination.
func (o *Output) SetWriter(w io.Writer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.w = w
}

// interruptReader surfaces Ctrl+C (byte 0x03) as ErrInterrupt.
type interruptReader struct {
	r io.Reader
}

func (ir interruptReader) Read(p []byte) (int, error) {
	n, err := ir.r.Read(p)
	for _, b := range p[:n] {
		if b == 0x03 {
			return 0, ErrInterrupt
		}
	}
	return n, err
}

// Status holds the startup banner status lines.
type Status struct {
	SessionName    string
	SessionFound   bool
	ProcessPID     int
	ProcessCmdline string
}

// Service runs the read → dispatch → print loop as a lifecycle service.
type Service struct {
	console   *handlers.Console
	completer *Completer
	out       *Output
	prompt    string
	status    Status
	logger    *zap.Logger

	mu       sync.Mutex
	stopped  bool
	restore  func()
	stopOnce sync.Once
}

// NewService creates the console loop service.
//
// Precondition: console, out, and logger must be non-nil; completer may be
// nil when completion is not wanted (piped input).
func NewService(console *handlers.Console, completer *Completer, out *Output, prompt string, status Status, logger *zap.Logger) *Service {
	return &Service{
		console:   console,
		completer: completer,
		out:       out,
		prompt:    prompt,
		status:    status,
		logger:    logger,
	}
}

// Start runs the prompt loop until exit, EOF, or interrupt. A terminal on
// stdin gets raw-mode line editing with tab completion; piped input falls
// back to a plain line reader.
//
// Postcondition: Returns nil on a clean end of the loop.
func (s *Service) Start() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return s.runPlain()
	}
	return s.runInteractive(fd)
}

// Stop restores the terminal state and unblocks the pending read.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		restore := s.restore
		s.mu.Unlock()
		if restore != nil {
			restore()
		}
		// Unblocks a read waiting at the prompt.
		_ = os.Stdin.Close()
	})
}

func (s *Service) runInteractive(fd int) error {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	restore := func() { _ = term.Restore(fd, oldState) }
	s.mu.Lock()
	s.restore = restore
	s.mu.Unlock()
	defer restore()

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{interruptReader{os.Stdin}, os.Stdout}, s.prompt)
	if s.completer != nil {
		t.AutoCompleteCallback = s.completer.Complete
	}

	// Handler output goes through the terminal so newlines and the pending
	// prompt line are handled correctly.
	s.out.SetWriter(t)
	defer s.out.SetWriter(os.Stdout)

	s.printBanner()

	ctx := context.Background()
	for {
		line, err := t.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupt) {
				fmt.Fprintln(t, "Exiting console.")
				return nil
			}
			if s.isStopped() {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		if err := s.console.Dispatch(ctx, line); err != nil {
			if errors.Is(err, handlers.ErrExit) {
				return nil
			}
			return err
		}
	}
}

func (s *Service) runPlain() error {
	s.printBanner()

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := s.console.Dispatch(ctx, scanner.Text()); err != nil {
			if errors.Is(err, handlers.ErrExit) {
				return nil
			}
			return err
		}
		if s.isStopped() {
			return nil
		}
	}
	if err := scanner.Err(); err != nil && !s.isStopped() {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

func (s *Service) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *Service) printBanner() {
	fmt.Fprintln(s.out, "+---------------------------+")
	fmt.Fprintln(s.out, "| Minecraft Console Control |")
	fmt.Fprintln(s.out, "+---------------------------+")
	if s.status.SessionFound {
		fmt.Fprintf(s.out, "Session: %s (found)\n", s.status.SessionName)
	} else {
		fmt.Fprintf(s.out, "Session: %s (not found, sends may fail)\n", s.status.SessionName)
	}
	if s.status.ProcessPID > 0 {
		fmt.Fprintf(s.out, "Server process: PID %d\n", s.status.ProcessPID)
		fmt.Fprintf(s.out, "Command: %s\n", s.status.ProcessCmdline)
	}
}
