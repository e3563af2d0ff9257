// Package session delivers console command text into the Bedrock server's
// tmux session.
package session

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bedrockctl/internal/config"
)

// Transport acknowledgements. The original tool returned fixed strings per
// branch and the console prints them verbatim.
const (
	AckSent   = "Command sent successfully"
	AckLogged = "Command logged (dev mode)"
)

// ErrNotConnected is returned when sending after the transport was closed.
var ErrNotConnected = errors.New("not connected to server session")

// SendError wraps a failed relay invocation.
type SendError struct {
	Command string
	Err     error
}

// Error describes the failed send.
func (e *SendError) Error() string {
	return fmt.Sprintf("sending %q: %v", e.Command, e.Err)
}

// Unwrap returns the underlying relay error.
func (e *SendError) Unwrap() error { return e.Err }

// Transport sends one line of command text to the target server.
type Transport interface {
	// Send relays the command and returns a human-readable acknowledgement.
	Send(ctx context.Context, command string) (string, error)
}

// TmuxTransport relays commands with tmux send-keys. The connected flag is
// optimistic: it is set at construction regardless of whether the session
// exists, so a missing session fails individual sends rather than startup.
type TmuxTransport struct {
	session   string
	delay     time.Duration
	logger    *zap.Logger
	connected bool
}

// NewTmuxTransport creates a transport targeting the given tmux session.
//
// Precondition: session must be non-empty; logger must be non-nil.
// Postcondition: Returns a transport that is immediately willing to send.
func NewTmuxTransport(session string, delay time.Duration, logger *zap.Logger) *TmuxTransport {
	return &TmuxTransport{
		session:   session,
		delay:     delay,
		logger:    logger,
		connected: true,
	}
}

// sendKeysArgs builds the tmux argv for relaying command text. The trailing
// newline makes the server console execute the line.
func sendKeysArgs(session, command string) []string {
	return []string{"send-keys", "-t", session, command + "\n"}
}

// Send relays the command into the tmux session and waits the settle delay.
//
// Postcondition: Returns AckSent on success, or a *SendError when the relay
// invocation fails.
func (t *TmuxTransport) Send(ctx context.Context, command string) (string, error) {
	if !t.connected {
		return "", ErrNotConnected
	}

	cmd := exec.CommandContext(ctx, "tmux", sendKeysArgs(t.session, command)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.logger.Error("tmux send-keys failed",
			zap.String("session", t.session),
			zap.String("command", command),
			zap.ByteString("output", out),
			zap.Error(err),
		)
		return "", &SendError{Command: command, Err: err}
	}

	t.logger.Debug("command relayed",
		zap.String("session", t.session),
		zap.String("command", command),
	)

	// Give the server console a moment before the next command lands.
	select {
	case <-time.After(t.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return AckSent, nil
}

// Close marks the transport disconnected. Subsequent sends fail with
// ErrNotConnected.
func (t *TmuxTransport) Close() {
	t.connected = false
}

// LogTransport performs no external call: it logs the would-be command line
// and returns a fixed acknowledgement. Used in dev mode and on platforms
// without tmux.
type LogTransport struct {
	logger *zap.Logger
}

// NewLogTransport creates a log-only transport.
//
// Precondition: logger must be non-nil.
func NewLogTransport(logger *zap.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

// Send logs the command and returns the fixed dev-mode acknowledgement.
func (t *LogTransport) Send(_ context.Context, command string) (string, error) {
	t.logger.Info("would send command", zap.String("command", command))
	return AckLogged, nil
}

// NewTransport selects a transport from the session configuration. Mode
// "auto" uses tmux except on Windows, matching the original tool's
// platform-conditional branch.
//
// Precondition: cfg must be validated; sessionName is the effective session
// (configuration possibly overridden by the tmux_session setting).
func NewTransport(cfg config.SessionConfig, sessionName string, logger *zap.Logger) Transport {
	mode := cfg.Mode
	if mode == "auto" {
		if runtime.GOOS == "windows" {
			mode = "log"
		} else {
			mode = "tmux"
		}
	}
	if mode == "log" {
		return NewLogTransport(logger)
	}
	return NewTmuxTransport(sessionName, cfg.CommandDelay, logger)
}
