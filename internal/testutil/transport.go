package testutil

import (
	"context"
	"errors"

	"github.com/cory-johannsen/bedrockctl/internal/session"
)

// ErrSendFailed is the error injected by a RecorderTransport failure.
var ErrSendFailed = errors.New("injected send failure")

// RecorderTransport records every sent command and can inject failures for
// specific send indices (0-based).
type RecorderTransport struct {
	Sent   []string
	FailOn map[int]bool
}

// NewRecorderTransport creates an always-succeeding recorder.
func NewRecorderTransport() *RecorderTransport {
	return &RecorderTransport{FailOn: make(map[int]bool)}
}

// Send records the command. A send whose index is marked in FailOn returns a
// *session.SendError; the command is still recorded so tests can assert the
// attempt was made.
func (r *RecorderTransport) Send(_ context.Context, command string) (string, error) {
	idx := len(r.Sent)
	r.Sent = append(r.Sent, command)
	if r.FailOn[idx] {
		return "", &session.SendError{Command: command, Err: ErrSendFailed}
	}
	return session.AckSent, nil
}
