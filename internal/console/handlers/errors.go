// Package handlers implements the console command handlers: argument
// validation against the reference catalog, outbound command construction,
// and rendering of results and errors.
package handlers

import (
	"errors"

	"github.com/cory-johannsen/bedrockctl/internal/catalog"
)

// ErrExit signals a clean exit request from the exit command. The dispatch
// loop treats it as the only non-error way out.
var ErrExit = errors.New("exit requested")

// UsageError reports too few arguments for a command. The handler performs
// no side effect; the loop prints the usage line and continues.
type UsageError struct {
	Usage string
}

// Error returns the usage line.
func (e *UsageError) Error() string {
	return "Usage: " + e.Usage
}

// ValidationError reports an unknown resource, coordinate, or argument
// count. The handler performs no side effect; the loop prints the message,
// any suggestions, and continues.
type ValidationError struct {
	Message string
	// Suggestions are near-miss catalog entries, already capped.
	Suggestions []catalog.ResourceEntry
}

// Error returns the validation message.
func (e *ValidationError) Error() string {
	return e.Message
}
