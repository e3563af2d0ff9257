package session

import (
	"context"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// Probe reports whether the tmux session exists. The result is informational:
// startup proceeds either way and individual sends surface their own failures.
//
// Postcondition: Returns true iff tmux is available and the session exists.
func Probe(ctx context.Context, sessionName string, logger *zap.Logger) bool {
	if runtime.GOOS == "windows" {
		logger.Info("skipping tmux probe on windows")
		return false
	}
	cmd := exec.CommandContext(ctx, "tmux", "has-session", "-t", sessionName)
	if err := cmd.Run(); err != nil {
		logger.Warn("tmux session not found",
			zap.String("session", sessionName),
			zap.Error(err),
		)
		return false
	}
	logger.Info("found tmux session", zap.String("session", sessionName))
	return true
}
