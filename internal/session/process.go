package session

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ServerProcess describes a discovered Bedrock server process.
type ServerProcess struct {
	PID     int
	Cmdline string
}

// FindServerProcess scans /proc for a running bedrock_server, or a shell or
// python wrapper whose command line mentions bedrock or minecraft.
// Informational only; Linux only (other platforms report not found).
//
// Postcondition: Returns the first matching process and true, or false.
func FindServerProcess(logger *zap.Logger) (ServerProcess, bool) {
	if runtime.GOOS != "linux" {
		return ServerProcess{}, false
	}

	entries, err := os.ReadDir("/proc")
	if err != nil {
		logger.Warn("reading /proc", zap.Error(err))
		return ServerProcess{}, false
	}

	wrappers := map[string]bool{"bash": true, "sh": true, "python": true, "python3": true}

	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		raw, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "cmdline"))
		if err != nil || len(raw) == 0 {
			continue
		}
		cmdline := strings.TrimRight(strings.ReplaceAll(string(raw), "\x00", " "), " ")
		argv0 := strings.Fields(cmdline)
		if len(argv0) == 0 {
			continue
		}
		name := filepath.Base(argv0[0])

		matched := name == "bedrock_server"
		if !matched && wrappers[name] {
			lowered := strings.ToLower(cmdline)
			matched = strings.Contains(lowered, "bedrock") || strings.Contains(lowered, "minecraft")
		}
		if matched {
			logger.Info("found server process",
				zap.Int("pid", pid),
				zap.String("cmdline", cmdline),
			)
			return ServerProcess{PID: pid, Cmdline: cmdline}, true
		}
	}

	logger.Warn("no server process found")
	return ServerProcess{}, false
}
