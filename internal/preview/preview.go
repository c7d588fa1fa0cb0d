// Package preview hands a finished run to an external viewer.
package preview

import (
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/planetgen/internal/logger"
)

// Launch starts the configured viewer command on the run directory and
// detaches from it. The placeholder {dir} in the command is replaced with
// the run directory; without a placeholder the directory is appended as
// the last argument. Failures are logged and swallowed, a missing viewer
// never fails a finished run. Returns false when nothing was launched.
func Launch(command, runDir string) bool {
	if strings.TrimSpace(command) == "" {
		return false
	}
	parts := strings.Fields(command)
	replaced := false
	for i, p := range parts {
		if strings.Contains(p, "{dir}") {
			parts[i] = strings.ReplaceAll(p, "{dir}", runDir)
			replaced = true
		}
	}
	if !replaced {
		parts = append(parts, runDir)
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	if err := cmd.Start(); err != nil {
		logger.Warn("preview viewer failed to start",
			zap.String("command", command), zap.Error(err))
		return false
	}
	logger.Info("preview viewer started",
		zap.String("command", parts[0]), zap.Int("pid", cmd.Process.Pid))
	go func() {
		// Reap the child so a short-lived viewer does not linger as a
		// zombie while the generator keeps running.
		_ = cmd.Wait()
	}()
	return true
}
