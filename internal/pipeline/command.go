package pipeline

import (
	"os"
	"os/exec"

	"github.com/devVux/soutien/internal/logger"
)

// CommandAction wraps a shell command as a guarded action. The command
// inherits the process's stdout and stderr so task output lands next to
// the guard diagnostics.
//
// The guard contract has no failure channel: an action that returns
// marks its task satisfied regardless of outcome. A non-zero exit is
// therefore logged as an error but does not block dependents.
func CommandAction(name, script string) func() {
	return func() {
		logger.Op.WithFields(map[string]interface{}{
			"task":    name,
			"command": script,
		}).Debugf("running task command")

		cmd := exec.Command("sh", "-c", script)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			logger.Op.WithFields(map[string]interface{}{
				"task":    name,
				"command": script,
			}).Errorf("task command failed: %v", err)
		}
	}
}
