//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree force-kills pid and its descendants with taskkill /T.
// Errors are ignored: the process may already be gone.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
