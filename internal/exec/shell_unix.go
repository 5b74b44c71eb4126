//go:build !windows

package exec

import "os/exec"

// shellCommand runs line through sh.
func shellCommand(line string) *exec.Cmd {
	return exec.Command("sh", "-c", line)
}
