//go:build windows

package exec

import (
	"os/exec"
	"syscall"
)

// shellCommand runs line through cmd.exe. The command line is passed
// verbatim since cmd does not follow the argv escaping rules exec.Command
// applies.
func shellCommand(line string) *exec.Cmd {
	cmd := exec.Command("cmd")
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: `cmd /c ` + line}
	return cmd
}
