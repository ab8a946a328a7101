//go:build !linux && !windows

package supervisor

import (
	"os/exec"
	"syscall"
)

// applyProcAttr isolates the child into its own process group. Pdeathsig is
// Linux-only; on other POSIX platforms the child simply doesn't get a
// kernel-guaranteed kill if the supervisor dies.
func applyProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminateProcess(cmd *exec.Cmd) error {
	pid := cmd.Process.Pid
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		return syscall.Kill(pid, syscall.SIGKILL)
	}
	return nil
}
