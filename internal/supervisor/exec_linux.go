//go:build linux

package supervisor

import (
	"os/exec"
	"syscall"
)

// applyProcAttr isolates the child into its own process group (so a single
// signal can reach any grandchildren it spawns) and asks the kernel to
// SIGKILL it if the supervisor itself dies first. Grounded on
// processmgr.newProcess's SysProcAttr in the teacher.
func applyProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGKILL,
	}
}

// terminateProcess issues the unconditional kill §5 calls for: a single
// SIGKILL to the child's process group, no SIGTERM grace period (that
// escalation is explicitly a future extension, not implemented here).
// Falls back to signaling the process alone if the group signal is
// rejected (e.g. the group has already been reaped).
func terminateProcess(cmd *exec.Cmd) error {
	pid := cmd.Process.Pid
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		return syscall.Kill(pid, syscall.SIGKILL)
	}
	return nil
}
