package supervisor

import (
	"fmt"
	"os/exec"
	"sort"
	"time"
)

// launchLocked is the Child Launcher (C2). Caller must hold the table lock
// and mp.status must not be StatusRunning.
//
// On success the record is transitioned to Running, its stream pumps and
// exit monitor are started, and a fresh exited channel is installed for
// this launch generation. On failure the record is marked Failed and no
// pump or monitor is left behind.
func (s *Supervisor) launchLocked(mp *managedProcess) error {
	cmd := exec.Command(mp.spec.Command, mp.spec.Args...)
	cmd.Dir = mp.spec.WorkingDir
	cmd.Env = envSlice(mp.spec.Env)
	// Stdin left nil: exec.Cmd connects it to the null device.
	applyProcAttr(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return s.spawnFailed(mp, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return s.spawnFailed(mp, err)
	}

	if err := cmd.Start(); err != nil {
		return s.spawnFailed(mp, err)
	}

	mp.cmd = cmd
	mp.status = StatusRunning
	mp.startTime = time.Now()
	mp.stopRequested = false
	mp.exited = make(chan struct{})

	s.log.LogSystem(fmt.Sprintf("%s: started (pid %d)", mp.spec.Name, cmd.Process.Pid))

	startPump(mp.spec.Name, streamStdout, stdout, s.log)
	startPump(mp.spec.Name, streamStderr, stderr, s.log)
	go s.monitorExit(mp, cmd)

	return nil
}

func (s *Supervisor) spawnFailed(mp *managedProcess, cause error) error {
	mp.status = StatusFailed
	mp.cmd = nil
	mp.startTime = time.Time{}
	s.log.LogSystem(fmt.Sprintf("[SPAWN_FAILED] %s: %v", mp.spec.Name, cause))
	return fmt.Errorf("%w: %s: %v", ErrSpawnFailed, mp.spec.Name, cause)
}

// envSlice renders a merged env mapping into the KEY=VALUE slice exec.Cmd
// expects. Per the launcher's contract this is the *total* env the child
// sees — not appended to the supervisor's own ambient environment. Sorted
// for deterministic ordering (useful for tests and for diffing restarts).
func envSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
