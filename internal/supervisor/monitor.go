package supervisor

import (
	"fmt"
	"os/exec"
	"time"
)

// monitorExit is the Exit Monitor (C4). Exactly one is outstanding per
// running record (invariant I5): it blocks on the child's termination, then
// performs a single transaction under the table lock to record the exit,
// consult Restart Policy, and either relaunch or finalize the record.
func (s *Supervisor) monitorExit(mp *managedProcess, cmd *exec.Cmd) {
	_ = cmd.Wait()

	s.t.mu.Lock()

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	wasCancelled := mp.stopRequested
	mp.stopRequested = false
	mp.status = StatusStopped
	mp.cmd = nil
	mp.startTime = time.Time{}
	exited := mp.exited
	mp.exited = nil

	if wasCancelled {
		s.log.LogSystem(fmt.Sprintf("%s: stopped (exit %d)", mp.spec.Name, exitCode))
		s.t.mu.Unlock()
		close(exited)
		return
	}

	out := outcomeStartFailed
	tag := "START_FAILED"
	if exitCode == 0 {
		out = outcomeAbnormalExit
		tag = "ABNORMAL_EXIT"
	}
	s.log.LogSystem(fmt.Sprintf("[%s] %s: exit code %d", tag, mp.spec.Name, exitCode))

	dec := decide(mp.spec, mp.restartCount, out)
	switch dec.Kind {
	case decisionRestartAfter:
		// Counted before the relaunch attempt so concurrent status
		// observers see it (§4.5): only unsolicited exits followed by a
		// policy-driven relaunch bump restart_count.
		mp.restartCount++
		delay := dec.Delay
		s.t.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}

		s.t.mu.Lock()
		if err := s.launchLocked(mp); err != nil {
			s.log.LogSystem(fmt.Sprintf("%s: relaunch failed: %v", mp.spec.Name, err))
		}
		s.t.mu.Unlock()
		close(exited)

	case decisionGiveUp:
		mp.status = StatusFailed
		s.log.LogSystem(fmt.Sprintf("[RESTART_LIMITED] %s: %s", mp.spec.Name, dec.Reason))
		s.t.mu.Unlock()
		close(exited)

	default: // decisionStopFinal
		s.t.mu.Unlock()
		close(exited)
	}
}
