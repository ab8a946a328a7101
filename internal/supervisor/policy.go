package supervisor

import (
	"time"

	"github.com/go-janus/janus/internal/config"
)

// outcome classifies why a child's exit monitor is consulting the Restart
// Policy. Both abnormalExit and startFailed are, by design, treated
// identically by decide — the supervisor cannot distinguish "completed its
// job" from "died unexpectedly" without out-of-band signals (§4.3 step 2).
type outcome int

const (
	outcomeSupervisorInitiated outcome = iota
	outcomeAbnormalExit
	outcomeStartFailed
)

type decisionKind int

const (
	decisionStopFinal decisionKind = iota
	decisionGiveUp
	decisionRestartAfter
)

// decision is what the Restart Policy (C5) returns: either stop for good,
// give up with a reason (restart_limit reached), or restart after a delay.
type decision struct {
	Kind   decisionKind
	Delay  time.Duration
	Reason string
}

// decide is the Restart Policy: a pure function of a process's restart
// configuration, its restart history, and why it exited.
func decide(spec config.ProcessSpec, restartCount int, out outcome) decision {
	if out == outcomeSupervisorInitiated {
		return decision{Kind: decisionStopFinal}
	}
	if !spec.AutoRestart {
		return decision{Kind: decisionStopFinal}
	}
	if spec.RestartLimit != nil && restartCount >= *spec.RestartLimit {
		return decision{Kind: decisionGiveUp, Reason: "RestartLimited"}
	}
	return decision{Kind: decisionRestartAfter, Delay: spec.RestartDelay}
}
