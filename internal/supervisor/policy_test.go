package supervisor

import (
	"testing"
	"time"

	"github.com/go-janus/janus/internal/config"
)

func limit(n int) *int { return &n }

func TestDecide_SupervisorInitiated_AlwaysStopsFinal(t *testing.T) {
	spec := config.ProcessSpec{AutoRestart: true, RestartLimit: limit(5)}
	got := decide(spec, 0, outcomeSupervisorInitiated)
	if got.Kind != decisionStopFinal {
		t.Fatalf("Kind = %v, want decisionStopFinal", got.Kind)
	}
}

func TestDecide_AutoRestartDisabled_StopsFinal(t *testing.T) {
	spec := config.ProcessSpec{AutoRestart: false}
	got := decide(spec, 0, outcomeAbnormalExit)
	if got.Kind != decisionStopFinal {
		t.Fatalf("Kind = %v, want decisionStopFinal", got.Kind)
	}
}

func TestDecide_RestartLimitReached_GivesUp(t *testing.T) {
	spec := config.ProcessSpec{AutoRestart: true, RestartLimit: limit(3)}
	got := decide(spec, 3, outcomeStartFailed)
	if got.Kind != decisionGiveUp {
		t.Fatalf("Kind = %v, want decisionGiveUp", got.Kind)
	}
	if got.Reason != "RestartLimited" {
		t.Fatalf("Reason = %q, want RestartLimited", got.Reason)
	}
}

func TestDecide_UnderLimit_RestartsAfterDelay(t *testing.T) {
	spec := config.ProcessSpec{AutoRestart: true, RestartLimit: limit(3), RestartDelay: 2 * time.Second}
	got := decide(spec, 2, outcomeAbnormalExit)
	if got.Kind != decisionRestartAfter {
		t.Fatalf("Kind = %v, want decisionRestartAfter", got.Kind)
	}
	if got.Delay != 2*time.Second {
		t.Fatalf("Delay = %v, want 2s", got.Delay)
	}
}

func TestDecide_Unlimited_AlwaysRestarts(t *testing.T) {
	spec := config.ProcessSpec{AutoRestart: true, RestartLimit: nil}
	got := decide(spec, 1000, outcomeStartFailed)
	if got.Kind != decisionRestartAfter {
		t.Fatalf("Kind = %v, want decisionRestartAfter", got.Kind)
	}
}

// The k-th automatic restart attempt is the last before the record gives
// up (invariant I4): at restartCount == limit-1 it still restarts, at
// restartCount == limit it gives up.
func TestDecide_RestartLimit_Boundary(t *testing.T) {
	spec := config.ProcessSpec{AutoRestart: true, RestartLimit: limit(3)}

	if got := decide(spec, 2, outcomeAbnormalExit); got.Kind != decisionRestartAfter {
		t.Fatalf("restartCount=2: Kind = %v, want decisionRestartAfter", got.Kind)
	}
	if got := decide(spec, 3, outcomeAbnormalExit); got.Kind != decisionGiveUp {
		t.Fatalf("restartCount=3: Kind = %v, want decisionGiveUp", got.Kind)
	}
}
