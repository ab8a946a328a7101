package supervisor

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-janus/janus/internal/config"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) LogLine(name, kind, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf("[%s/%s] %s", name, kind, line))
}

func (l *recordingLogger) LogSystem(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, "SYSTEM: "+line)
}

func (l *recordingLogger) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ln := range l.lines {
		if strings.Contains(ln, sub) {
			return true
		}
	}
	return false
}

func newTestSupervisor(specs ...config.ProcessSpec) (*Supervisor, *recordingLogger) {
	log := &recordingLogger{}
	cfg := &config.Config{Processes: specs}
	return New(cfg, log), log
}

func findSnapshot(snaps []Snapshot, name string) Snapshot {
	for _, s := range snaps {
		if s.Name == name {
			return s
		}
	}
	return Snapshot{}
}

func TestBasicLifecycle(t *testing.T) {
	sup, _ := newTestSupervisor(config.ProcessSpec{
		Name: "sleeper", Command: "sleep", Args: []string{"10"},
	})

	if err := sup.Start("sleeper"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	snap := findSnapshot(sup.Status(), "sleeper")
	if snap.Status != "RUNNING" {
		t.Fatalf("Status = %q, want RUNNING", snap.Status)
	}
	if snap.Uptime == "" {
		t.Fatal("expected non-empty uptime while running")
	}

	if err := sup.Stop("sleeper"); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	snap = findSnapshot(sup.Status(), "sleeper")
	if snap.Status != "STOPPED" {
		t.Fatalf("Status = %q, want STOPPED", snap.Status)
	}
	if snap.Uptime != "" {
		t.Fatalf("Uptime = %q, want empty once stopped", snap.Uptime)
	}
}

func TestStart_Idempotent(t *testing.T) {
	sup, _ := newTestSupervisor(config.ProcessSpec{Name: "sleeper", Command: "sleep", Args: []string{"10"}})
	if err := sup.Start("sleeper"); err != nil {
		t.Fatal(err)
	}
	defer sup.Stop("sleeper")

	first := findSnapshot(sup.Status(), "sleeper")
	if err := sup.Start("sleeper"); err != nil {
		t.Fatal(err)
	}
	second := findSnapshot(sup.Status(), "sleeper")

	if first.Status != "RUNNING" || second.Status != "RUNNING" {
		t.Fatalf("expected RUNNING both times, got %q then %q", first.Status, second.Status)
	}
}

func TestStop_NonRunning_NoOp(t *testing.T) {
	sup, _ := newTestSupervisor(config.ProcessSpec{Name: "sleeper", Command: "sleep", Args: []string{"10"}})
	if err := sup.Stop("sleeper"); err != nil {
		t.Fatalf("Stop on non-running process should no-op, got %v", err)
	}
}

func TestStartStop_UnknownName(t *testing.T) {
	sup, _ := newTestSupervisor()
	if err := sup.Start("missing"); !errors.Is(err, ErrProcessNotFound) {
		t.Fatalf("Start(missing) = %v, want ErrProcessNotFound", err)
	}
	if err := sup.Stop("missing"); !errors.Is(err, ErrProcessNotFound) {
		t.Fatalf("Stop(missing) = %v, want ErrProcessNotFound", err)
	}
}

func TestAutoRestart_RespectsLimit(t *testing.T) {
	limit := 3
	sup, log := newTestSupervisor(config.ProcessSpec{
		Name:         "flaky",
		Command:      "false",
		AutoRestart:  true,
		RestartLimit: &limit,
		RestartDelay: 0,
	})

	if err := sup.Start("flaky"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		snap := findSnapshot(sup.Status(), "flaky")
		if snap.Status == "FAILED" {
			if snap.RestartCount != limit {
				t.Fatalf("RestartCount = %d, want %d", snap.RestartCount, limit)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("flaky process never reached FAILED; last status: %q", snap.Status)
		case <-time.After(20 * time.Millisecond):
		}
	}

	if !log.contains("RESTART_LIMITED") {
		t.Error("expected a RESTART_LIMITED system log line")
	}
}

func TestManualRestart_DoesNotBumpRestartCount(t *testing.T) {
	sup, _ := newTestSupervisor(config.ProcessSpec{Name: "sleeper", Command: "sleep", Args: []string{"10"}})
	if err := sup.Start("sleeper"); err != nil {
		t.Fatal(err)
	}
	defer sup.Stop("sleeper")

	before := findSnapshot(sup.Status(), "sleeper")
	if err := sup.Restart("sleeper"); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	after := findSnapshot(sup.Status(), "sleeper")

	if after.RestartCount != before.RestartCount {
		t.Fatalf("RestartCount changed across manual restart: %d -> %d", before.RestartCount, after.RestartCount)
	}
	if after.Status != "RUNNING" {
		t.Fatalf("Status after Restart = %q, want RUNNING", after.Status)
	}
}

func TestStartAll_StopAll(t *testing.T) {
	sup, _ := newTestSupervisor(
		config.ProcessSpec{Name: "a", Command: "sleep", Args: []string{"10"}},
		config.ProcessSpec{Name: "b", Command: "sleep", Args: []string{"10"}},
	)

	sup.StartAll()
	for _, name := range []string{"a", "b"} {
		if snap := findSnapshot(sup.Status(), name); snap.Status != "RUNNING" {
			t.Fatalf("%s: Status = %q, want RUNNING", name, snap.Status)
		}
	}

	sup.StopAll()
	for _, name := range []string{"a", "b"} {
		if snap := findSnapshot(sup.Status(), name); snap.Status != "STOPPED" {
			t.Fatalf("%s: Status = %q, want STOPPED", name, snap.Status)
		}
	}
}

func TestStopAll_DoesNotTriggerAutoRestart(t *testing.T) {
	limit := 5
	sup, _ := newTestSupervisor(config.ProcessSpec{
		Name: "svc", Command: "sleep", Args: []string{"10"},
		AutoRestart: true, RestartLimit: &limit, RestartDelay: 0,
	})
	if err := sup.Start("svc"); err != nil {
		t.Fatal(err)
	}

	sup.StopAll()

	snap := findSnapshot(sup.Status(), "svc")
	if snap.Status != "STOPPED" {
		t.Fatalf("Status = %q, want STOPPED", snap.Status)
	}
	if snap.RestartCount != 0 {
		t.Fatalf("RestartCount = %d, want 0 (stop_all must not trigger auto-restart)", snap.RestartCount)
	}

	time.Sleep(100 * time.Millisecond)
	if snap2 := findSnapshot(sup.Status(), "svc"); snap2.Status != "STOPPED" {
		t.Fatalf("process spontaneously left STOPPED after stop_all: %q", snap2.Status)
	}
}

func TestEnvMergeVisibleToChild(t *testing.T) {
	sup, log := newTestSupervisor(config.ProcessSpec{
		Name:    "envprobe",
		Command: "sh",
		Args:    []string{"-c", "echo VALUE=$FOO"},
		Env:     map[string]string{"FOO": "bar"},
	})

	if err := sup.Start("envprobe"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for !log.contains("VALUE=bar") {
		select {
		case <-deadline:
			t.Fatal("child never echoed its merged env")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
