package supervisor

import (
	"fmt"

	"github.com/go-janus/janus/internal/config"
	"golang.org/x/sync/errgroup"
)

// Supervisor is the Supervisor Core (C6): it owns the Process Table and
// coordinates the Launcher, Pumps, Exit Monitor and Restart Policy behind
// the six public operations below. Every operation takes the table lock
// for the duration of its transaction and releases it before any
// potentially long wait (§5).
type Supervisor struct {
	t   *table
	log Logger
}

// New builds a Supervisor from a resolved configuration. All processes
// start life Stopped; nothing is launched until Start/StartAll is called.
func New(cfg *config.Config, log Logger) *Supervisor {
	return &Supervisor{t: newTable(cfg.Processes), log: log}
}

// Start launches the named process. A no-op success if it is already
// Running.
func (s *Supervisor) Start(name string) error {
	s.t.mu.Lock()
	mp, ok := s.t.procs[name]
	if !ok {
		s.t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrProcessNotFound, name)
	}
	if mp.status == StatusRunning {
		s.t.mu.Unlock()
		return nil
	}
	err := s.launchLocked(mp)
	s.t.mu.Unlock()
	return err
}

// Stop terminates the named process. A no-op success if it is not
// Running. Blocks until the Exit Monitor records the transition out of
// Running — the one suspension point this operation takes (§5).
func (s *Supervisor) Stop(name string) error {
	s.t.mu.Lock()
	mp, ok := s.t.procs[name]
	if !ok {
		s.t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrProcessNotFound, name)
	}
	if mp.status != StatusRunning {
		s.t.mu.Unlock()
		return nil
	}
	mp.stopRequested = true
	cmd := mp.cmd
	exited := mp.exited
	s.t.mu.Unlock()

	if err := terminateProcess(cmd); err != nil {
		s.log.LogSystem(fmt.Sprintf("[KILL_FAILED] %s: %v", name, err))
		return fmt.Errorf("%w: %s: %v", ErrKillFailed, name, err)
	}

	<-exited
	return nil
}

// Restart is stop-then-start. restart_count is left untouched: only
// unsolicited exits followed by policy-driven relaunches bump it, never a
// manual restart.
func (s *Supervisor) Restart(name string) error {
	if err := s.Stop(name); err != nil {
		return err
	}
	return s.Start(name)
}

// StartAll starts every configured process in insertion order. Per-child
// failures are logged, not fatal to the loop.
func (s *Supervisor) StartAll() {
	s.t.mu.Lock()
	names := append([]string(nil), s.t.order...)
	s.t.mu.Unlock()

	for _, name := range names {
		if err := s.Start(name); err != nil {
			s.log.LogSystem(fmt.Sprintf("start_all: %s: %v", name, err))
		}
	}
}

// StopAll terminates every Running process and waits for each to be
// recorded as no longer Running. Per-child failures are logged, not
// fatal. Children are signaled and awaited concurrently (§5: no ordering
// guarantee across records).
func (s *Supervisor) StopAll() {
	var g errgroup.Group
	s.t.mu.Lock()
	names := append([]string(nil), s.t.order...)
	s.t.mu.Unlock()

	for _, name := range names {
		name := name
		g.Go(func() error {
			if err := s.Stop(name); err != nil {
				s.log.LogSystem(fmt.Sprintf("stop_all: %s: %v", name, err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
