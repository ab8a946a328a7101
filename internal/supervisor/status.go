package supervisor

import "time"

// Snapshot is a read-only view of one managed process, as returned by the
// Status View (C8). Uptime is pre-rendered in the "Dd Hh Mm Ss" scheme
// (§4.4) so callers never need the raw start time.
type Snapshot struct {
	Name         string
	Status       string
	Uptime       string // empty unless Status == "RUNNING"
	Command      string
	Args         []string
	Env          map[string]string
	AutoRestart  bool
	RestartCount int
	RestartLimit *int
	RestartDelay time.Duration
}

// Status takes a shared read of the table (here, the same mutex used for
// writes — the table is small and short-held, so a dedicated RWMutex
// buys nothing) and renders one Snapshot per configured process, in
// insertion order.
func (s *Supervisor) Status() []Snapshot {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	out := make([]Snapshot, 0, len(s.t.order))
	for _, name := range s.t.order {
		mp := s.t.procs[name]
		snap := Snapshot{
			Name:         mp.spec.Name,
			Status:       mp.status.String(),
			Command:      mp.spec.Command,
			Args:         append([]string(nil), mp.spec.Args...),
			Env:          mp.spec.Env,
			AutoRestart:  mp.spec.AutoRestart,
			RestartCount: mp.restartCount,
			RestartLimit: mp.spec.RestartLimit,
			RestartDelay: mp.spec.RestartDelay,
		}
		if mp.status == StatusRunning {
			snap.Uptime = FormatUptime(time.Since(mp.startTime))
		}
		out = append(out, snap)
	}
	return out
}
