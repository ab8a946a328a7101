package supervisor

import (
	"sync"

	"github.com/go-janus/janus/internal/config"
)

// table is the Process Table (C1): the single in-memory source of truth
// mapping a configured process's name to its runtime record, protected by
// one mutex held across each Supervisor Core operation's transaction (§5).
type table struct {
	mu    sync.Mutex
	order []string // insertion order, for deterministic start_all/status iteration
	procs map[string]*managedProcess
}

func newTable(specs []config.ProcessSpec) *table {
	t := &table{
		order: make([]string, 0, len(specs)),
		procs: make(map[string]*managedProcess, len(specs)),
	}
	for _, spec := range specs {
		t.order = append(t.order, spec.Name)
		t.procs[spec.Name] = &managedProcess{spec: spec, status: StatusStopped}
	}
	return t
}
