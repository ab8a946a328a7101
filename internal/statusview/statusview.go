// Package statusview renders supervisor.Snapshot records for the CLI's
// status command: a compact table across every process, or a full
// key/value block for a single one.
package statusview

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/go-janus/janus/internal/supervisor"
)

// WriteTable renders one row per snapshot, in the order given, as an
// aligned NAME/STATUS/UPTIME/RESTARTS table.
func WriteTable(w io.Writer, snaps []supervisor.Snapshot) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tUPTIME\tRESTARTS")
	for _, s := range snaps {
		uptime := s.Uptime
		if uptime == "" {
			uptime = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.Status, uptime, restartColumn(s))
	}
	tw.Flush()
}

// WriteDetail renders a single process's full record as a key/value
// block, for `janus status <name>`.
func WriteDetail(w io.Writer, s supervisor.Snapshot) {
	fmt.Fprintf(w, "Name:          %s\n", s.Name)
	fmt.Fprintf(w, "Status:        %s\n", s.Status)
	uptime := s.Uptime
	if uptime == "" {
		uptime = "-"
	}
	fmt.Fprintf(w, "Uptime:        %s\n", uptime)
	fmt.Fprintf(w, "Command:       %s %s\n", s.Command, strings.Join(s.Args, " "))
	fmt.Fprintf(w, "Auto-restart:  %v\n", s.AutoRestart)
	fmt.Fprintf(w, "Restarts:      %s\n", restartColumn(s))
	fmt.Fprintf(w, "Restart delay: %s\n", s.RestartDelay)
	if len(s.Env) > 0 {
		keys := make([]string, 0, len(s.Env))
		for k := range s.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(w, "Env:")
		for _, k := range keys {
			fmt.Fprintf(w, "  %s=%s\n", k, s.Env[k])
		}
	}
}

func restartColumn(s supervisor.Snapshot) string {
	if s.RestartLimit == nil {
		return fmt.Sprintf("%d/unlimited", s.RestartCount)
	}
	return fmt.Sprintf("%d/%d", s.RestartCount, *s.RestartLimit)
}
