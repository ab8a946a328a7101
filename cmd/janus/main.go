// Command janus is a lightweight in-container process supervisor: it
// reads a TOML config describing a set of child processes, launches and
// monitors them, restarts them within a configured bound, and exposes a
// synchronous CLI over the same process table for start/stop/restart/status.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-janus/janus/internal/config"
	"github.com/go-janus/janus/internal/logging"
	"github.com/go-janus/janus/internal/statusview"
	"github.com/go-janus/janus/internal/supervisor"
	"github.com/go-janus/janus/pkg/fmtt"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("janus", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printUsage(os.Stderr) }

	configPath := fs.String("config", config.DefaultPath, "path to the janus TOML config file")
	fs.StringVar(configPath, "c", config.DefaultPath, "shorthand for -config")
	mirrorStderr := fs.Bool("mirror-stderr", false, "additionally echo child stderr lines to janus's own stderr")
	verbose := fs.Bool("verbose", false, "on a fatal error, dump the full error chain")
	help := fs.Bool("help", false, "print usage and exit")
	showVersion := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		printUsage(os.Stdout)
		return 0
	}
	if *showVersion {
		fmt.Println("janus", version)
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(os.Stderr)
		return 2
	}
	verb := rest[0]

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fatal(err, *verbose)
	}

	log := logging.New(*mirrorStderr)
	defer log.Sync()

	sup := supervisor.New(cfg, log)
	sup.WatchSignals()

	code, err := dispatch(sup, verb, rest[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "janus:", err)
	}
	if code != 0 {
		return code
	}

	// Any process now Running needs its parent alive (Pdeathsig kills
	// orphans on Linux); park here until the Signal Bridge exits on our
	// behalf. A run that started nothing (e.g. a no-op stop/status) has
	// nothing to stay alive for.
	if anyRunning(sup) {
		select {}
	}
	return 0
}

func anyRunning(sup *supervisor.Supervisor) bool {
	for _, s := range sup.Status() {
		if s.Status == "RUNNING" {
			return true
		}
	}
	return false
}

// dispatch executes the single requested verb against a freshly-populated
// process table, per the closed CLI surface in §6: start, stop, restart,
// status, start-one <name>, stop-one <name>, restart-one <name>.
func dispatch(sup *supervisor.Supervisor, verb string, rest []string) (int, error) {
	switch verb {
	case "start":
		sup.StartAll()
		return 0, nil
	case "stop":
		sup.StopAll()
		return 0, nil
	case "restart":
		sup.StopAll()
		sup.StartAll()
		return 0, nil
	case "status":
		snaps := sup.Status()
		if len(rest) == 0 {
			statusview.WriteTable(os.Stdout, snaps)
			return 0, nil
		}
		for _, s := range snaps {
			if s.Name == rest[0] {
				statusview.WriteDetail(os.Stdout, s)
				return 0, nil
			}
		}
		return 1, fmt.Errorf("%w: %s", supervisor.ErrProcessNotFound, rest[0])

	case "start-one":
		name, err := oneArg(rest)
		if err != nil {
			return 2, err
		}
		return result(sup.Start(name))
	case "stop-one":
		name, err := oneArg(rest)
		if err != nil {
			return 2, err
		}
		return result(sup.Stop(name))
	case "restart-one":
		name, err := oneArg(rest)
		if err != nil {
			return 2, err
		}
		return result(sup.Restart(name))

	default:
		printUsage(os.Stderr)
		return 2, nil
	}
}

func oneArg(rest []string) (string, error) {
	if len(rest) != 1 || rest[0] == "" {
		return "", fmt.Errorf("expected exactly one process name")
	}
	return rest[0], nil
}

func result(err error) (int, error) {
	if err != nil {
		return 1, err
	}
	return 0, nil
}

func fatal(err error, verbose bool) int {
	if verbose {
		fmtt.PrintErrChainVerbose(os.Stderr, err)
	} else {
		fmtt.PrintErrChain(os.Stderr, err)
	}
	return 1
}

func printUsage(w *os.File) {
	fmt.Fprintln(w, "usage: janus [-config file] [-mirror-stderr] [-verbose] <command> [name]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  start                launch every configured process")
	fmt.Fprintln(w, "  stop                 stop every running process")
	fmt.Fprintln(w, "  restart              stop then start every process")
	fmt.Fprintln(w, "  status               show a summary table")
	fmt.Fprintln(w, "  start-one <name>     launch one process")
	fmt.Fprintln(w, "  stop-one <name>      stop one process")
	fmt.Fprintln(w, "  restart-one <name>   restart one process")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "signals: SIGINT/SIGTERM trigger an orderly stop of all children, then exit 0.")
	fmt.Fprintln(w, "on Windows, only Ctrl-Break is honored (degraded signal fidelity).")
}
