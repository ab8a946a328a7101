// Package config loads and validates janus's TOML configuration file,
// resolving each process entry into a fully-merged ProcessSpec (env merge,
// working_dir default, restart_delay default) so the supervisor never has
// to reach back into raw config shapes.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file janus loads when --config/-c is omitted.
const DefaultPath = "./janus.toml"

const defaultRestartDelaySeconds = 1

// Error is a ConfigInvalid failure: malformed TOML, a duplicate process
// name, or an empty command. Fatal at startup.
type Error struct {
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Cause }

// ProcessSpec is the resolved, immutable configuration for one managed
// process: env is the total merged mapping (global overridden per-key by
// the process's own env), working_dir already defaults to the global one,
// and restart_delay already carries its 1s default.
type ProcessSpec struct {
	Name         string
	Command      string
	Args         []string
	WorkingDir   string
	Env          map[string]string
	AutoRestart  bool
	RestartLimit *int // nil = unlimited
	RestartDelay time.Duration
}

// Config is the validated, resolved configuration for the whole supervisor.
type Config struct {
	LogLevel  string // parsed, unused — reserved for future log filtering
	Processes []ProcessSpec
}

type fileConfig struct {
	Global  globalSection    `toml:"global"`
	Process []processSection `toml:"process"`
}

type globalSection struct {
	WorkingDir string            `toml:"working_dir"`
	Env        map[string]string `toml:"env"`
	LogLevel   string            `toml:"log_level"`
}

type processSection struct {
	Name         string            `toml:"name"`
	Command      string            `toml:"command"`
	Args         []string          `toml:"args"`
	WorkingDir   string            `toml:"working_dir"`
	Env          map[string]string `toml:"env"`
	AutoRestart  bool              `toml:"auto_restart"`
	RestartLimit *int              `toml:"restart_limit"`
	RestartDelay *int              `toml:"restart_delay"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Reason: fmt.Sprintf("cannot read config file %q", path), Cause: err}
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, &Error{Reason: "malformed TOML", Cause: err}
	}

	return build(&fc)
}

func build(fc *fileConfig) (*Config, error) {
	seen := make(map[string]struct{}, len(fc.Process))
	specs := make([]ProcessSpec, 0, len(fc.Process))

	for _, p := range fc.Process {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, &Error{Reason: "process entry missing name"}
		}
		if _, dup := seen[name]; dup {
			return nil, &Error{Reason: fmt.Sprintf("Duplicate process name: %s", name)}
		}
		seen[name] = struct{}{}

		command := strings.TrimSpace(p.Command)
		if command == "" {
			return nil, &Error{Reason: fmt.Sprintf("Empty command for process: %s", name)}
		}

		if p.RestartLimit != nil && *p.RestartLimit < 0 {
			return nil, &Error{Reason: fmt.Sprintf("negative restart_limit for process: %s", name)}
		}

		delaySeconds := defaultRestartDelaySeconds
		if p.RestartDelay != nil {
			delaySeconds = *p.RestartDelay
		}
		if delaySeconds < 0 {
			return nil, &Error{Reason: fmt.Sprintf("negative restart_delay for process: %s", name)}
		}

		workingDir := p.WorkingDir
		if workingDir == "" {
			workingDir = fc.Global.WorkingDir
		}

		specs = append(specs, ProcessSpec{
			Name:         name,
			Command:      command,
			Args:         append([]string(nil), p.Args...),
			WorkingDir:   workingDir,
			Env:          mergeEnv(fc.Global.Env, p.Env),
			AutoRestart:  p.AutoRestart,
			RestartLimit: p.RestartLimit,
			RestartDelay: time.Duration(delaySeconds) * time.Second,
		})
	}

	return &Config{LogLevel: fc.Global.LogLevel, Processes: specs}, nil
}

// mergeEnv implements invariant I3: every global key not overridden by a
// process-local key, plus every process-local key.
func mergeEnv(global, local map[string]string) map[string]string {
	merged := make(map[string]string, len(global)+len(local))
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range local {
		merged[k] = v
	}
	return merged
}
