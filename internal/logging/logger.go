// Package logging implements the supervisor's Logger external
// collaborator: it accepts (process name, stream kind, text line) and
// serializes it to the supervisor's own standard streams, one line per
// call, using the fixed "[timestamp] [tag] content" wire format.
package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02 15:04:05.000"

// StreamStderr marks a line as having come from a child's standard error.
// Every other kind (such as "stdout", and internal callers of LogSystem) is
// treated as stdout-origin.
const StreamStderr = "stderr"

// Logger is the concrete Logger collaborator: a zap core configured with
// lineEncoder, writing to the supervisor's stdout. Construction mirrors the
// teacher's habit of hand-tuning a zap.Config/EncoderConfig per entrypoint
// rather than using the library defaults untouched.
type Logger struct {
	core *zap.Logger

	mirrorStderr bool
	mirrorMu     sync.Mutex
}

// New builds a Logger writing to stdout. When mirrorStderr is true,
// stderr-kind child lines are additionally written to the supervisor's own
// stderr (the optional mirroring described by the external-interfaces
// contract); system lines and stdout-kind lines are never mirrored.
func New(mirrorStderr bool) *Logger {
	core := zapcore.NewCore(
		newLineEncoder(),
		zapcore.Lock(zapcore.AddSync(os.Stdout)),
		zap.DebugLevel,
	)
	return &Logger{
		core:         zap.New(core),
		mirrorStderr: mirrorStderr,
	}
}

// LogLine forwards one line of a child's stdout or stderr, tagged with the
// child's process name.
func (l *Logger) LogLine(name, kind, line string) {
	l.core.Info(line, zap.String(tagKey, name))
	if l.mirrorStderr && kind == StreamStderr {
		l.writeMirror(name, line)
	}
}

// LogSystem emits a supervisor-origin line, tagged SYSTEM.
func (l *Logger) LogSystem(line string) {
	l.core.Info(line, zap.String(tagKey, "SYSTEM"))
}

// writeMirror duplicates a line to stderr outside of the zap core: mirroring
// is a secondary, best-effort echo, not the authoritative sink, so it does
// not need its own encoder plumbing.
func (l *Logger) writeMirror(tag, line string) {
	l.mirrorMu.Lock()
	defer l.mirrorMu.Unlock()
	fmt.Fprintf(os.Stderr, "[%s] [%s] %s\n", time.Now().Format(timeLayout), tag, line)
}

// Sync flushes the underlying zap core.
func (l *Logger) Sync() error {
	return l.core.Sync()
}
