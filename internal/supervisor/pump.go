package supervisor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	streamStdout = "stdout"
	streamStderr = "stderr"
)

// startPump launches the Stream Pump (C3) for one stream of one child: it
// reads lines until end-of-stream, forwarding each non-empty line to the
// logger tagged with the child's name and the stream kind. It holds no
// locks and is independent of the Exit Monitor — it may finish before or
// after the child's exit is observed.
//
// Grounded on processmgr.process.handleStdout/handleStderr in the teacher.
func startPump(name, kind string, r io.ReadCloser, log Logger) {
	go func() {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64*1024), 1024*1024)

		for sc.Scan() {
			line := strings.TrimRight(sc.Text(), "\r\n")
			if line == "" {
				continue
			}
			log.LogLine(name, kind, line)
		}

		if err := sc.Err(); err != nil {
			log.LogSystem(fmt.Sprintf("%s: %s pump failed: %v", name, kind, err))
		}
	}()
}
