package supervisor

import (
	"os"
	"os/signal"
	"syscall"
)

// WatchSignals is the Signal Bridge (C7): it turns the process's own
// SIGINT/SIGTERM into an orderly StopAll, then exits 0 (§6 "a terminated
// run is a successful run"). Only the first signal is honored — a second
// one arriving mid-shutdown is dropped rather than re-entering StopAll or
// hard-killing the janus process itself.
//
// On Windows, os/signal.Notify only ever delivers os.Interrupt (Ctrl-Break)
// and syscall.SIGTERM is not a distinct signal; the call below degrades to
// that single notification, which is the platform's normal story for
// console applications.
func (s *Supervisor) WatchSignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		// ch stays registered and is never read again, so later signals
		// are swallowed instead of falling back to the default handler.
		sig := <-ch
		s.log.LogSystem("received " + sig.String() + ", shutting down")
		s.StopAll()
		os.Exit(0)
	}()
}
