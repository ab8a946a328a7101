package supervisor

import "errors"

// Error taxonomy (§7). These are sentinels meant to be matched with
// errors.Is against the wrapped error returned by Start/Stop/Restart.
var (
	ErrProcessNotFound = errors.New("process not found")
	ErrSpawnFailed     = errors.New("spawn failed")
	ErrKillFailed      = errors.New("kill failed")
)
