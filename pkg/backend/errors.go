package backend

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrAlreadyRunning is matched by AlreadyRunningError.
	ErrAlreadyRunning = errors.New("backend process is already running")

	// ErrStopped is returned by Start when Stop was called while the launch was in flight.
	// The freshly spawned process has already been killed when this is returned.
	ErrStopped = errors.New("supervisor stopped during start")
)

// SpawnError reports that the backend executable could not be started.
// It is fatal to startup and carries the underlying OS error.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn backend %q: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// AlreadyRunningError is returned when Start is called while a process is held.
type AlreadyRunningError struct {
	Pid int
}

func (e *AlreadyRunningError) Error() string {
	if e.Pid <= 0 {
		return "backend process is already starting"
	}
	return fmt.Sprintf("backend process is already running (pid %d)", e.Pid)
}

func (e *AlreadyRunningError) Is(target error) bool {
	return target == ErrAlreadyRunning
}

// StreamReadError is logged when a forwarder fails to read its stream.
// It never leaves the forwarding goroutine.
type StreamReadError struct {
	Origin Origin
	Err    error
}

func (e *StreamReadError) Error() string {
	return fmt.Sprintf("read backend %s: %v", e.Origin, e.Err)
}

func (e *StreamReadError) Unwrap() error {
	return e.Err
}
