// Package backend launches the backend server as a child process, forwards its output
// and makes sure it is killed exactly once when the host shuts down.
package backend

import (
	"io"
	"os/exec"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// State describes where a Supervisor is in its lifecycle.
type State string

const (
	StateIdle     State = "idle"
	StateStarting State = "starting"
	StateRunning  State = "running"
	StateStopped  State = "stopped"
	StateExited   State = "exited"
)

// ExitFunc is called when the backend terminates on its own, i.e. without Stop.
type ExitFunc func(pid int, err error)

// StartFunc is called by Start once the process is stored, before its exit can be
// observed. It runs on the goroutine calling Start.
type StartFunc func(pid int)

// Supervisor owns at most one backend process.
//
// The slot holding the process handle is guarded by mu. Neither the launch nor the kill
// syscall runs while mu is held, so Start and Stop never wait on each other's OS calls.
type Supervisor struct {
	launcher Launcher
	sink     Sink
	logger   zerolog.Logger
	onExit   ExitFunc
	onStart  StartFunc

	mu    sync.Mutex
	slot  Handle
	state State
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithLogger sets the logger used for lifecycle messages and stream read errors.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Supervisor) {
		s.logger = logger
	}
}

// WithExitHandler registers fn to be called when the backend exits without being stopped.
func WithExitHandler(fn ExitFunc) Option {
	return func(s *Supervisor) {
		s.onExit = fn
	}
}

// WithStartHandler registers fn to be called with the pid of every process Start stores.
// The exit handler for that process never runs before fn returns.
func WithStartHandler(fn StartFunc) Option {
	return func(s *Supervisor) {
		s.onStart = fn
	}
}

// NewSupervisor creates an idle supervisor. A nil sink logs backend lines through the
// supervisor's logger.
func NewSupervisor(launcher Launcher, sink Sink, opts ...Option) *Supervisor {
	s := &Supervisor{
		launcher: launcher,
		sink:     sink,
		logger:   zerolog.Nop(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sink == nil {
		s.sink = NewLogSink(s.logger)
	}
	return s
}

// Start launches the backend and begins forwarding its output. It returns as soon as the
// handle is stored and does not wait for any output.
//
// Calling Start while a process is held fails with *AlreadyRunningError. Launch failures
// are returned unchanged (a *SpawnError for ExecLauncher) and leave the slot empty.
func (s *Supervisor) Start(path string, args []string) error {
	s.mu.Lock()
	if s.slot != nil {
		pid := s.slot.Pid()
		s.mu.Unlock()
		return &AlreadyRunningError{Pid: pid}
	}
	if s.state == StateStarting {
		s.mu.Unlock()
		return &AlreadyRunningError{}
	}
	prev := s.state
	s.state = StateStarting
	s.mu.Unlock()

	s.logger.Info().Str("path", path).Strs("args", args).Msg("Starting backend process")

	h, streams, err := s.launcher.Launch(path, args)
	if err != nil {
		s.mu.Lock()
		if s.state == StateStarting {
			s.state = prev
		}
		s.mu.Unlock()
		s.logger.Error().Err(err).Str("path", path).Msg("Failed to start backend process")
		return err
	}

	s.mu.Lock()
	if s.state != StateStarting {
		// Stop ran while we were launching; nobody is left to stop this process.
		s.mu.Unlock()
		s.logger.Warn().Int("pid", h.Pid()).Msg("Supervisor stopped during start, killing backend process")
		_ = h.Kill()
		closeStreams(streams)
		return ErrStopped
	}
	s.slot = h
	s.state = StateRunning
	s.mu.Unlock()

	s.logger.Info().Int("pid", h.Pid()).Msg("Backend process started")

	if s.onStart != nil {
		s.onStart(h.Pid())
	}

	go s.pump(streams.Stdout, OriginStdout)
	go s.pump(streams.Stderr, OriginStderr)
	go s.watch(h)

	return nil
}

// Stop takes the process out of the slot and kills it. It is safe to call from any
// goroutine, any number of times; only the first call with a process present kills it.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	h := s.slot
	s.slot = nil
	if h != nil || s.state == StateStarting {
		s.state = StateStopped
	}
	s.mu.Unlock()

	if h == nil {
		return
	}

	s.logger.Info().Int("pid", h.Pid()).Msg("Stopping backend process")
	if err := h.Kill(); err != nil {
		// Usually the process exited on its own just before the kill.
		s.logger.Debug().Err(err).Int("pid", h.Pid()).Msg("Kill of backend process failed")
	}
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Running reports whether a process handle is currently held.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot != nil
}

// Pid returns the pid of the held process, or 0.
func (s *Supervisor) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slot == nil {
		return 0
	}
	return s.slot.Pid()
}

func (s *Supervisor) pump(r io.ReadCloser, origin Origin) {
	if r == nil {
		return
	}
	defer r.Close()
	forward(r, origin, s.sink, s.logger)
}

// watch clears the slot when the process it was started for exits on its own.
func (s *Supervisor) watch(h Handle) {
	<-h.Done()
	err := h.ExitErr()

	s.mu.Lock()
	owned := s.slot == h
	if owned {
		s.slot = nil
		s.state = StateExited
	}
	s.mu.Unlock()

	if !owned {
		s.logger.Debug().Int("pid", h.Pid()).Msg("Backend process exited after stop")
		return
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.logger.Error().
				Int("pid", h.Pid()).
				Int("exit_code", exitErr.ExitCode()).
				Msg("Backend process exited with error")
		} else {
			s.logger.Error().Err(err).Int("pid", h.Pid()).Msg("Backend process exited with error")
		}
	} else {
		s.logger.Info().Int("pid", h.Pid()).Msg("Backend process exited")
	}

	if s.onExit != nil {
		s.onExit(h.Pid(), err)
	}
}

func closeStreams(streams Streams) {
	if streams.Stdout != nil {
		_ = streams.Stdout.Close()
	}
	if streams.Stderr != nil {
		_ = streams.Stderr.Close()
	}
}
