// Package host wires configuration, the backend supervisor, port discovery and the host
// window together.
package host

import (
	"context"
	"sync"

	"github.com/bjartek/tether/pkg/backend"
	"github.com/bjartek/tether/pkg/config"
	"github.com/bjartek/tether/pkg/events"
	"github.com/bjartek/tether/pkg/logs"
	"github.com/bjartek/tether/pkg/ports"
	"github.com/bjartek/tether/pkg/resource"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Host owns the backend process for the lifetime of the application.
type Host struct {
	cfg        *config.Config
	fs         afero.Fs
	logger     zerolog.Logger
	program    events.Sender
	launcher   backend.Launcher
	supervisor *backend.Supervisor

	// launch describes the Start in progress; onStart fills in the pid.
	launch events.BackendStartedMsg
	pid    int

	ctx    context.Context
	cancel context.CancelFunc

	exitOnce sync.Once
	exited   chan struct{}
}

// Option configures a Host.
type Option func(*Host)

// WithProgram forwards backend lines and lifecycle events to the host window.
func WithProgram(program events.Sender) Option {
	return func(h *Host) {
		h.program = program
	}
}

// WithFs sets the filesystem the backend entry is resolved on.
func WithFs(fs afero.Fs) Option {
	return func(h *Host) {
		h.fs = fs
	}
}

// WithLauncher replaces the launcher built from the backend config.
func WithLauncher(launcher backend.Launcher) Option {
	return func(h *Host) {
		h.launcher = launcher
	}
}

// New creates a host. logger is the root logger; component loggers are derived from it
// with the configured levels.
func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) *Host {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Host{
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		logger: logs.Component(logger, "host", cfg.Logging.Level.Host),
		ctx:    ctx,
		cancel: cancel,
		exited: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	// The log sink tags lines with component=backend itself.
	backendLogger := logger.Level(logs.ParseLevel(cfg.Logging.Level.Backend))
	sinks := []backend.Sink{backend.NewLogSink(backendLogger)}
	if h.program != nil {
		sinks = append(sinks, events.NewProgramSink(h.program))
	}

	if h.launcher == nil {
		h.launcher = &backend.ExecLauncher{
			Dir: cfg.Backend.Workdir,
			Env: cfg.Backend.Env,
		}
	}
	h.supervisor = backend.NewSupervisor(h.launcher, backend.MultiSink(sinks...),
		backend.WithLogger(h.logger),
		backend.WithStartHandler(h.onStart),
		backend.WithExitHandler(h.onExit),
	)
	return h
}

// Supervisor returns the supervisor holding the backend process.
func (h *Host) Supervisor() *backend.Supervisor {
	return h.supervisor
}

// Exited is closed when the backend terminates on its own.
func (h *Host) Exited() <-chan struct{} {
	return h.exited
}

// Start resolves the backend entry and launches it with extraArgs appended to the
// configured arguments. Any error is meant to be fatal to the host. If Shutdown runs while
// the backend is launching, the new process is killed and Start returns nil.
func (h *Host) Start(extraArgs []string) error {
	b := h.cfg.Backend

	resolver := resource.NewResolver(h.fs, b.ResourceDir)
	entry, err := resolver.Entry(b.Entry)
	if err != nil {
		return errors.Wrapf(err, "resolve backend entry in %s", resolver.Dir())
	}

	args := append(append([]string{}, b.Args...), extraArgs...)
	path, argv := resource.Command(b.Interpreter, entry, args)

	h.launch = events.BackendStartedMsg{Path: path, Args: argv, Entry: entry}
	h.pid = 0
	if err := h.supervisor.Start(path, argv); err != nil {
		if errors.Is(err, backend.ErrStopped) {
			h.logger.Info().Msg("Shutdown requested while the backend was starting")
			return nil
		}
		return errors.Wrap(err, "start backend")
	}

	pid := h.pid
	if b.PortScanInterval > 0 {
		go ports.Watch(h.ctx, pid, b.PortScanInterval, h.logger, func(port string) {
			h.logger.Info().Str("port", port).Int("pid", pid).Msg("Backend is listening")
			h.send(events.BackendPortMsg{Port: port})
		})
	}
	return nil
}

// Shutdown stops port discovery and kills the backend. It is safe to call more than once.
func (h *Host) Shutdown() {
	h.cancel()
	h.supervisor.Stop()
}

// onStart runs inside supervisor.Start, so the started message always precedes the
// exited message of the same process.
func (h *Host) onStart(pid int) {
	h.pid = pid
	msg := h.launch
	msg.Pid = pid
	h.send(msg)
}

func (h *Host) onExit(pid int, err error) {
	h.send(events.BackendExitedMsg{Pid: pid, Err: err})
	h.exitOnce.Do(func() { close(h.exited) })
}

func (h *Host) send(msg any) {
	if h.program != nil {
		h.program.Send(msg)
	}
}
