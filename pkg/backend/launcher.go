package backend

import (
	"io"
	"os"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// Handle is a reference to a running backend process.
type Handle interface {
	// Pid returns the OS process id.
	Pid() int

	// Kill terminates the process. Killing a process that already exited returns
	// an error the caller is expected to ignore.
	Kill() error

	// Done is closed once the process has exited and been reaped.
	Done() <-chan struct{}

	// ExitErr returns the result of waiting on the process. It is only meaningful
	// after Done is closed and returns nil before that.
	ExitErr() error
}

// Streams are the read ends of the child's stdout and stderr. They are only handed out by
// Launch; whoever receives them owns them.
type Streams struct {
	Stdout io.ReadCloser
	Stderr io.ReadCloser
}

// Launcher starts a backend process.
type Launcher interface {
	Launch(path string, args []string) (Handle, Streams, error)
}

// ExecLauncher launches processes with os/exec. The zero value inherits the host's
// working directory and environment.
type ExecLauncher struct {
	// Dir is the working directory of the child. Empty means the host's.
	Dir string

	// Env holds extra KEY=VALUE pairs appended to the host environment.
	Env []string
}

// Launch spawns path with args, with stdout and stderr redirected to pipes. Any failure to
// start the process is returned as *SpawnError.
func (l *ExecLauncher) Launch(path string, args []string) (Handle, Streams, error) {
	cmd := exec.Command(path, args...)
	setupProcessGroup(cmd)
	cmd.Dir = l.Dir
	if len(l.Env) > 0 {
		cmd.Env = append(os.Environ(), l.Env...)
	}

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, Streams{}, &SpawnError{Path: path, Err: errors.Wrap(err, "create stdout pipe")}
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		_ = stdoutR.Close()
		_ = stdoutW.Close()
		return nil, Streams{}, &SpawnError{Path: path, Err: errors.Wrap(err, "create stderr pipe")}
	}

	// Handing *os.File values to exec passes the descriptors straight to the child, so
	// Wait never closes our read ends underneath the forwarders.
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	startErr := cmd.Start()

	// The child holds its own copies of the write ends; ours must go so the readers
	// see end-of-stream when the child exits.
	_ = stdoutW.Close()
	_ = stderrW.Close()

	if startErr != nil {
		_ = stdoutR.Close()
		_ = stderrR.Close()
		return nil, Streams{}, &SpawnError{Path: path, Err: startErr}
	}

	p := &process{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go p.wait()

	return p, Streams{Stdout: stdoutR, Stderr: stderrR}, nil
}

type process struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (p *process) wait() {
	p.err = p.cmd.Wait()
	close(p.done)
}

func (p *process) Pid() int {
	return p.cmd.Process.Pid
}

func (p *process) Kill() error {
	select {
	case <-p.done:
		return os.ErrProcessDone
	default:
	}
	return killProcess(p.cmd)
}

func (p *process) Done() <-chan struct{} {
	return p.done
}

func (p *process) ExitErr() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}
