package backend

import (
	"io"
	"sync"
	"sync/atomic"
)

type sinkEntry struct {
	Origin Origin
	Line   string
}

type recordingSink struct {
	mu      sync.Mutex
	entries []sinkEntry
}

func (s *recordingSink) Line(origin Origin, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, sinkEntry{Origin: origin, Line: line})
}

func (s *recordingSink) all() []sinkEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sinkEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *recordingSink) lines(origin Origin) []string {
	var out []string
	for _, e := range s.all() {
		if e.Origin == origin {
			out = append(out, e.Line)
		}
	}
	return out
}

// fakeHandle stands in for a process. Its streams are io.Pipes that close when the
// "process" exits.
type fakeHandle struct {
	pid     int
	killErr error
	kills   atomic.Int32

	stdoutW *io.PipeWriter
	stderrW *io.PipeWriter

	done     chan struct{}
	exitOnce sync.Once
	exitErr  error
}

func newFakeHandle(pid int) (*fakeHandle, Streams) {
	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()
	h := &fakeHandle{
		pid:     pid,
		stdoutW: stdoutW,
		stderrW: stderrW,
		done:    make(chan struct{}),
	}
	return h, Streams{Stdout: stdoutR, Stderr: stderrR}
}

func (h *fakeHandle) Pid() int { return h.pid }

func (h *fakeHandle) Kill() error {
	h.kills.Add(1)
	h.exit(nil)
	return h.killErr
}

func (h *fakeHandle) Done() <-chan struct{} { return h.done }

func (h *fakeHandle) ExitErr() error {
	select {
	case <-h.done:
		return h.exitErr
	default:
		return nil
	}
}

func (h *fakeHandle) exit(err error) {
	h.exitOnce.Do(func() {
		h.exitErr = err
		_ = h.stdoutW.Close()
		_ = h.stderrW.Close()
		close(h.done)
	})
}

type launchResult struct {
	handle  *fakeHandle
	streams Streams
	err     error
}

// fakeLauncher hands out prepared results in order. When gate is set, Launch blocks
// until the gate is closed and signals entered first.
type fakeLauncher struct {
	mu      sync.Mutex
	results []launchResult
	calls   int

	entered chan struct{}
	gate    chan struct{}
}

func (l *fakeLauncher) add(r launchResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, r)
}

func (l *fakeLauncher) Launch(path string, args []string) (Handle, Streams, error) {
	if l.entered != nil {
		close(l.entered)
	}
	if l.gate != nil {
		<-l.gate
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.results[l.calls]
	l.calls++
	if r.err != nil {
		return nil, Streams{}, r.err
	}
	return r.handle, r.streams, nil
}

func (l *fakeLauncher) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func newFakeLauncher(pids ...int) (*fakeLauncher, []*fakeHandle) {
	l := &fakeLauncher{}
	handles := make([]*fakeHandle, 0, len(pids))
	for _, pid := range pids {
		h, streams := newFakeHandle(pid)
		handles = append(handles, h)
		l.add(launchResult{handle: h, streams: streams})
	}
	return l, handles
}
