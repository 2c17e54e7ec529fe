package backend

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupervisor_StartTwiceFails(t *testing.T) {
	launcher, handles := newFakeLauncher(100, 200)
	sup := NewSupervisor(launcher, &recordingSink{})

	require.NoError(t, sup.Start("/usr/bin/node", []string{"index.js"}))

	err := sup.Start("/usr/bin/node", []string{"index.js"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	var already *AlreadyRunningError
	require.True(t, errors.As(err, &already))
	assert.Equal(t, 100, already.Pid)

	assert.Equal(t, 1, launcher.callCount(), "second Start must not launch")
	assert.Equal(t, int32(0), handles[0].kills.Load(), "first handle must be untouched")
	assert.Equal(t, 100, sup.Pid())
	assert.Equal(t, StateRunning, sup.State())

	sup.Stop()
}

func TestSupervisor_StopKillsOnce(t *testing.T) {
	launcher, handles := newFakeLauncher(100)
	sup := NewSupervisor(launcher, &recordingSink{})

	require.NoError(t, sup.Start("/usr/bin/node", nil))

	sup.Stop()
	sup.Stop()
	sup.Stop()

	assert.Equal(t, int32(1), handles[0].kills.Load())
	assert.False(t, sup.Running())
	assert.Equal(t, 0, sup.Pid())
	assert.Equal(t, StateStopped, sup.State())
}

func TestSupervisor_StopWithoutStartIsNoop(t *testing.T) {
	launcher, _ := newFakeLauncher()
	sup := NewSupervisor(launcher, nil)

	sup.Stop()
	sup.Stop()

	assert.Equal(t, StateIdle, sup.State())
	assert.Equal(t, 0, launcher.callCount())
}

func TestSupervisor_ConcurrentStopKillsOnce(t *testing.T) {
	launcher, handles := newFakeLauncher(100)
	sup := NewSupervisor(launcher, &recordingSink{})
	require.NoError(t, sup.Start("/usr/bin/node", nil))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sup.Stop()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), handles[0].kills.Load())
	assert.False(t, sup.Running())
}

func TestSupervisor_StartAfterStop(t *testing.T) {
	launcher, handles := newFakeLauncher(100, 200)
	sup := NewSupervisor(launcher, &recordingSink{})

	require.NoError(t, sup.Start("/usr/bin/node", nil))
	sup.Stop()

	require.NoError(t, sup.Start("/usr/bin/node", nil))
	assert.Equal(t, 200, sup.Pid())
	assert.Equal(t, StateRunning, sup.State())
	assert.Equal(t, int32(0), handles[1].kills.Load())

	sup.Stop()
	assert.Equal(t, int32(1), handles[1].kills.Load())
}

func TestSupervisor_LaunchFailureLeavesSlotEmpty(t *testing.T) {
	launcher := &fakeLauncher{}
	spawnErr := &SpawnError{Path: "node", Err: os.ErrNotExist}
	launcher.add(launchResult{err: spawnErr})
	h, streams := newFakeHandle(300)
	launcher.add(launchResult{handle: h, streams: streams})

	sup := NewSupervisor(launcher, &recordingSink{})

	err := sup.Start("node", nil)
	require.Error(t, err)

	var se *SpawnError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "node", se.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.False(t, sup.Running())
	assert.Equal(t, StateIdle, sup.State())

	// No partial state: the next Start is accepted.
	require.NoError(t, sup.Start("node", nil))
	assert.Equal(t, 300, sup.Pid())
	sup.Stop()
}

func TestSupervisor_KillErrorIsSwallowed(t *testing.T) {
	launcher, handles := newFakeLauncher(100)
	handles[0].killErr = os.ErrProcessDone
	sup := NewSupervisor(launcher, &recordingSink{}, WithLogger(zerolog.Nop()))

	require.NoError(t, sup.Start("/usr/bin/node", nil))
	assert.NotPanics(t, sup.Stop)
	assert.Equal(t, StateStopped, sup.State())
}

func TestSupervisor_ExitClearsSlot(t *testing.T) {
	launcher, handles := newFakeLauncher(100)

	exited := make(chan int, 1)
	sup := NewSupervisor(launcher, &recordingSink{}, WithExitHandler(func(pid int, err error) {
		exited <- pid
	}))
	require.NoError(t, sup.Start("/usr/bin/node", nil))

	handles[0].exit(errors.New("crashed"))

	select {
	case pid := <-exited:
		assert.Equal(t, 100, pid)
	case <-time.After(2 * time.Second):
		t.Fatal("exit handler was not called")
	}

	assert.False(t, sup.Running())
	assert.Equal(t, StateExited, sup.State())

	// Nothing left to kill.
	sup.Stop()
	assert.Equal(t, int32(0), handles[0].kills.Load())
}

func TestSupervisor_ExitHandlerNotCalledAfterStop(t *testing.T) {
	launcher, handles := newFakeLauncher(100)

	called := make(chan struct{}, 1)
	sup := NewSupervisor(launcher, &recordingSink{}, WithExitHandler(func(int, error) {
		called <- struct{}{}
	}))
	require.NoError(t, sup.Start("/usr/bin/node", nil))
	sup.Stop()

	<-handles[0].Done()
	select {
	case <-called:
		t.Fatal("exit handler must not run for a stopped process")
	case <-time.After(100 * time.Millisecond):
	}
	assert.Equal(t, StateStopped, sup.State())
}

func TestSupervisor_StopDuringStart(t *testing.T) {
	launcher, handles := newFakeLauncher(100)
	launcher.entered = make(chan struct{})
	launcher.gate = make(chan struct{})

	sup := NewSupervisor(launcher, &recordingSink{})

	result := make(chan error, 1)
	go func() {
		result <- sup.Start("/usr/bin/node", nil)
	}()

	<-launcher.entered
	assert.Equal(t, StateStarting, sup.State())

	// A second Start while the first is launching is rejected.
	err := sup.Start("/usr/bin/node", nil)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	sup.Stop()
	close(launcher.gate)

	select {
	case err := <-result:
		assert.True(t, errors.Is(err, ErrStopped))
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return")
	}

	assert.Equal(t, int32(1), handles[0].kills.Load(), "process launched after Stop must be killed")
	assert.False(t, sup.Running())
	assert.Equal(t, StateStopped, sup.State())
}

func TestSupervisor_ForwardsBothStreams(t *testing.T) {
	launcher, handles := newFakeLauncher(100)
	sink := &recordingSink{}
	sup := NewSupervisor(launcher, sink)
	require.NoError(t, sup.Start("/usr/bin/node", nil))

	go func() {
		_, _ = handles[0].stdoutW.Write([]byte("A\nB\n"))
	}()
	go func() {
		_, _ = handles[0].stderrW.Write([]byte("E\n"))
	}()

	require.Eventually(t, func() bool {
		return len(sink.all()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"A", "B"}, sink.lines(OriginStdout))
	assert.Equal(t, []string{"E"}, sink.lines(OriginStderr))

	sup.Stop()
}

func TestSupervisor_StartHandlerRunsBeforeExit(t *testing.T) {
	for i := 0; i < 50; i++ {
		launcher, handles := newFakeLauncher(100)
		// The process is already gone by the time Start stores it.
		handles[0].exit(errors.New("crashed"))

		var mu sync.Mutex
		var order []string
		exited := make(chan struct{})

		sup := NewSupervisor(launcher, &recordingSink{},
			WithStartHandler(func(pid int) {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, fmt.Sprintf("start %d", pid))
			}),
			WithExitHandler(func(pid int, err error) {
				mu.Lock()
				order = append(order, fmt.Sprintf("exit %d", pid))
				mu.Unlock()
				close(exited)
			}),
		)

		require.NoError(t, sup.Start("/usr/bin/node", nil))

		select {
		case <-exited:
		case <-time.After(2 * time.Second):
			t.Fatal("exit handler was not called")
		}

		mu.Lock()
		assert.Equal(t, []string{"start 100", "exit 100"}, order)
		mu.Unlock()
		assert.Equal(t, StateExited, sup.State())
	}
}

func TestSupervisor_StartHandlerNotCalledOnFailure(t *testing.T) {
	launcher := &fakeLauncher{}
	launcher.add(launchResult{err: &SpawnError{Path: "node", Err: os.ErrNotExist}})

	called := false
	sup := NewSupervisor(launcher, &recordingSink{}, WithStartHandler(func(int) {
		called = true
	}))

	require.Error(t, sup.Start("node", nil))
	assert.False(t, called)
}
