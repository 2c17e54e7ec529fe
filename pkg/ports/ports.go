// Package ports discovers which TCP ports the backend process tree listens on.
package ports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/process"
)

// Listening returns the sorted listening ports of pid and all of its descendants.
func Listening(pid int, logger zerolog.Logger) ([]string, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil, errors.Wrapf(err, "get process %d", pid)
	}

	portSet := make(map[string]struct{})
	visited := make(map[int32]struct{})
	collectListeningPorts(p, visited, portSet, logger)

	ports := make([]string, 0, len(portSet))
	for port := range portSet {
		ports = append(ports, port)
	}
	sort.Strings(ports)
	return ports, nil
}

func collectListeningPorts(proc *process.Process, visited map[int32]struct{}, portSet map[string]struct{}, logger zerolog.Logger) {
	if proc == nil {
		return
	}

	pid := proc.Pid
	if _, seen := visited[pid]; seen {
		return
	}
	visited[pid] = struct{}{}

	name, _ := proc.Name()

	conns, err := proc.Connections()
	if err != nil {
		logger.Debug().Err(err).Int32("pid", pid).Str("process", name).Msg("Failed to get process connections")
	} else {
		for _, conn := range conns {
			if conn.Status == "LISTEN" {
				portSet[fmt.Sprintf("%d", conn.Laddr.Port)] = struct{}{}
			}
		}
	}

	children, err := proc.Children()
	if err != nil {
		// gopsutil reports an error when there are simply no children.
		return
	}

	for _, child := range children {
		collectListeningPorts(child, visited, portSet, logger)
	}
}

// Watch polls the process tree of pid every interval and calls found for each port that
// was not seen before. It returns when ctx is cancelled or the process disappears.
func Watch(ctx context.Context, pid int, interval time.Duration, logger zerolog.Logger, found func(port string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	seen := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		exists, err := process.PidExistsWithContext(ctx, int32(pid))
		if err != nil || !exists {
			logger.Debug().Int("pid", pid).Msg("Backend process gone, stopping port discovery")
			return
		}

		ports, err := Listening(pid, logger)
		if err != nil {
			logger.Debug().Err(err).Int("pid", pid).Msg("Failed to list backend ports")
			continue
		}

		for _, port := range ports {
			if _, ok := seen[port]; ok {
				continue
			}
			seen[port] = struct{}{}
			logger.Debug().Str("port", port).Int("pid", pid).Msg("Backend listening port detected")
			found(port)
		}
	}
}
