package events

import "github.com/bjartek/tether/pkg/backend"

// BackendLineMsg carries one line of backend output to the host window
type BackendLineMsg struct {
	Origin backend.Origin
	Line   string
}

// BackendStartedMsg is sent once the backend process is running
type BackendStartedMsg struct {
	Pid   int
	Path  string
	Args  []string
	Entry string
}

// BackendExitedMsg is sent when the backend terminates without being stopped
type BackendExitedMsg struct {
	Pid int
	Err error
}

// BackendPortMsg is sent when the backend process tree starts listening on a port
type BackendPortMsg struct {
	Port string
}

// String implements fmt.Stringer
func (m BackendPortMsg) String() string {
	return "backend_port"
}
