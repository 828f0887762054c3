package conntrack

import (
	"fmt"

	"github.com/conntrail/conntrail/pkg/agent/netaddr"
)

// Connection is the immutable identity of a tracked connection. Two
// observations that differ only in pre-normalization address form must
// compare equal, so Connection values are only inserted into maps after
// normalization.
type Connection struct {
	ContainerID string
	Local       netaddr.Endpoint
	Remote      netaddr.Endpoint
	L4Proto     netaddr.L4Proto
	IsServer    bool
}

func (c Connection) String() string {
	arrow := "->"
	if c.IsServer {
		arrow = "<-"
	}
	return fmt.Sprintf("[%s] %s %s %s (%s)", c.ContainerID, c.Local, arrow, c.Remote, c.L4Proto)
}

// ProcessKey identifies the process that opened a listening endpoint. The
// zero value means the originator is unknown.
type ProcessKey struct {
	Name    string
	ExePath string
	Args    string
}

func (p ProcessKey) IsZero() bool {
	return p == ProcessKey{}
}

// ContainerEndpoint is the immutable identity of a tracked listening endpoint.
type ContainerEndpoint struct {
	ContainerID string
	Endpoint    netaddr.Endpoint
	L4Proto     netaddr.L4Proto
	Originator  ProcessKey
}

func (e ContainerEndpoint) String() string {
	return fmt.Sprintf("[%s] listen %s (%s)", e.ContainerID, e.Endpoint, e.L4Proto)
}

// Status is the mutable state attached to a tracked key. LastActive is
// microseconds since the epoch.
type Status struct {
	LastActive int64
	Active     bool
}

// ConnMap holds the tracked connection state. Insertion order is irrelevant.
type ConnMap map[Connection]Status

// EndpointMap holds the tracked listen-endpoint state.
type EndpointMap map[ContainerEndpoint]Status
