package netaddr

import "fmt"

// Endpoint is an (address, port) pair. After normalization the Network field
// carries the aggregate the address was folded into; for endpoints reported
// verbatim it stays the single-address network.
type Endpoint struct {
	Addr    Address
	Port    uint16
	Network IPNet
}

// NewEndpoint builds an endpoint whose network side-channel is the address itself.
func NewEndpoint(addr Address, port uint16) Endpoint {
	return Endpoint{Addr: addr, Port: port, Network: SingleAddressNet(addr)}
}

// NewNetworkEndpoint builds an endpoint normalized into net.
func NewNetworkEndpoint(addr Address, port uint16, net IPNet) Endpoint {
	return Endpoint{Addr: addr, Port: port, Network: net}
}

// IsNull reports the all-zero endpoint. Listening sockets appear in the
// kernel tables with a null remote endpoint.
func (e Endpoint) IsNull() bool {
	return e.Addr.IsNull() && e.Port == 0
}

func (e Endpoint) Family() Family {
	return e.Addr.Family()
}

func (e Endpoint) String() string {
	if e.Addr.Family() == FamilyIPv6 {
		return fmt.Sprintf("[%s]:%d", e.Addr, e.Port)
	}
	return fmt.Sprintf("%s:%d", e.Addr, e.Port)
}
