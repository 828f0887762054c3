package conntrack

import (
	"sort"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/conntrail/conntrail/pkg/agent/netaddr"
)

// knowledge is an immutable snapshot of what the aggregator has told us about
// the cluster's public IPs and named external networks. Writers build a new
// snapshot and swap the pointer; readers never see a partial update.
type knowledge struct {
	publicIPs map[netaddr.Address]struct{}
	// per family, ordered longest prefix first so the first match is the
	// longest-prefix match
	networks map[netaddr.Family][]netaddr.IPNet
}

var emptyKnowledge = &knowledge{
	publicIPs: map[netaddr.Address]struct{}{},
	networks:  map[netaddr.Family][]netaddr.IPNet{},
}

// Normalizer canonicalizes remote endpoints against the published public-IP
// and external-network knowledge. It is the only state shared between the
// reporter thread and the control-stream receive thread.
type Normalizer struct {
	snap atomic.Pointer[knowledge]
}

func NewNormalizer() *Normalizer {
	n := &Normalizer{}
	n.snap.Store(emptyKnowledge)
	return n
}

// UpdateKnownPublicIPs replaces the public-IP set wholesale.
func (n *Normalizer) UpdateKnownPublicIPs(addrs []netaddr.Address) {
	old := n.snap.Load()
	next := &knowledge{
		publicIPs: lo.SliceToMap(addrs, func(a netaddr.Address) (netaddr.Address, struct{}) {
			return a, struct{}{}
		}),
		networks: old.networks,
	}
	n.snap.Store(next)
}

// UpdateKnownIPNetworks replaces the external-network map wholesale.
func (n *Normalizer) UpdateKnownIPNetworks(nets map[netaddr.Family][]netaddr.IPNet) {
	sorted := make(map[netaddr.Family][]netaddr.IPNet, len(nets))
	for family, list := range nets {
		ordered := make([]netaddr.IPNet, len(list))
		copy(ordered, list)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Bits() > ordered[j].Bits()
		})
		sorted[family] = ordered
	}
	old := n.snap.Load()
	n.snap.Store(&knowledge{publicIPs: old.publicIPs, networks: sorted})
}

func (k *knowledge) isKnownPublicIP(addr netaddr.Address) bool {
	if _, ok := k.publicIPs[addr]; ok {
		return true
	}
	_, ok := k.publicIPs[addr.ToV6()]
	return ok
}

func (k *knowledge) lookupNetwork(addr netaddr.Address) (netaddr.IPNet, bool) {
	for _, net := range k.networks[addr.Family()] {
		if net.Contains(addr) {
			return net, true
		}
	}
	return netaddr.IPNet{}, false
}

// NormalizeRemote canonicalizes the remote endpoint of a connection. With
// external IPs enabled the raw address is kept. Otherwise the address is
// folded into the longest matching known network, kept verbatim when it is
// private, loopback or a known public IP of this node, and collapsed to the
// family wildcard tagged with prefix 0 ("somewhere external") in all other
// cases.
func (n *Normalizer) NormalizeRemote(ep netaddr.Endpoint, enableExternalIPs bool) netaddr.Endpoint {
	if ep.IsNull() || enableExternalIPs {
		return ep
	}

	snap := n.snap.Load()
	if net, ok := snap.lookupNetwork(ep.Addr); ok {
		return netaddr.NewNetworkEndpoint(net.Address(), ep.Port, net)
	}
	if snap.isKnownPublicIP(ep.Addr) || ep.Addr.IsPrivate() || ep.Addr.IsLoopback() {
		return ep
	}
	wildcard := netaddr.Any(ep.Addr.Family())
	return netaddr.NewNetworkEndpoint(wildcard, ep.Port, netaddr.NewIPNet(wildcard, 0))
}

// normalizeConnection rewrites a raw scraped connection into its canonical
// form. The local address of a server connection carries no information
// beyond the port (the container may be reachable on several interfaces);
// for client connections the local endpoint is dropped entirely.
func (n *Normalizer) normalizeConnection(conn Connection, enableExternalIPs bool) Connection {
	if conn.IsServer {
		conn.Local = netaddr.NewEndpoint(netaddr.Any(conn.Local.Family()), conn.Local.Port)
	} else {
		conn.Local = netaddr.Endpoint{}
	}
	conn.Remote = n.NormalizeRemote(conn.Remote, enableExternalIPs)
	return conn
}

// normalizeEndpoint canonicalizes a listening endpoint: only the family and
// port are meaningful to the receiver.
func (n *Normalizer) normalizeEndpoint(cep ContainerEndpoint) ContainerEndpoint {
	cep.Endpoint = netaddr.NewEndpoint(netaddr.Any(cep.Endpoint.Family()), cep.Endpoint.Port)
	return cep
}
