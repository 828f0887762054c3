package reporter

import (
	"encoding/binary"

	log "github.com/sirupsen/logrus"

	"github.com/conntrail/conntrail/pkg/agent/netaddr"
	"github.com/conntrail/conntrail/pkg/agent/rpc"
)

// onControlMessage applies an inbound control message to the normalizer.
// Runs on the stream receive goroutine; the tracker forwards both updates to
// the normalizer's atomic snapshot, so no locking against the scrape loop is
// needed. Each field is checked against its own presence.
func (r *Reporter) onControlMessage(msg *rpc.NetworkFlowsControlMessage) {
	if msg == nil {
		return
	}
	if ips := msg.GetPublicIpAddresses(); ips != nil {
		r.receivePublicIPs(ips)
	}
	if nets := msg.GetIpNetworks(); nets != nil {
		r.receiveIPNetworks(nets)
	}
}

// receivePublicIPs replaces the known public IP set. IPv4 addresses arrive
// as 32-bit values in network byte order and are stored in both their plain
// and v4-in-v6 mapped form; IPv6 addresses arrive as (high, low) word pairs.
func (r *Reporter) receivePublicIPs(ips *rpc.IPAddressList) {
	var addrs []netaddr.Address

	for _, raw := range ips.GetIpv4Addresses() {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], raw)
		addr := netaddr.AddrFrom4(b)
		addrs = append(addrs, addr, addr.ToV6())
	}

	v6 := ips.GetIpv6Addresses()
	if len(v6)%2 != 0 {
		log.Warnf("IPv6 address list has odd length (%d), ignoring IPv6 addresses", len(v6))
	} else {
		for i := 0; i < len(v6); i += 2 {
			var b [16]byte
			binary.BigEndian.PutUint64(b[:8], v6[i])
			binary.BigEndian.PutUint64(b[8:], v6[i+1])
			addrs = append(addrs, netaddr.AddrFrom16(b))
		}
	}

	r.tracker.UpdateKnownPublicIPs(addrs)
	log.Debugf("received %d known public IPs", len(addrs))
}

// receiveIPNetworks replaces the known external networks. The lists are
// packed byte strings of (address, prefix) tuples: 5 bytes per IPv4 network,
// 17 per IPv6 network. A list of the wrong length is dropped with a warning
// without affecting the other family.
func (r *Reporter) receiveIPNetworks(networks *rpc.IPNetworkList) {
	known := make(map[netaddr.Family][]netaddr.IPNet)

	v4 := networks.GetIpv4Networks()
	if len(v4)%5 != 0 {
		log.Warnf("IPv4 network list has incorrect length (%d), ignoring IPv4 networks", len(v4))
	} else {
		known[netaddr.FamilyIPv4] = unpackNetworks(v4, netaddr.FamilyIPv4)
	}

	v6 := networks.GetIpv6Networks()
	if len(v6)%17 != 0 {
		log.Warnf("IPv6 network list has incorrect length (%d), ignoring IPv6 networks", len(v6))
	} else {
		known[netaddr.FamilyIPv6] = unpackNetworks(v6, netaddr.FamilyIPv6)
	}

	r.tracker.UpdateKnownIPNetworks(known)
}

func unpackNetworks(packed []byte, family netaddr.Family) []netaddr.IPNet {
	tupleSize := family.Length() + 1
	nets := make([]netaddr.IPNet, 0, len(packed)/tupleSize)
	for off := 0; off+tupleSize <= len(packed); off += tupleSize {
		addr, err := netaddr.AddrFromSlice(packed[off : off+tupleSize-1])
		if err != nil {
			continue
		}
		nets = append(nets, netaddr.NewIPNet(addr, packed[off+tupleSize-1]))
	}
	return nets
}
