package reporter

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conntrail/conntrail/pkg/agent/conntrack"
	"github.com/conntrail/conntrail/pkg/agent/netaddr"
	"github.com/conntrail/conntrail/pkg/agent/rpc"
)

func newTestReporter() (*Reporter, *conntrack.Normalizer) {
	normalizer := conntrack.NewNormalizer()
	tracker := conntrack.NewTracker(normalizer)
	return New(DefaultConfig(), nil, tracker), normalizer
}

func mustAddr(t *testing.T, s string) netaddr.Address {
	t.Helper()
	a := netaddr.AddrFromNetIP(net.ParseIP(s))
	require.True(t, a.IsValid())
	return a
}

func TestControlMessagePublicIPs(t *testing.T) {
	r, normalizer := newTestReporter()

	r.onControlMessage(&rpc.NetworkFlowsControlMessage{
		PublicIpAddresses: &rpc.IPAddressList{
			// 198.51.100.7 in network byte order
			Ipv4Addresses: []uint32{0xc6336407},
			// 2001:db8::7
			Ipv6Addresses: []uint64{0x20010db800000000, 0x0000000000000007},
		},
	})

	// known public IPs survive normalization verbatim
	kept := netaddr.NewEndpoint(mustAddr(t, "198.51.100.7"), 443)
	assert.Equal(t, kept, normalizer.NormalizeRemote(kept, false))

	kept6 := netaddr.NewEndpoint(mustAddr(t, "2001:db8::7"), 443)
	assert.Equal(t, kept6, normalizer.NormalizeRemote(kept6, false))

	// unknown public addresses still collapse
	other := netaddr.NewEndpoint(mustAddr(t, "198.51.100.8"), 443)
	assert.True(t, normalizer.NormalizeRemote(other, false).Addr.IsNull())
}

func TestControlMessageOddIPv6ListRejected(t *testing.T) {
	r, normalizer := newTestReporter()

	r.onControlMessage(&rpc.NetworkFlowsControlMessage{
		PublicIpAddresses: &rpc.IPAddressList{
			Ipv4Addresses: []uint32{0xc6336407},
			Ipv6Addresses: []uint64{0x20010db800000000}, // odd length
		},
	})

	// the IPv4 part is still applied
	kept := netaddr.NewEndpoint(mustAddr(t, "198.51.100.7"), 443)
	assert.Equal(t, kept, normalizer.NormalizeRemote(kept, false))
}

func TestControlMessageIPNetworks(t *testing.T) {
	r, normalizer := newTestReporter()

	r.onControlMessage(&rpc.NetworkFlowsControlMessage{
		IpNetworks: &rpc.IPNetworkList{
			Ipv4Networks: []byte{203, 0, 113, 0, 24},
			Ipv6Networks: append(mustAddr(t, "2001:db8::").Data(), 32),
		},
	})

	folded := normalizer.NormalizeRemote(netaddr.NewEndpoint(mustAddr(t, "203.0.113.5"), 443), false)
	assert.Equal(t, mustAddr(t, "203.0.113.0"), folded.Addr)
	assert.EqualValues(t, 24, folded.Network.Bits())

	folded6 := normalizer.NormalizeRemote(netaddr.NewEndpoint(mustAddr(t, "2001:db8::9"), 443), false)
	assert.EqualValues(t, 32, folded6.Network.Bits())
}

func TestControlMessageBadNetworkListRejected(t *testing.T) {
	r, normalizer := newTestReporter()

	r.onControlMessage(&rpc.NetworkFlowsControlMessage{
		IpNetworks: &rpc.IPNetworkList{
			Ipv4Networks: []byte{203, 0, 113, 0}, // not a multiple of 5
			Ipv6Networks: append(mustAddr(t, "2001:db8::").Data(), 32),
		},
	})

	// the malformed IPv4 list is dropped, the IPv6 list applies
	collapsed := normalizer.NormalizeRemote(netaddr.NewEndpoint(mustAddr(t, "203.0.113.5"), 443), false)
	assert.True(t, collapsed.Addr.IsNull())

	folded6 := normalizer.NormalizeRemote(netaddr.NewEndpoint(mustAddr(t, "2001:db8::9"), 443), false)
	assert.EqualValues(t, 32, folded6.Network.Bits())
}

func TestReporterStatusSnapshot(t *testing.T) {
	r, _ := newTestReporter()

	st := r.Status()
	assert.False(t, st.StreamConnected)
	assert.Zero(t, st.TrackedConnections)

	r.setStreamConnected(true)
	assert.True(t, r.Status().StreamConnected)
	r.setStreamConnected(false)
	assert.False(t, r.Status().StreamConnected)
}

func TestControlMessageNilFieldsIgnored(t *testing.T) {
	r, normalizer := newTestReporter()
	normalizer.UpdateKnownPublicIPs([]netaddr.Address{mustAddr(t, "198.51.100.7")})

	// a message without either field leaves the published state alone
	r.onControlMessage(&rpc.NetworkFlowsControlMessage{})
	r.onControlMessage(nil)

	kept := netaddr.NewEndpoint(mustAddr(t, "198.51.100.7"), 443)
	assert.Equal(t, kept, normalizer.NormalizeRemote(kept, false))
}
