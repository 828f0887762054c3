package reporter

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conntrail/conntrail/pkg/agent/conntrack"
	"github.com/conntrail/conntrail/pkg/agent/netaddr"
	"github.com/conntrail/conntrail/pkg/agent/rpc"
)

func serverConn(containerID string, remotePort uint16) conntrack.Connection {
	return conntrack.Connection{
		ContainerID: containerID,
		Local:       netaddr.NewEndpoint(netaddr.Any(netaddr.FamilyIPv4), 8080),
		Remote:      netaddr.NewEndpoint(netaddr.AddrFrom4([4]byte{10, 0, 0, 2}), remotePort),
		L4Proto:     netaddr.L4ProtoTCP,
		IsServer:    true,
	}
}

func TestBuildInfoMessageEmptyDeltaIsNil(t *testing.T) {
	msg := buildInfoMessage(conntrack.ConnMap{}, conntrack.EndpointMap{}, time.Now(), 100, time.Minute)
	assert.Nil(t, msg)
}

func TestBuildInfoMessageOpenAndClose(t *testing.T) {
	open := serverConn("c1", 50000)
	closed := serverConn("c1", 50001)
	delta := conntrack.ConnMap{
		open:   {LastActive: 1_000_000, Active: true},
		closed: {LastActive: 2_500_000, Active: false},
	}

	msg := buildInfoMessage(delta, nil, time.Now(), 100, time.Minute)
	require.NotNil(t, msg)
	require.Len(t, msg.GetInfo().GetUpdatedConnections(), 2)

	var opens, closes int
	for _, conn := range msg.GetInfo().GetUpdatedConnections() {
		assert.Equal(t, "c1", conn.GetContainerId())
		assert.Equal(t, rpc.Role_ROLE_SERVER, conn.GetRole())
		assert.Equal(t, rpc.L4Protocol_L4_PROTOCOL_TCP, conn.GetProtocol())
		if ts := conn.GetCloseTimestamp(); ts != nil {
			closes++
			assert.EqualValues(t, 2, ts.GetSeconds())
			assert.EqualValues(t, 500_000_000, ts.GetNanos())
		} else {
			opens++
		}
	}
	assert.Equal(t, 1, opens)
	assert.Equal(t, 1, closes)
}

// per-container limiting drops surplus opens but never a close
func TestBuildInfoMessageRateLimit(t *testing.T) {
	delta := conntrack.ConnMap{}
	for i := 0; i < 1000; i++ {
		delta[serverConn("c1", uint16(40000+i))] = conntrack.Status{LastActive: 1, Active: true}
	}
	for i := 0; i < 10; i++ {
		delta[serverConn("c1", uint16(30000+i))] = conntrack.Status{LastActive: 1, Active: false}
	}
	// another container is limited independently
	delta[serverConn("c2", 50000)] = conntrack.Status{LastActive: 1, Active: true}

	msg := buildInfoMessage(delta, nil, time.Now(), 100, time.Minute)
	require.NotNil(t, msg)

	var opens, closes int
	for _, conn := range msg.GetInfo().GetUpdatedConnections() {
		if conn.GetCloseTimestamp() != nil {
			closes++
		} else {
			opens++
		}
	}
	assert.Equal(t, 101, opens) // 100 from c1 plus 1 from c2
	assert.Equal(t, 10, closes)
}

func TestEndpointToProtoDualEncoding(t *testing.T) {
	// concrete address: both encodings present
	concrete := netaddr.NewEndpoint(netaddr.AddrFrom4([4]byte{10, 0, 0, 1}), 443)
	proto := endpointToProto(concrete)
	require.NotNil(t, proto)
	assert.Equal(t, []byte{10, 0, 0, 1}, proto.GetAddressData())
	assert.Equal(t, []byte{10, 0, 0, 1, 32}, proto.GetIpNetwork())
	assert.EqualValues(t, 443, proto.GetPort())

	// network-folded endpoint: network encoding only
	base := netaddr.AddrFrom4([4]byte{203, 0, 113, 0})
	folded := netaddr.NewNetworkEndpoint(base, 443, netaddr.NewIPNet(base, 24))
	proto = endpointToProto(folded)
	require.NotNil(t, proto)
	assert.Nil(t, proto.GetAddressData())
	assert.Equal(t, []byte{203, 0, 113, 0, 24}, proto.GetIpNetwork())

	// null endpoint: omitted entirely
	assert.Nil(t, endpointToProto(netaddr.Endpoint{}))
}

func TestContainerEndpointToProto(t *testing.T) {
	cep := conntrack.ContainerEndpoint{
		ContainerID: "c1",
		Endpoint:    netaddr.NewEndpoint(netaddr.Any(netaddr.FamilyIPv4), 8080),
		L4Proto:     netaddr.L4ProtoTCP,
	}
	proto := containerEndpointToProto(cep)
	assert.Equal(t, "c1", proto.GetContainerId())
	assert.Equal(t, rpc.SocketFamily_SOCKET_FAMILY_IPV4, proto.GetSocketFamily())
	assert.Nil(t, proto.GetOriginator())
	require.NotNil(t, proto.GetListenAddress())
	assert.EqualValues(t, 8080, proto.GetListenAddress().GetPort())
}

func TestCountLimiter(t *testing.T) {
	l := newCountLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("c1"), fmt.Sprintf("event %d", i))
	}
	assert.False(t, l.Allow("c1"))
	// other containers have their own bucket
	assert.True(t, l.Allow("c2"))

	unlimited := newCountLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		assert.True(t, unlimited.Allow("c1"))
	}
}
